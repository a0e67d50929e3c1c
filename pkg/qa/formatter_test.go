package qa

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func stringsReader(s string) io.Reader {
	return strings.NewReader(s)
}

func TestFormatAnswer(t *testing.T) {
	tests := []struct {
		name        string
		answer      *Answer
		wantSources bool
	}{
		{
			name:        "with citations",
			answer:      &Answer{Answer: "X is Y.", Citations: []PageRef{"3", "7"}},
			wantSources: true,
		},
		{
			name:        "without citations",
			answer:      &Answer{Answer: "X is Y."},
			wantSources: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatAnswer(tt.answer)
			assert.True(t, strings.HasPrefix(got, "Here's what I found:\n\nX is Y.\n\n"))
			assert.Contains(t, got, "💡 Additional Context:")
			if tt.wantSources {
				assert.Contains(t, got, "📚 Sources:\nThis information comes from page(s) 3, 7 of your documents.")
			} else {
				assert.NotContains(t, got, "Sources")
			}
		})
	}
}

func TestFailureMessage(t *testing.T) {
	transport := errors.New(`Post "http://10.0.0.7:8000/api/qa/ask": dial tcp: connection refused`)

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "transport failure", err: &BackendError{Kind: ErrAnswerFailed, Err: transport}, want: "failed to get answer"},
		{name: "bad status", err: &BackendError{Kind: ErrTokenFailed, Status: 503}, want: "failed to get auth token (status 503)"},
		{name: "foreign error", err: transport, want: "Unknown error"},
		{name: "nil", err: nil, want: "Unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FailureMessage(tt.err)
			assert.True(t, strings.HasPrefix(got, "I apologize, but I encountered an error"))
			assert.True(t, strings.HasSuffix(got, "Technical Details: "+tt.want), got)
			assert.NotContains(t, got, "10.0.0.7")
		})
	}
}

func TestBackendErrorKeepsCauseForLogs(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.7:8000: connection refused")
	err := &BackendError{Kind: ErrAnswerFailed, Err: cause}

	assert.ErrorIs(t, err, ErrAnswerFailed)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to get answer: dial tcp 10.0.0.7:8000: connection refused", err.Error())
	assert.Equal(t, "failed to get answer", err.Public())
}

func TestUploadMessages(t *testing.T) {
	assert.Equal(t, "Successfully uploaded and processed a.pdf", UploadSucceededMessage("a.pdf"))
	assert.Equal(t, "Failed to upload a.pdf: Corrupt PDF", UploadFailedMessage("a.pdf", PublicDetail(&UploadError{Detail: "Corrupt PDF"})))
	assert.Equal(t, "Failed to upload a.pdf: upload failed", UploadFailedMessage("a.pdf", PublicDetail(&BackendError{Kind: ErrUploadFailed, Err: errors.New("EOF")})))
}
