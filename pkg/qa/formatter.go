package qa

import (
	"errors"
	"fmt"
	"strings"
)

// FormatAnswer renders a backend answer as the assistant message shown in the chat.
func FormatAnswer(answer *Answer) string {
	var b strings.Builder
	b.WriteString("Here's what I found:\n\n")
	b.WriteString(answer.Answer)
	b.WriteString("\n\n")

	if len(answer.Citations) > 0 {
		b.WriteString("📚 Sources:\n")
		fmt.Fprintf(&b, "This information comes from page(s) %s of your documents.\n\n", strings.Join(CitationStrings(answer.Citations), ", "))
	}

	b.WriteString("💡 Additional Context:\n")
	b.WriteString("I've analyzed the relevant sections of your documents to provide this answer. ")
	b.WriteString("If you'd like more specific details about any part of this response, feel free to ask.")
	return b.String()
}

// PublicDetail describes err in words safe to store in a chat. Anything the
// client did not produce is reported as unknown.
func PublicDetail(err error) string {
	var backendErr *BackendError
	if errors.As(err, &backendErr) {
		return backendErr.Public()
	}
	var uploadErr *UploadError
	if errors.As(err, &uploadErr) {
		return uploadErr.Error()
	}
	return "Unknown error"
}

// FailureMessage is stored instead of an answer when the backend cannot be reached.
func FailureMessage(err error) string {
	detail := PublicDetail(err)
	return "I apologize, but I encountered an error while processing your question. Here's what you can try:\n\n" +
		"1. Rephrase your question to be more specific\n" +
		"2. Check if the relevant PDF documents are properly uploaded\n" +
		"3. Try breaking down your question into smaller parts\n\n" +
		"Technical Details: " + detail
}

func UploadSucceededMessage(filename string) string {
	return fmt.Sprintf("Successfully uploaded and processed %s", filename)
}

func UploadFailedMessage(filename, reason string) string {
	return fmt.Sprintf("Failed to upload %s: %s", filename, reason)
}

func CitationStrings(refs []PageRef) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, string(r))
	}
	return out
}
