package qa

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

const DefaultTimeout = 30 * time.Second

var (
	ErrTokenFailed  = errors.New("failed to get auth token")
	ErrAnswerFailed = errors.New("failed to get answer")
	ErrUploadFailed = errors.New("upload failed")
)

// BackendError is a failed call to the backend. Public leaves out the
// transport cause, which names internal hosts; Error keeps it for logs.
type BackendError struct {
	Kind   error // ErrTokenFailed, ErrAnswerFailed or ErrUploadFailed
	Status int   // 0 when no response arrived
	Err    error
}

func (e *BackendError) Public() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (status %d)", e.Kind, e.Status)
	}
	return e.Kind.Error()
}

func (e *BackendError) Error() string {
	if e.Err == nil {
		return e.Public()
	}
	return e.Public() + ": " + e.Err.Error()
}

func (e *BackendError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// PageRef is a citation page. The backend sends either numbers or strings.
type PageRef string

func (p *PageRef) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*p = ""
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*p = PageRef(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("page reference must be a string or number: %w", err)
	}
	*p = PageRef(n.String())
	return nil
}

type Answer struct {
	Answer    string    `json:"answer"`
	Citations []PageRef `json:"citations"`
}

// UploadError carries the backend's detail message for a rejected upload.
type UploadError struct {
	Status int
	Detail string
}

func (e *UploadError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return "Upload failed"
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

type askRequest struct {
	Question string `json:"question"`
}

type errorDetail struct {
	Detail string `json:"detail"`
}

// Client talks to the external document QA backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// MintToken obtains a fresh access token. Tokens are never cached.
func (c *Client) MintToken(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/token", nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &BackendError{Kind: ErrTokenFailed, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &BackendError{Kind: ErrTokenFailed, Status: resp.StatusCode}
	}

	var body tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", &BackendError{Kind: ErrTokenFailed, Err: err}
	}
	if body.AccessToken == "" {
		return "", &BackendError{Kind: ErrTokenFailed, Err: errors.New("empty access token")}
	}
	return body.AccessToken, nil
}

func (c *Client) Ask(ctx context.Context, question, token string) (*Answer, error) {
	jsonData, err := json.Marshal(askRequest{Question: question})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/qa/ask", bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &BackendError{Kind: ErrAnswerFailed, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &BackendError{Kind: ErrAnswerFailed, Status: resp.StatusCode}
	}

	var answer Answer
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		return nil, &BackendError{Kind: ErrAnswerFailed, Err: err}
	}
	return &answer, nil
}

// UploadDocument forwards a file as the multipart field "file".
func (c *Client) UploadDocument(ctx context.Context, filename string, content io.Reader, token string) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return fmt.Errorf("failed to copy file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/pdf/upload", &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &BackendError{Kind: ErrUploadFailed, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		var detail errorDetail
		_ = json.Unmarshal(bodyBytes, &detail)
		return &UploadError{Status: resp.StatusCode, Detail: detail.Detail}
	}
	return nil
}
