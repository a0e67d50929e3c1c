package document

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"rsc.io/pdf"
)

var (
	ErrNotPDF      = errors.New("only PDF files are allowed")
	ErrInvalidPDF  = errors.New("file is not a readable PDF")
	ErrEmptyPDF    = errors.New("PDF has no pages")
	ErrMissingName = errors.New("file name is required")
)

// NotPDFMessage is the chat text for an upload without a .pdf extension.
const NotPDFMessage = "Only PDF files are allowed"

// UserMessage is the reason shown in the chat when InspectPDF rejects a file.
// Parser details stay out of it.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrNotPDF):
		return NotPDFMessage
	case errors.Is(err, ErrMissingName):
		return "File name is required"
	case errors.Is(err, ErrEmptyPDF):
		return "PDF has no pages"
	case errors.Is(err, ErrInvalidPDF):
		return "File is not a readable PDF"
	default:
		return "File could not be read"
	}
}

// Info is what we learn about an upload before forwarding it.
type Info struct {
	Filename string
	Size     int64
	Pages    int
}

func HasPDFExtension(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".pdf")
}

// InspectPDF checks the extension and parses the document structure.
func InspectPDF(filename string, data []byte) (info *Info, err error) {
	if strings.TrimSpace(filename) == "" {
		return nil, ErrMissingName
	}
	if !HasPDFExtension(filename) {
		return nil, ErrNotPDF
	}

	// rsc.io/pdf panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			info = nil
			err = fmt.Errorf("%w: %v", ErrInvalidPDF, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}

	pages := r.NumPage()
	if pages == 0 {
		return nil, ErrEmptyPDF
	}

	return &Info{
		Filename: filename,
		Size:     int64(len(data)),
		Pages:    pages,
	}, nil
}
