// Package extract pulls content out of uploaded note documents. PDF
// and plain text yield plain text; DOCX yields HTML with embedded
// images inlined as data URLs.
package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	// ErrUnsupported marks file types no extractor handles.
	ErrUnsupported = errors.New("unsupported file format")
)

const (
	mimePDF  = "application/pdf"
	mimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

type format int

const (
	formatUnknown format = iota
	formatPDF
	formatPlain
	formatDocx
)

// detect resolves the format from the declared MIME type, falling back
// to the file extension when the client sent none (or a generic one).
func detect(mimeType, filename string) format {
	switch strings.ToLower(strings.TrimSpace(mimeType)) {
	case mimePDF:
		return formatPDF
	case "text/plain", "text/markdown":
		return formatPlain
	case mimeDocx:
		return formatDocx
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return formatPDF
	case ".txt", ".md":
		return formatPlain
	case ".docx":
		return formatDocx
	}
	return formatUnknown
}

// Supported reports whether an upload with the declared MIME type and
// filename can be extracted, so handlers can reject before any parsing
// runs.
func Supported(mimeType, filename string) bool {
	return detect(mimeType, filename) != formatUnknown
}

// Text extracts the content of the file at path. The declared MIME
// type drives the dispatch; the path's extension is the fallback.
func Text(path, mimeType string) (string, error) {
	switch detect(mimeType, path) {
	case formatPDF:
		return pdfText(path)
	case formatPlain:
		return plainText(path)
	case formatDocx:
		return docxHTML(path)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
	}
}
