// Package pdftext pulls page-concatenated plain text out of PDF byte streams.
package pdftext

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/valvetrack/valve-docs/internal/common"
)

type Extractor struct {
	logger *slog.Logger
}

func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

// Extract reads the whole stream and returns the text of every page joined by
// newlines, in page order. Pages with no extractable text contribute an empty
// segment. The stream cursor is rewound to the start before returning, success
// or failure: the caller persists the original bytes afterwards and a
// mid-stream cursor would silently truncate the saved file.
func (e *Extractor) Extract(rs io.ReadSeeker) (text string, err error) {
	defer func() {
		if _, serr := rs.Seek(0, io.SeekStart); serr != nil && err == nil {
			err = fmt.Errorf("rewind source stream: %w", serr)
		}
	}()

	content, err := io.ReadAll(rs)
	if err != nil {
		return "", common.Unreadable(err)
	}
	return e.ExtractBytes(content)
}

// ExtractBytes extracts text from in-memory PDF content.
func (e *Extractor) ExtractBytes(content []byte) (text string, err error) {
	if len(content) == 0 {
		return "", common.Unreadable(fmt.Errorf("empty content"))
	}

	// The reader panics on some malformed xref tables instead of returning an
	// error; fold those into the unreadable failure mode.
	defer func() {
		if r := recover(); r != nil {
			err = common.Unreadable(fmt.Errorf("pdf parse: %v", r))
			text = ""
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", common.Unreadable(fmt.Errorf("open pdf: %w", err))
	}

	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		pageText, perr := page.GetPlainText(nil)
		if perr != nil {
			e.logger.Debug("page yielded no text", "page", i, "error", perr)
			pages = append(pages, "")
			continue
		}
		pages = append(pages, pageText)
	}
	return strings.Join(pages, "\n"), nil
}
