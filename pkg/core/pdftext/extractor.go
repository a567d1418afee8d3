// Package pdftext turns an uploaded PDF into plain text. It does no OCR: pages
// that only carry images contribute an empty line.
package pdftext

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"statement_insight/pkg/core/apperr"
	"statement_insight/pkg/core/logger"

	"github.com/ledongthuc/pdf"
	"github.com/sirupsen/logrus"
)

// Extractor extracts page text with github.com/ledongthuc/pdf.
type Extractor struct{}

func NewExtractor() *Extractor { return &Extractor{} }

// Extract concatenates the text of every page, each followed by a newline.
// Unreadable input is reported as *apperr.ExtractionError.
func (e *Extractor) Extract(content []byte) (text string, err error) {
	if len(content) == 0 {
		return "", &apperr.ExtractionError{Err: errors.New("empty PDF content")}
	}

	// The reader panics on some malformed content streams.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &apperr.ExtractionError{Err: fmt.Errorf("corrupt PDF: %v", r)}
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", &apperr.ExtractionError{Err: fmt.Errorf("open pdf: %w", err)}
	}

	numPages := r.NumPage()
	logger.Log.WithField("pages", numPages).Info("Opened PDF for text extraction")

	var sb strings.Builder
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		var pageText string
		if !page.V.IsNull() {
			pageText, err = page.GetPlainText(nil)
			if err != nil {
				return "", &apperr.ExtractionError{Err: fmt.Errorf("page %d: %w", i, err)}
			}
		}
		logger.Log.WithFields(logrus.Fields{"page": i, "chars": len(pageText)}).Debug("Extracted page text")
		sb.WriteString(pageText)
		sb.WriteByte('\n')
	}

	logger.Log.WithField("chars", sb.Len()).Info("Finished PDF text extraction")
	return sb.String(), nil
}
