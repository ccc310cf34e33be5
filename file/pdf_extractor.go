package file

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// PDFExtractor pulls the embedded text stream out of a PDF upload.
type PDFExtractor struct {
	charLimit int
	logger    *zap.Logger
}

func NewPDFExtractor(charLimit int, logger *zap.Logger) *PDFExtractor {
	return &PDFExtractor{
		charLimit: charLimit,
		logger:    logger,
	}
}

// ExtractText reads the text content of every page until the character
// budget is covered, then truncates to the budget. Pages whose text
// cannot be decoded are skipped, never fatal.
func (p *PDFExtractor) ExtractText(data []byte) (string, bool, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", false, fmt.Errorf("open pdf: %w", err)
	}

	var buf strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			p.logger.Warn("failed to extract text from page",
				zap.Int("page", pageNum),
				zap.Error(err))
			continue
		}

		buf.WriteString(text)
		buf.WriteString("\n")

		if buf.Len() > p.charLimit {
			break
		}
	}

	text, truncated := truncate(buf.String(), p.charLimit)
	return text, truncated, nil
}
