package file

import (
	"archive/zip"
	"bytes"
	"fmt"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// EPUBExtractor treats an EPUB upload as a zip archive and collects the
// text of its HTML chapter entries.
type EPUBExtractor struct {
	charLimit  int
	scanBudget int
	logger     *zap.Logger
}

func NewEPUBExtractor(charLimit, scanBudget int, logger *zap.Logger) *EPUBExtractor {
	return &EPUBExtractor{
		charLimit:  charLimit,
		scanBudget: scanBudget,
		logger:     logger,
	}
}

// ExtractText walks the archive entries in order, strips markup from
// every HTML/XHTML entry and appends the text to a running buffer. The
// scan stops early once the buffer exceeds the scan budget; the result
// is then truncated to the same character limit used for PDFs.
// Entries that are not HTML (css, opf, images, fonts) are ignored.
func (e *EPUBExtractor) ExtractText(data []byte) (string, bool, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", false, fmt.Errorf("open epub archive: %w", err)
	}

	var buf strings.Builder
	for _, entry := range archive.File {
		if !isHTMLEntry(entry.Name) {
			continue
		}

		rc, err := entry.Open()
		if err != nil {
			e.logger.Warn("failed to open epub entry",
				zap.String("entry", entry.Name),
				zap.Error(err))
			continue
		}

		doc, err := goquery.NewDocumentFromReader(rc)
		rc.Close()
		if err != nil {
			e.logger.Warn("failed to parse epub entry",
				zap.String("entry", entry.Name),
				zap.Error(err))
			continue
		}

		buf.WriteString(doc.Text())
		buf.WriteString("\n")

		if buf.Len() > e.scanBudget {
			break
		}
	}

	text, truncated := truncate(buf.String(), e.charLimit)
	return text, truncated, nil
}

func isHTMLEntry(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".htm", ".html", ".xhtml":
		return true
	}
	return false
}
