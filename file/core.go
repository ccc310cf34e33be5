package file

import (
	"encoding/base64"
	"fmt"
	"path"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// AssetKind is the effective type of an uploaded asset, resolved once
// from the declared MIME type and filename suffix.
type AssetKind int

const (
	KindUnsupported AssetKind = iota
	KindPDF
	KindEPUB
	KindImage
)

// ResolveKind maps a declared MIME type and filename to an AssetKind.
// EPUBs are frequently uploaded as application/zip or octet-stream, so
// the .epub suffix also counts.
func ResolveKind(mimeType, fileName string) AssetKind {
	mt := strings.ToLower(mimeType)
	if i := strings.Index(mt, ";"); i != -1 {
		mt = strings.TrimSpace(mt[:i])
	}

	switch {
	case mt == "application/pdf":
		return KindPDF
	case mt == "application/epub+zip":
		return KindEPUB
	case strings.HasSuffix(strings.ToLower(fileName), ".epub"):
		return KindEPUB
	case strings.HasPrefix(mt, "image/"):
		return KindImage
	}
	return KindUnsupported
}

// UploadedAsset is a request-scoped upload. It is consumed exactly once
// by the Extractor and discarded with the request.
type UploadedAsset struct {
	MIMEType string
	FileName string
	Bytes    []byte
}

// Variant tags the single result an extraction produces.
type Variant int

const (
	VariantTextExcerpt Variant = iota
	VariantInlineImage
	VariantTopicOnly
)

// InlineImage carries an image as a base64 multimodal attachment.
// Base64Data is empty when the configured backend is text-only, in
// which case the image bytes were never read.
type InlineImage struct {
	MIMEType   string
	Base64Data string
}

// ExtractionResult holds exactly one variant of extracted context.
type ExtractionResult struct {
	Variant   Variant
	Text      string
	Truncated bool
	Image     *InlineImage
}

// TopicOnly wraps a user-typed topic as an extraction result.
func TopicOnly(topic string) ExtractionResult {
	return ExtractionResult{
		Variant: VariantTopicOnly,
		Text:    topic,
	}
}

// Extractor dispatches an uploaded asset to the format-specific
// extraction path and produces a bounded context excerpt.
type Extractor struct {
	pdfExtractor  *PDFExtractor
	epubExtractor *EPUBExtractor
	inlineImages  bool
	logger        *zap.Logger
}

// NewExtractor creates an Extractor. charLimit bounds the excerpt taken
// from documents, epubScanBudget bounds how much concatenated chapter
// text is collected before the archive scan stops early. inlineImages
// selects the image policy: true attaches image bytes as a base64
// payload, false never reads them and the prompt layer substitutes a
// generic instruction instead.
func NewExtractor(charLimit, epubScanBudget int, inlineImages bool, logger *zap.Logger) *Extractor {
	return &Extractor{
		pdfExtractor:  NewPDFExtractor(charLimit, logger),
		epubExtractor: NewEPUBExtractor(charLimit, epubScanBudget, logger),
		inlineImages:  inlineImages,
		logger:        logger,
	}
}

// Extract produces exactly one ExtractionResult for the asset. The
// result is deterministic for a fixed asset and budget configuration.
func (e *Extractor) Extract(asset *UploadedAsset) (ExtractionResult, error) {
	switch ResolveKind(asset.MIMEType, asset.FileName) {
	case KindPDF:
		text, truncated, err := e.pdfExtractor.ExtractText(asset.Bytes)
		if err != nil {
			return ExtractionResult{}, fmt.Errorf("pdf extraction: %w", err)
		}
		return ExtractionResult{Variant: VariantTextExcerpt, Text: text, Truncated: truncated}, nil

	case KindEPUB:
		text, truncated, err := e.epubExtractor.ExtractText(asset.Bytes)
		if err != nil {
			return ExtractionResult{}, fmt.Errorf("epub extraction: %w", err)
		}
		return ExtractionResult{Variant: VariantTextExcerpt, Text: text, Truncated: truncated}, nil

	case KindImage:
		img := &InlineImage{MIMEType: asset.MIMEType}
		if e.inlineImages {
			img.Base64Data = base64.StdEncoding.EncodeToString(asset.Bytes)
		}
		return ExtractionResult{Variant: VariantInlineImage, Image: img}, nil
	}

	return ExtractionResult{}, fmt.Errorf("unsupported file type %q (%s)",
		asset.MIMEType, path.Base(asset.FileName))
}

// truncate cuts s to at most limit bytes, backing off to the previous
// rune boundary so the excerpt stays valid UTF-8.
func truncate(s string, limit int) (string, bool) {
	if limit <= 0 || len(s) <= limit {
		return s, false
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit], true
}
