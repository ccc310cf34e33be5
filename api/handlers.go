package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"slidegen/file"
	"slidegen/llm"
	"slidegen/prompt"
	"slidegen/slides"
)

// multipartFormOverhead is extra body allowance for multipart framing
// and the topic field on top of the file budget.
const multipartFormOverhead = 1 << 20

// SlideGenerator orchestrates extraction, prompt assembly, the single
// backend call and response sanitization for one request.
type SlideGenerator struct {
	extractor      *file.Extractor
	backend        llm.Backend
	sanitizer      *slides.Sanitizer
	allowedMIME    map[string]struct{}
	maxUploadBytes int64
	logger         *zap.Logger
}

func NewSlideGenerator(
	extractor *file.Extractor,
	backend llm.Backend,
	sanitizer *slides.Sanitizer,
	allowedMIME map[string]struct{},
	maxUploadBytes int64,
	logger *zap.Logger,
) *SlideGenerator {
	return &SlideGenerator{
		extractor:      extractor,
		backend:        backend,
		sanitizer:      sanitizer,
		allowedMIME:    allowedMIME,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// GenerateHandler handles POST /generate-slides. The body is a
// multipart or url-encoded form with optional fields "topic" and
// "file". The response body is always JSON: a deck-shaped object on
// success (including the sanitizer fallback) or {"error": ...}.
func (g *SlideGenerator) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	reqLogger := g.logger.With(zap.String("request_id", uuid.NewString()))

	r.Body = http.MaxBytesReader(w, r.Body, g.maxUploadBytes+multipartFormOverhead)

	result, ok := g.extractRequestContext(w, r, reqLogger)
	if !ok {
		return
	}

	payload := prompt.Build(result)

	completion, err := g.backend.GenerateCompletion(r.Context(), payload)
	if err != nil {
		reqLogger.Error("llm backend call failed", zap.Error(err))
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, g.sanitizer.Sanitize(completion))
}

// extractRequestContext validates the form and produces the single
// extraction result for this request. On failure it writes the HTTP
// error response itself and reports ok=false.
func (g *SlideGenerator) extractRequestContext(w http.ResponseWriter, r *http.Request, reqLogger *zap.Logger) (file.ExtractionResult, bool) {
	if err := r.ParseMultipartForm(g.maxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		writeError(w, http.StatusBadRequest, "Invalid form data: "+err.Error())
		return file.ExtractionResult{}, false
	}

	upload, header, err := r.FormFile("file")
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
			writeError(w, http.StatusBadRequest, "Invalid file upload: "+err.Error())
			return file.ExtractionResult{}, false
		}

		topic := strings.TrimSpace(r.FormValue("topic"))
		if topic == "" {
			writeError(w, http.StatusBadRequest, "Please upload a file or enter a topic.")
			return file.ExtractionResult{}, false
		}
		return file.TopicOnly(topic), true
	}
	defer upload.Close()

	if header.Size > g.maxUploadBytes {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("File exceeds the maximum upload size of %d bytes.", g.maxUploadBytes))
		return file.ExtractionResult{}, false
	}

	mimeType := normalizeMIME(header.Header.Get("Content-Type"))
	if !g.isAllowedUpload(mimeType, header.Filename) {
		writeError(w, http.StatusBadRequest, "Unsupported file type: "+mimeType)
		return file.ExtractionResult{}, false
	}

	data, err := io.ReadAll(upload)
	if err != nil {
		reqLogger.Error("failed to read upload", zap.String("filename", header.Filename), zap.Error(err))
		serverError(w, err)
		return file.ExtractionResult{}, false
	}

	result, err := g.extractor.Extract(&file.UploadedAsset{
		MIMEType: mimeType,
		FileName: header.Filename,
		Bytes:    data,
	})
	if err != nil {
		reqLogger.Error("extraction failed",
			zap.String("filename", header.Filename),
			zap.String("mime_type", mimeType),
			zap.Error(err))
		serverError(w, err)
		return file.ExtractionResult{}, false
	}

	return result, true
}

func (g *SlideGenerator) isAllowedUpload(mimeType, fileName string) bool {
	if _, ok := g.allowedMIME[mimeType]; ok {
		return true
	}
	return strings.HasSuffix(strings.ToLower(fileName), ".epub")
}

func normalizeMIME(contentType string) string {
	mt := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(mt, ";"); i != -1 {
		mt = strings.TrimSpace(mt[:i])
	}
	return mt
}

func serverError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Server Error: "+err.Error())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
