package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_PORT", "LLM_BACKEND", "GEMINI_API_KEY", "GEMINI_MODEL",
		"OPENAI_API_KEY", "OPENAI_MODEL", "LLM_BASE_URL", "LLM_TIMEOUT",
		"MAX_UPLOAD_BYTES", "CONTEXT_CHAR_LIMIT", "EPUB_SCAN_BUDGET",
		"MIME_WHITELIST_PATH", "AUTH_TOKEN", "API_USER_NAME",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("GEMINI_API_KEY", "k")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AppPort != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.AppPort)
	}
	if cfg.LLMBackend != BackendGemini {
		t.Errorf("expected default backend gemini, got %q", cfg.LLMBackend)
	}
	if cfg.ContextCharLimit != 30000 {
		t.Errorf("expected default char limit 30000, got %d", cfg.ContextCharLimit)
	}
	if cfg.EPUBScanBudget != 50000 {
		t.Errorf("expected default epub scan budget 50000, got %d", cfg.EPUBScanBudget)
	}
	if cfg.MaxUploadBytes != 10*1024*1024 {
		t.Errorf("expected default upload limit 10 MB, got %d", cfg.MaxUploadBytes)
	}
	if cfg.LLMTimeout != 90*time.Second {
		t.Errorf("expected default timeout 90s, got %s", cfg.LLMTimeout)
	}
	if !cfg.InlineImages() {
		t.Error("expected gemini backend to accept inline images")
	}
}

func TestLoadBackendKeyValidation(t *testing.T) {
	testCases := []struct {
		name    string
		env     map[string]string
		wantErr bool
	}{
		{"GeminiWithoutKey", map[string]string{"LLM_BACKEND": "gemini"}, true},
		{"OpenAIWithoutKey", map[string]string{"LLM_BACKEND": "openai"}, true},
		{"OpenAIWithKey", map[string]string{"LLM_BACKEND": "openai", "OPENAI_API_KEY": "k"}, false},
		{"UnknownBackend", map[string]string{"LLM_BACKEND": "llama", "GEMINI_API_KEY": "k"}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clearLLMEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.LLMBackend == BackendOpenAI && cfg.InlineImages() {
				t.Error("expected text-only policy for the openai backend")
			}
		})
	}
}

func TestLoadAllowedMIMETypesDefaults(t *testing.T) {
	allowed, err := LoadAllowedMIMETypes("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, mt := range []string{"application/pdf", "application/epub+zip", "image/png", "image/webp"} {
		if _, ok := allowed[mt]; !ok {
			t.Errorf("expected %s in default whitelist", mt)
		}
	}
	if _, ok := allowed["text/plain"]; ok {
		t.Error("did not expect text/plain in default whitelist")
	}
}

func TestLoadAllowedMIMETypesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "whitelist.yaml")
	content := "allowed_mime_types:\n  - application/pdf\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write whitelist: %v", err)
	}

	allowed, err := LoadAllowedMIMETypes(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(allowed) != 1 {
		t.Errorf("expected exactly one entry, got %d", len(allowed))
	}
	if _, ok := allowed["application/pdf"]; !ok {
		t.Error("expected application/pdf in whitelist")
	}
}

func TestLoadAllowedMIMETypesBadFile(t *testing.T) {
	if _, err := LoadAllowedMIMETypes(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, []byte("allowed_mime_types: []\n"), 0o644); err != nil {
		t.Fatalf("write whitelist: %v", err)
	}
	if _, err := LoadAllowedMIMETypes(path); err == nil {
		t.Fatal("expected error for empty whitelist")
	}
}
