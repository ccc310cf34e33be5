package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// defaultAllowedMIMETypes covers the upload types the extractor can
// handle: pdf, epub (also seen as plain zip / octet-stream with an
// .epub suffix) and common image formats.
var defaultAllowedMIMETypes = []string{
	"application/pdf",
	"application/epub+zip",
	"application/zip",
	"application/octet-stream",
	"image/jpeg",
	"image/jpg",
	"image/png",
	"image/webp",
}

type mimeWhitelist struct {
	AllowedMIMETypes []string `yaml:"allowed_mime_types"`
}

// LoadAllowedMIMETypes returns the set of accepted upload MIME types.
// With an empty path the compiled-in defaults apply; otherwise the YAML
// file at path replaces them.
func LoadAllowedMIMETypes(path string) (map[string]struct{}, error) {
	allowed := defaultAllowedMIMETypes

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read mime whitelist: %w", err)
		}

		var wl mimeWhitelist
		if err := yaml.Unmarshal(data, &wl); err != nil {
			return nil, fmt.Errorf("parse mime whitelist: %w", err)
		}
		if len(wl.AllowedMIMETypes) == 0 {
			return nil, fmt.Errorf("mime whitelist %s lists no types", path)
		}
		allowed = wl.AllowedMIMETypes
	}

	set := make(map[string]struct{}, len(allowed))
	for _, mt := range allowed {
		set[mt] = struct{}{}
	}
	return set, nil
}
