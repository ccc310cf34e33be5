package slides

import (
	"encoding/json"
	"strings"

	"go.uber.org/zap"
)

// Sanitizer turns raw model completions into values that are safe to
// serve as JSON response bodies.
type Sanitizer struct {
	logger *zap.Logger
}

func NewSanitizer(logger *zap.Logger) *Sanitizer {
	return &Sanitizer{
		logger: logger,
	}
}

// Sanitize strips code-fence markers and surrounding prose from raw,
// then parses the remainder as JSON. Whatever valid JSON the model
// produced is returned as-is; there is no schema check against Deck.
// If no JSON can be recovered, a fallback deck is returned instead so
// callers always get a deck-shaped body.
func (s *Sanitizer) Sanitize(raw string) any {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start != -1 && end > start {
		cleaned = cleaned[start : end+1]
	}

	var parsed any
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		s.logger.Error("failed to parse model output as JSON",
			zap.String("raw_completion", raw),
			zap.Error(err))
		return FallbackDeck(err)
	}

	return parsed
}

// FallbackDeck builds the fixed single-slide deck substituted when
// model output cannot be parsed.
func FallbackDeck(parseErr error) Deck {
	return Deck{
		PresentationTitle: "Error Parsing Slides",
		Slides: []Slide{
			{
				SlideNumber: 1,
				Title:       "Generation Failed",
				BulletPoints: []string{
					"The model did not return valid JSON.",
					"Parse error: " + parseErr.Error(),
					"Please try again with a shorter document or a simpler topic.",
				},
				ImageKeyword: "error",
			},
		},
	}
}
