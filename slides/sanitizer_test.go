package slides

import (
	"reflect"
	"testing"

	"go.uber.org/zap"
)

func TestSanitizeRecoversJSON(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		want any
	}{
		{
			name: "PlainObject",
			raw:  `{"a":1}`,
			want: map[string]any{"a": float64(1)},
		},
		{
			name: "FencedObject",
			raw:  "```json\n{\"a\":1}\n```",
			want: map[string]any{"a": float64(1)},
		},
		{
			name: "BareFences",
			raw:  "```\n{\"a\":1}\n```",
			want: map[string]any{"a": float64(1)},
		},
		{
			name: "LeadingAndTrailingProse",
			raw:  "Sure! Here is your deck:\n{\"presentation_title\":\"Go\",\"slides\":[]}\nHope this helps.",
			want: map[string]any{"presentation_title": "Go", "slides": []any{}},
		},
		{
			name: "NestedBracesKept",
			raw:  "prefix {\"outer\":{\"inner\":2}} suffix",
			want: map[string]any{"outer": map[string]any{"inner": float64(2)}},
		},
	}

	sanitizer := NewSanitizer(zap.NewNop())

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := sanitizer.Sanitize(tc.raw)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("expected %#v, got %#v", tc.want, got)
			}
		})
	}
}

func TestSanitizeMalformedInputReturnsFallback(t *testing.T) {
	sanitizer := NewSanitizer(zap.NewNop())

	for _, raw := range []string{"not json at all", "", "{broken", "``` ```"} {
		got := sanitizer.Sanitize(raw)

		deck, ok := got.(Deck)
		if !ok {
			t.Fatalf("expected fallback Deck for %q, got %T", raw, got)
		}
		if deck.PresentationTitle != "Error Parsing Slides" {
			t.Errorf("expected fallback title, got %q", deck.PresentationTitle)
		}
		if len(deck.Slides) != 1 {
			t.Fatalf("expected exactly one fallback slide, got %d", len(deck.Slides))
		}
		if deck.Slides[0].Title != "Generation Failed" {
			t.Errorf("expected fallback slide title, got %q", deck.Slides[0].Title)
		}
		if deck.Slides[0].ImageKeyword != "error" {
			t.Errorf("expected image keyword 'error', got %q", deck.Slides[0].ImageKeyword)
		}
		if len(deck.Slides[0].BulletPoints) < 2 {
			t.Errorf("expected explanatory bullet points, got %v", deck.Slides[0].BulletPoints)
		}
	}
}

func TestFallbackDeckEmbedsParseError(t *testing.T) {
	sanitizer := NewSanitizer(zap.NewNop())

	got := sanitizer.Sanitize("garbage")
	deck, ok := got.(Deck)
	if !ok {
		t.Fatalf("expected fallback Deck, got %T", got)
	}

	found := false
	for _, bp := range deck.Slides[0].BulletPoints {
		if len(bp) > len("Parse error: ") && bp[:len("Parse error: ")] == "Parse error: " {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a bullet point embedding the parse error, got %v", deck.Slides[0].BulletPoints)
	}
}
