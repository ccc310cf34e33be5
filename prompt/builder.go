package prompt

import (
	"slidegen/file"
)

// SystemInstruction is the fixed formatting template prepended to every
// model request. It pins the slide count, the minimum bullet points per
// slide and the exact JSON shape of the expected answer.
const SystemInstruction = `You are an expert presentation creator.
Analyze the input (text or image) and generate a 10-slide presentation structure.
Every slide must have at least 3-4 bullet points.
RETURN ONLY VALID JSON. No Markdown, no code fences.
Structure: { "presentation_title": "...", "slides": [ { "slide_number": 1, "title": "...", "bullet_points": ["..."], "image_keyword": "..." } ] }`

const (
	documentContextPrefix = "Analyze this document content: "
	topicContextPrefix    = "Create a presentation about: "

	// ImageContext replaces extracted content for image uploads. It is
	// the full context under the text-only policy and accompanies the
	// inline attachment under the multimodal one.
	ImageContext = "Analyze this image. It is educational material. Extract the key topics and create slides."
)

// Payload is a fully assembled model request: the instruction template,
// the request context and an optional inline-image attachment. It is
// immutable once built and passed once to the backend.
type Payload struct {
	Instruction string
	Context     string
	Image       *file.InlineImage
}

// Build combines an extraction result with the fixed instruction
// template. Pure: same result in, same payload out.
func Build(result file.ExtractionResult) Payload {
	payload := Payload{Instruction: SystemInstruction}

	switch result.Variant {
	case file.VariantTextExcerpt:
		payload.Context = documentContextPrefix + result.Text
	case file.VariantTopicOnly:
		payload.Context = topicContextPrefix + result.Text
	case file.VariantInlineImage:
		payload.Context = ImageContext
		if result.Image != nil && result.Image.Base64Data != "" {
			payload.Image = result.Image
		}
	}

	return payload
}
