package slides

// Slide describes one slide of a generated presentation.
type Slide struct {
	SlideNumber  int      `json:"slide_number"`
	Title        string   `json:"title"`
	BulletPoints []string `json:"bullet_points"`
	ImageKeyword string   `json:"image_keyword"`
}

// Deck is the structure returned to the caller.
type Deck struct {
	PresentationTitle string  `json:"presentation_title"`
	Slides            []Slide `json:"slides"`
}
