package domain

// Presentation is an ordered deck of slides built for a service or study.
type Presentation struct {
	PresentationID string  `json:"presentationID"` // Primary Key (e.g., UUID)
	ChurchID       string  `json:"churchID"`
	Title          string  `json:"title"`
	Theme          string  `json:"theme"` // Display theme identifier
	Slides         []Slide `json:"slides,omitempty"`
	AuditFields
}

// Slide is one screen within a presentation. Position is a dense 0-based
// index maintained on reorder.
type Slide struct {
	SlideID        string `json:"slideID"` // Primary Key (e.g., UUID)
	PresentationID string `json:"presentationID"`
	Position       int    `json:"position"`
	Title          string `json:"title"`
	Body           string `json:"body"`
	Reference      string `json:"reference"` // Optional scripture reference
	Background     string `json:"background"`
	AuditFields
}
