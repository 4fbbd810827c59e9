package dto

import (
	"time"

	"github.com/ecclesiahq/ecclesia-backend/internal/core/domain"
)

// CreateSlideRequest defines the data for one new slide.
type CreateSlideRequest struct {
	Title      string `json:"title"`
	Body       string `json:"body"`
	Reference  string `json:"reference"`
	Background string `json:"background"`
}

// UpdateSlideRequest defines the editable fields of a slide.
type UpdateSlideRequest struct {
	Title      *string `json:"title"`
	Body       *string `json:"body"`
	Reference  *string `json:"reference"`
	Background *string `json:"background"`
}

// CreatePresentationRequest defines the data needed to create a presentation.
type CreatePresentationRequest struct {
	Title  string               `json:"title" binding:"required"`
	Theme  string               `json:"theme"`
	Slides []CreateSlideRequest `json:"slides" binding:"omitempty,dive"`
}

// UpdatePresentationRequest defines the editable header fields.
type UpdatePresentationRequest struct {
	Title *string `json:"title"`
	Theme *string `json:"theme"`
}

// ReorderSlidesRequest carries the full new ordering of slide IDs.
type ReorderSlidesRequest struct {
	SlideIDs []string `json:"slideIDs" binding:"required,min=1"`
}

// SlideResponse defines the data returned for a slide.
type SlideResponse struct {
	SlideID    string `json:"slideID"`
	Position   int    `json:"position"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	Reference  string `json:"reference"`
	Background string `json:"background"`
}

// PresentationResponse defines the data returned for a presentation.
type PresentationResponse struct {
	PresentationID string          `json:"presentationID"`
	ChurchID       string          `json:"churchID"`
	Title          string          `json:"title"`
	Theme          string          `json:"theme"`
	Slides         []SlideResponse `json:"slides,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy  string          `json:"lastUpdatedBy"`
}

// ToSlideResponse converts a domain.Slide to its DTO.
func ToSlideResponse(s *domain.Slide) SlideResponse {
	return SlideResponse{
		SlideID:    s.SlideID,
		Position:   s.Position,
		Title:      s.Title,
		Body:       s.Body,
		Reference:  s.Reference,
		Background: s.Background,
	}
}

// ToPresentationResponse converts a domain.Presentation to its DTO.
func ToPresentationResponse(p *domain.Presentation) PresentationResponse {
	slides := make([]SlideResponse, len(p.Slides))
	for i, s := range p.Slides {
		slides[i] = ToSlideResponse(&s)
	}
	return PresentationResponse{
		PresentationID: p.PresentationID,
		ChurchID:       p.ChurchID,
		Title:          p.Title,
		Theme:          p.Theme,
		Slides:         slides,
		CreatedAt:      p.CreatedAt,
		CreatedBy:      p.CreatedBy,
		LastUpdatedAt:  p.LastUpdatedAt,
		LastUpdatedBy:  p.LastUpdatedBy,
	}
}

// ToListPresentationsResponse converts a slice of presentations to DTOs.
func ToListPresentationsResponse(ps []domain.Presentation) []PresentationResponse {
	list := make([]PresentationResponse, len(ps))
	for i, p := range ps {
		list[i] = ToPresentationResponse(&p)
	}
	return list
}
