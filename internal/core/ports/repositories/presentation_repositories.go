package repositories

import (
	"context"

	"github.com/ecclesiahq/ecclesia-backend/internal/core/domain"
)

// PresentationReader defines read operations for presentation data
type PresentationReader interface {
	// FindPresentationByID retrieves a presentation with its slides in position order.
	FindPresentationByID(ctx context.Context, presentationID string) (*domain.Presentation, error)

	// ListPresentationsByChurch retrieves a paginated list of presentations for a church.
	ListPresentationsByChurch(ctx context.Context, churchID string, limit int, offset int) ([]domain.Presentation, error)
}

// PresentationWriter defines write operations for presentation data
type PresentationWriter interface {
	// SavePresentation persists a new presentation and any initial slides.
	SavePresentation(ctx context.Context, presentation domain.Presentation) error

	// UpdatePresentation updates a presentation's header fields (title, theme).
	UpdatePresentation(ctx context.Context, presentation domain.Presentation) error

	// DeletePresentation removes a presentation and all of its slides.
	DeletePresentation(ctx context.Context, presentationID string) error
}

// SlideWriter defines write operations for slides within a presentation
type SlideWriter interface {
	// SaveSlide persists a new slide at its position.
	SaveSlide(ctx context.Context, slide domain.Slide) error

	// UpdateSlide updates an existing slide's content.
	UpdateSlide(ctx context.Context, slide domain.Slide) error

	// DeleteSlide removes a slide.
	DeleteSlide(ctx context.Context, slideID string) error

	// ReplaceSlidePositions rewrites the position of every slide in a
	// presentation atomically, keyed by slide ID.
	ReplaceSlidePositions(ctx context.Context, presentationID string, positions map[string]int, updatedByUserID string) error
}

// PresentationRepositoryFacade combines all presentation-related repository interfaces
type PresentationRepositoryFacade interface {
	PresentationReader
	PresentationWriter
	SlideWriter
}
