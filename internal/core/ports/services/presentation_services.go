package services

import (
	"context"

	"github.com/ecclesiahq/ecclesia-backend/internal/core/domain"
	"github.com/ecclesiahq/ecclesia-backend/internal/dto"
)

// PresentationReaderSvc defines read operations for presentation data
type PresentationReaderSvc interface {
	// GetPresentationByID retrieves a presentation with its slides in order.
	GetPresentationByID(ctx context.Context, churchID string, presentationID string, userID string) (*domain.Presentation, error)

	// ListPresentations retrieves a paginated list of a church's presentations.
	ListPresentations(ctx context.Context, churchID string, userID string, limit, offset int) ([]domain.Presentation, error)
}

// PresentationWriterSvc defines write operations for presentation data
type PresentationWriterSvc interface {
	// CreatePresentation persists a new presentation with any initial slides.
	CreatePresentation(ctx context.Context, churchID string, req dto.CreatePresentationRequest, userID string) (*domain.Presentation, error)

	// UpdatePresentation updates a presentation's title and theme.
	UpdatePresentation(ctx context.Context, churchID string, presentationID string, req dto.UpdatePresentationRequest, userID string) (*domain.Presentation, error)

	// DeletePresentation removes a presentation and its slides.
	DeletePresentation(ctx context.Context, churchID string, presentationID string, userID string) error

	// DuplicatePresentation deep-copies a presentation with fresh identifiers.
	DuplicatePresentation(ctx context.Context, churchID string, presentationID string, userID string) (*domain.Presentation, error)
}

// SlideSvc defines operations on slides within a presentation
type SlideSvc interface {
	// AddSlide appends a slide to a presentation.
	AddSlide(ctx context.Context, churchID string, presentationID string, req dto.CreateSlideRequest, userID string) (*domain.Slide, error)

	// UpdateSlide updates a slide's content.
	UpdateSlide(ctx context.Context, churchID string, presentationID string, slideID string, req dto.UpdateSlideRequest, userID string) (*domain.Slide, error)

	// RemoveSlide deletes a slide and closes the position gap it leaves.
	RemoveSlide(ctx context.Context, churchID string, presentationID string, slideID string, userID string) error

	// ReorderSlides applies a full ordering of slide IDs to a presentation.
	ReorderSlides(ctx context.Context, churchID string, presentationID string, slideIDs []string, userID string) (*domain.Presentation, error)
}

// PresentationSvcFacade combines all presentation-related service interfaces
type PresentationSvcFacade interface {
	PresentationReaderSvc
	PresentationWriterSvc
	SlideSvc
}
