package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ecclesiahq/ecclesia-backend/internal/apperrors"
	"github.com/ecclesiahq/ecclesia-backend/internal/core/domain"
	portsrepo "github.com/ecclesiahq/ecclesia-backend/internal/core/ports/repositories"
	portssvc "github.com/ecclesiahq/ecclesia-backend/internal/core/ports/services"
	"github.com/ecclesiahq/ecclesia-backend/internal/dto"
)

var ErrSlideSetMismatch = errors.New("reorder must list every slide of the presentation exactly once")

// presentationService manages presentations and their ordered slides.
type presentationService struct {
	BaseService
	presentationRepo portsrepo.PresentationRepositoryFacade
}

// NewPresentationService creates a new presentation service.
func NewPresentationService(repo portsrepo.PresentationRepositoryFacade, authorizer portssvc.ChurchAuthorizerSvc) portssvc.PresentationSvcFacade {
	svc := &presentationService{
		presentationRepo: repo,
	}
	svc.ChurchAuthorizer = authorizer
	return svc
}

var _ portssvc.PresentationSvcFacade = (*presentationService)(nil)

// CreatePresentation persists a new presentation with any initial slides in
// the order given.
func (s *presentationService) CreatePresentation(ctx context.Context, churchID string, req dto.CreatePresentationRequest, userID string) (*domain.Presentation, error) {
	if err := s.AuthorizeUser(ctx, userID, churchID, domain.RoleMember); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	presentationID := uuid.NewString()

	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	slides := make([]domain.Slide, len(req.Slides))
	for i, slideReq := range req.Slides {
		slides[i] = domain.Slide{
			SlideID:        uuid.NewString(),
			PresentationID: presentationID,
			Position:       i,
			Title:          slideReq.Title,
			Body:           slideReq.Body,
			Reference:      slideReq.Reference,
			Background:     slideReq.Background,
			AuditFields:    audit,
		}
	}

	presentation := domain.Presentation{
		PresentationID: presentationID,
		ChurchID:       churchID,
		Title:          req.Title,
		Theme:          req.Theme,
		Slides:         slides,
		AuditFields:    audit,
	}

	if err := s.presentationRepo.SavePresentation(ctx, presentation); err != nil {
		s.LogError(ctx, err, "Failed to save presentation", slog.String("church_id", churchID))
		return nil, fmt.Errorf("failed to create presentation: %w", err)
	}

	s.LogInfo(ctx, "Presentation created", slog.String("presentation_id", presentationID), slog.String("church_id", churchID))
	return &presentation, nil
}

// getOwned fetches a presentation and confirms it belongs to the church.
func (s *presentationService) getOwned(ctx context.Context, churchID, presentationID string) (*domain.Presentation, error) {
	presentation, err := s.presentationRepo.FindPresentationByID(ctx, presentationID)
	if err != nil {
		return nil, err
	}
	if presentation.ChurchID != churchID {
		return nil, apperrors.ErrNotFound // Obscure existence
	}
	return presentation, nil
}

// GetPresentationByID retrieves a presentation with its slides in order.
func (s *presentationService) GetPresentationByID(ctx context.Context, churchID string, presentationID string, userID string) (*domain.Presentation, error) {
	if err := s.AuthorizeUser(ctx, userID, churchID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.getOwned(ctx, churchID, presentationID)
}

// ListPresentations retrieves a paginated list of a church's presentations.
func (s *presentationService) ListPresentations(ctx context.Context, churchID string, userID string, limit, offset int) ([]domain.Presentation, error) {
	if err := s.AuthorizeUser(ctx, userID, churchID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	presentations, err := s.presentationRepo.ListPresentationsByChurch(ctx, churchID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list presentations", slog.String("church_id", churchID))
		return nil, fmt.Errorf("failed to list presentations: %w", err)
	}
	if presentations == nil {
		return []domain.Presentation{}, nil
	}
	return presentations, nil
}

// UpdatePresentation updates a presentation's title and theme.
func (s *presentationService) UpdatePresentation(ctx context.Context, churchID string, presentationID string, req dto.UpdatePresentationRequest, userID string) (*domain.Presentation, error) {
	if err := s.AuthorizeUser(ctx, userID, churchID, domain.RoleMember); err != nil {
		return nil, err
	}

	presentation, err := s.getOwned(ctx, churchID, presentationID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		presentation.Title = *req.Title
	}
	if req.Theme != nil {
		presentation.Theme = *req.Theme
	}
	presentation.LastUpdatedAt = time.Now().UTC()
	presentation.LastUpdatedBy = userID

	if err := s.presentationRepo.UpdatePresentation(ctx, *presentation); err != nil {
		s.LogError(ctx, err, "Failed to update presentation", slog.String("presentation_id", presentationID))
		return nil, fmt.Errorf("failed to update presentation: %w", err)
	}
	return presentation, nil
}

// DeletePresentation removes a presentation and its slides.
func (s *presentationService) DeletePresentation(ctx context.Context, churchID string, presentationID string, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, churchID, domain.RoleMember); err != nil {
		return err
	}

	if _, err := s.getOwned(ctx, churchID, presentationID); err != nil {
		return err
	}

	if err := s.presentationRepo.DeletePresentation(ctx, presentationID); err != nil {
		s.LogError(ctx, err, "Failed to delete presentation", slog.String("presentation_id", presentationID))
		return fmt.Errorf("failed to delete presentation: %w", err)
	}

	s.LogInfo(ctx, "Presentation deleted", slog.String("presentation_id", presentationID), slog.String("church_id", churchID))
	return nil
}

// DuplicatePresentation deep-copies a presentation with fresh identifiers.
func (s *presentationService) DuplicatePresentation(ctx context.Context, churchID string, presentationID string, userID string) (*domain.Presentation, error) {
	if err := s.AuthorizeUser(ctx, userID, churchID, domain.RoleMember); err != nil {
		return nil, err
	}

	source, err := s.getOwned(ctx, churchID, presentationID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	copyID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	slides := make([]domain.Slide, len(source.Slides))
	for i, slide := range source.Slides {
		slides[i] = domain.Slide{
			SlideID:        uuid.NewString(),
			PresentationID: copyID,
			Position:       slide.Position,
			Title:          slide.Title,
			Body:           slide.Body,
			Reference:      slide.Reference,
			Background:     slide.Background,
			AuditFields:    audit,
		}
	}

	duplicate := domain.Presentation{
		PresentationID: copyID,
		ChurchID:       churchID,
		Title:          source.Title + " (copy)",
		Theme:          source.Theme,
		Slides:         slides,
		AuditFields:    audit,
	}

	if err := s.presentationRepo.SavePresentation(ctx, duplicate); err != nil {
		s.LogError(ctx, err, "Failed to save duplicated presentation", slog.String("source_presentation_id", presentationID))
		return nil, fmt.Errorf("failed to duplicate presentation: %w", err)
	}

	s.LogInfo(ctx, "Presentation duplicated", slog.String("source_presentation_id", presentationID), slog.String("presentation_id", copyID))
	return &duplicate, nil
}

// AddSlide appends a slide at the end of a presentation.
func (s *presentationService) AddSlide(ctx context.Context, churchID string, presentationID string, req dto.CreateSlideRequest, userID string) (*domain.Slide, error) {
	if err := s.AuthorizeUser(ctx, userID, churchID, domain.RoleMember); err != nil {
		return nil, err
	}

	presentation, err := s.getOwned(ctx, churchID, presentationID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	slide := domain.Slide{
		SlideID:        uuid.NewString(),
		PresentationID: presentationID,
		Position:       len(presentation.Slides),
		Title:          req.Title,
		Body:           req.Body,
		Reference:      req.Reference,
		Background:     req.Background,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.presentationRepo.SaveSlide(ctx, slide); err != nil {
		s.LogError(ctx, err, "Failed to save slide", slog.String("presentation_id", presentationID))
		return nil, fmt.Errorf("failed to add slide: %w", err)
	}
	return &slide, nil
}

// UpdateSlide updates a slide's content.
func (s *presentationService) UpdateSlide(ctx context.Context, churchID string, presentationID string, slideID string, req dto.UpdateSlideRequest, userID string) (*domain.Slide, error) {
	if err := s.AuthorizeUser(ctx, userID, churchID, domain.RoleMember); err != nil {
		return nil, err
	}

	presentation, err := s.getOwned(ctx, churchID, presentationID)
	if err != nil {
		return nil, err
	}

	var slide *domain.Slide
	for i := range presentation.Slides {
		if presentation.Slides[i].SlideID == slideID {
			slide = &presentation.Slides[i]
			break
		}
	}
	if slide == nil {
		return nil, apperrors.ErrNotFound
	}

	if req.Title != nil {
		slide.Title = *req.Title
	}
	if req.Body != nil {
		slide.Body = *req.Body
	}
	if req.Reference != nil {
		slide.Reference = *req.Reference
	}
	if req.Background != nil {
		slide.Background = *req.Background
	}
	slide.LastUpdatedAt = time.Now().UTC()
	slide.LastUpdatedBy = userID

	if err := s.presentationRepo.UpdateSlide(ctx, *slide); err != nil {
		s.LogError(ctx, err, "Failed to update slide", slog.String("slide_id", slideID))
		return nil, fmt.Errorf("failed to update slide: %w", err)
	}
	return slide, nil
}

// RemoveSlide deletes a slide and compacts the positions of the remainder so
// they stay dense.
func (s *presentationService) RemoveSlide(ctx context.Context, churchID string, presentationID string, slideID string, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, churchID, domain.RoleMember); err != nil {
		return err
	}

	presentation, err := s.getOwned(ctx, churchID, presentationID)
	if err != nil {
		return err
	}

	found := false
	positions := make(map[string]int, len(presentation.Slides))
	next := 0
	for _, slide := range presentation.Slides {
		if slide.SlideID == slideID {
			found = true
			continue
		}
		positions[slide.SlideID] = next
		next++
	}
	if !found {
		return apperrors.ErrNotFound
	}

	if err := s.presentationRepo.DeleteSlide(ctx, slideID); err != nil {
		s.LogError(ctx, err, "Failed to delete slide", slog.String("slide_id", slideID))
		return fmt.Errorf("failed to remove slide: %w", err)
	}
	if len(positions) > 0 {
		if err := s.presentationRepo.ReplaceSlidePositions(ctx, presentationID, positions, userID); err != nil {
			s.LogError(ctx, err, "Failed to compact slide positions after removal", slog.String("presentation_id", presentationID))
			return fmt.Errorf("failed to reorder remaining slides: %w", err)
		}
	}
	return nil
}

// ReorderSlides applies a complete new ordering. The request must mention
// every slide exactly once.
func (s *presentationService) ReorderSlides(ctx context.Context, churchID string, presentationID string, slideIDs []string, userID string) (*domain.Presentation, error) {
	if err := s.AuthorizeUser(ctx, userID, churchID, domain.RoleMember); err != nil {
		return nil, err
	}

	presentation, err := s.getOwned(ctx, churchID, presentationID)
	if err != nil {
		return nil, err
	}

	if len(slideIDs) != len(presentation.Slides) {
		return nil, fmt.Errorf("%w: got %d ids, presentation has %d slides", ErrSlideSetMismatch, len(slideIDs), len(presentation.Slides))
	}

	existing := make(map[string]bool, len(presentation.Slides))
	for _, slide := range presentation.Slides {
		existing[slide.SlideID] = true
	}

	positions := make(map[string]int, len(slideIDs))
	for i, id := range slideIDs {
		if !existing[id] {
			return nil, fmt.Errorf("%w: unknown slide %s", ErrSlideSetMismatch, id)
		}
		if _, dup := positions[id]; dup {
			return nil, fmt.Errorf("%w: slide %s listed twice", ErrSlideSetMismatch, id)
		}
		positions[id] = i
	}

	if err := s.presentationRepo.ReplaceSlidePositions(ctx, presentationID, positions, userID); err != nil {
		s.LogError(ctx, err, "Failed to reorder slides", slog.String("presentation_id", presentationID))
		return nil, fmt.Errorf("failed to reorder slides: %w", err)
	}

	return s.getOwned(ctx, churchID, presentationID)
}
