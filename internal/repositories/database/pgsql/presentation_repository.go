package pgsql

import (
	"context"
	"errors"

	"github.com/ecclesiahq/ecclesia-backend/internal/apperrors"
	"github.com/ecclesiahq/ecclesia-backend/internal/core/domain"
	portsrepo "github.com/ecclesiahq/ecclesia-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPresentationRepository struct {
	BaseRepository
}

// newPgxPresentationRepository creates a new repository for presentation data.
func newPgxPresentationRepository(pool *pgxpool.Pool) portsrepo.PresentationRepositoryFacade {
	return &PgxPresentationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxPresentationRepository implements portsrepo.PresentationRepositoryFacade
var _ portsrepo.PresentationRepositoryFacade = (*PgxPresentationRepository)(nil)

const presentationColumns = `presentation_id, church_id, title, theme, created_at, created_by, last_updated_at, last_updated_by`

const slideColumns = `slide_id, presentation_id, position, title, body, reference, background, created_at, created_by, last_updated_at, last_updated_by`

func scanPresentation(row pgx.Row) (domain.Presentation, error) {
	var p domain.Presentation
	err := row.Scan(
		&p.PresentationID,
		&p.ChurchID,
		&p.Title,
		&p.Theme,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	return p, err
}

func scanSlide(row pgx.Row) (domain.Slide, error) {
	var s domain.Slide
	err := row.Scan(
		&s.SlideID,
		&s.PresentationID,
		&s.Position,
		&s.Title,
		&s.Body,
		&s.Reference,
		&s.Background,
		&s.CreatedAt,
		&s.CreatedBy,
		&s.LastUpdatedAt,
		&s.LastUpdatedBy,
	)
	return s, err
}

// FindPresentationByID retrieves a presentation with its slides in position order.
func (r *PgxPresentationRepository) FindPresentationByID(ctx context.Context, presentationID string) (*domain.Presentation, error) {
	query := `
		SELECT ` + presentationColumns + `
		FROM presentations
		WHERE presentation_id = $1;
	`
	presentation, err := scanPresentation(r.Pool.QueryRow(ctx, query, presentationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find presentation "+presentationID, err)
	}

	slideQuery := `
		SELECT ` + slideColumns + `
		FROM slides
		WHERE presentation_id = $1
		ORDER BY position;
	`
	rows, err := r.Pool.Query(ctx, slideQuery, presentationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query slides for presentation "+presentationID, err)
	}
	defer rows.Close()

	slides := []domain.Slide{}
	for rows.Next() {
		s, scanErr := scanSlide(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan slide row for presentation "+presentationID, scanErr)
		}
		slides = append(slides, s)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating slide rows for presentation "+presentationID, err)
	}

	presentation.Slides = slides
	return &presentation, nil
}

// ListPresentationsByChurch retrieves a paginated list of presentations for a
// church, newest first, without slides.
func (r *PgxPresentationRepository) ListPresentationsByChurch(ctx context.Context, churchID string, limit int, offset int) ([]domain.Presentation, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + presentationColumns + `
		FROM presentations
		WHERE church_id = $1
		ORDER BY last_updated_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, churchID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query presentations for church "+churchID, err)
	}
	defer rows.Close()

	presentations := []domain.Presentation{}
	for rows.Next() {
		p, scanErr := scanPresentation(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan presentation row for church "+churchID, scanErr)
		}
		presentations = append(presentations, p)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating presentation rows for church "+churchID, err)
	}

	return presentations, nil
}

// SavePresentation persists a new presentation and any initial slides atomically.
func (r *PgxPresentationRepository) SavePresentation(ctx context.Context, presentation domain.Presentation) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO presentations (` + presentationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, query,
		presentation.PresentationID,
		presentation.ChurchID,
		presentation.Title,
		presentation.Theme,
		presentation.CreatedAt,
		presentation.CreatedBy,
		presentation.LastUpdatedAt,
		presentation.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert presentation "+presentation.PresentationID, err)
	}

	if len(presentation.Slides) > 0 {
		batch := &pgx.Batch{}
		slideQuery := `
			INSERT INTO slides (` + slideColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
		`
		for _, slide := range presentation.Slides {
			batch.Queue(slideQuery,
				slide.SlideID,
				slide.PresentationID,
				slide.Position,
				slide.Title,
				slide.Body,
				slide.Reference,
				slide.Background,
				slide.CreatedAt,
				slide.CreatedBy,
				slide.LastUpdatedAt,
				slide.LastUpdatedBy,
			)
		}
		br := tx.SendBatch(ctx, batch)
		if err := br.Close(); err != nil {
			return apperrors.NewAppError(500, "failed to insert slides for presentation "+presentation.PresentationID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// UpdatePresentation updates a presentation's header fields.
func (r *PgxPresentationRepository) UpdatePresentation(ctx context.Context, presentation domain.Presentation) error {
	query := `
		UPDATE presentations
		SET title = $2, theme = $3, last_updated_at = $4, last_updated_by = $5
		WHERE presentation_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		presentation.PresentationID,
		presentation.Title,
		presentation.Theme,
		presentation.LastUpdatedAt,
		presentation.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update presentation "+presentation.PresentationID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("presentation " + presentation.PresentationID + " not found for update")
	}
	return nil
}

// DeletePresentation removes a presentation and all of its slides.
// Slides are removed by the ON DELETE CASCADE on slides.presentation_id.
func (r *PgxPresentationRepository) DeletePresentation(ctx context.Context, presentationID string) error {
	query := `DELETE FROM presentations WHERE presentation_id = $1;`
	cmdTag, err := r.Pool.Exec(ctx, query, presentationID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete presentation "+presentationID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("presentation " + presentationID + " not found for delete")
	}
	return nil
}

// SaveSlide persists a new slide at its position.
func (r *PgxPresentationRepository) SaveSlide(ctx context.Context, slide domain.Slide) error {
	query := `
		INSERT INTO slides (` + slideColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		slide.SlideID,
		slide.PresentationID,
		slide.Position,
		slide.Title,
		slide.Body,
		slide.Reference,
		slide.Background,
		slide.CreatedAt,
		slide.CreatedBy,
		slide.LastUpdatedAt,
		slide.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save slide "+slide.SlideID, err)
	}
	return nil
}

// UpdateSlide updates an existing slide's content.
func (r *PgxPresentationRepository) UpdateSlide(ctx context.Context, slide domain.Slide) error {
	query := `
		UPDATE slides
		SET title = $2, body = $3, reference = $4, background = $5, last_updated_at = $6, last_updated_by = $7
		WHERE slide_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		slide.SlideID,
		slide.Title,
		slide.Body,
		slide.Reference,
		slide.Background,
		slide.LastUpdatedAt,
		slide.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update slide "+slide.SlideID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("slide " + slide.SlideID + " not found for update")
	}
	return nil
}

// DeleteSlide removes a slide.
func (r *PgxPresentationRepository) DeleteSlide(ctx context.Context, slideID string) error {
	query := `DELETE FROM slides WHERE slide_id = $1;`
	cmdTag, err := r.Pool.Exec(ctx, query, slideID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete slide "+slideID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("slide " + slideID + " not found for delete")
	}
	return nil
}

// ReplaceSlidePositions rewrites the position of every slide in a
// presentation atomically, keyed by slide ID.
func (r *PgxPresentationRepository) ReplaceSlidePositions(ctx context.Context, presentationID string, positions map[string]int, updatedByUserID string) error {
	if len(positions) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// Two passes avoid transient unique collisions on (presentation_id, position).
	offsetQuery := `
		UPDATE slides
		SET position = position + $2
		WHERE presentation_id = $1;
	`
	if _, err := tx.Exec(ctx, offsetQuery, presentationID, len(positions)+1); err != nil {
		return apperrors.NewAppError(500, "failed to offset slide positions for presentation "+presentationID, err)
	}

	query := `
		UPDATE slides
		SET position = $3, last_updated_at = NOW(), last_updated_by = $4
		WHERE slide_id = $1 AND presentation_id = $2;
	`
	batch := &pgx.Batch{}
	for slideID, position := range positions {
		batch.Queue(query, slideID, presentationID, position, updatedByUserID)
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		ct, execErr := br.Exec()
		if execErr != nil && batchErr == nil {
			batchErr = apperrors.NewAppError(500, "failed to update slide position in presentation "+presentationID, execErr)
		} else if execErr == nil && ct.RowsAffected() == 0 && batchErr == nil {
			batchErr = apperrors.NewNotFoundError("slide not found in presentation " + presentationID)
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = apperrors.NewAppError(500, "failed to close slide position batch", err)
	}
	if batchErr != nil {
		return batchErr
	}

	return r.Commit(ctx, tx)
}
