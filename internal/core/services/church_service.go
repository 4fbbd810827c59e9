package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ecclesiahq/ecclesia-backend/internal/apperrors"
	"github.com/ecclesiahq/ecclesia-backend/internal/core/domain"
	portsrepo "github.com/ecclesiahq/ecclesia-backend/internal/core/ports/repositories"
	portssvc "github.com/ecclesiahq/ecclesia-backend/internal/core/ports/services"
	"github.com/ecclesiahq/ecclesia-backend/internal/middleware"
	"github.com/google/uuid"
)

// roleRank orders roles for authorization checks. REMOVED ranks below
// everything so a removed member fails every check.
var roleRank = map[domain.UserChurchRole]int{
	domain.RoleAdmin:     4,
	domain.RoleTreasurer: 3,
	domain.RoleMember:    2,
	domain.RoleReadOnly:  1,
	domain.RoleRemoved:   0,
}

// churchService handles business logic related to churches and memberships.
type churchService struct {
	churchRepo portsrepo.ChurchRepositoryFacade
	userRepo   portsrepo.UserRepositoryFacade
}

// NewChurchService creates a new church service.
func NewChurchService(cr portsrepo.ChurchRepositoryFacade, ur portsrepo.UserRepositoryFacade) portssvc.ChurchSvcFacade {
	return &churchService{
		churchRepo: cr,
		userRepo:   ur,
	}
}

var _ portssvc.ChurchSvcFacade = (*churchService)(nil)

// CreateChurch creates a new church and makes the creator the initial admin.
func (s *churchService) CreateChurch(ctx context.Context, name, description, defaultCurrencyCode, creatorUserID string) (*domain.Church, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if name == "" {
		return nil, fmt.Errorf("%w: church name is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	newChurchID := uuid.NewString()

	church := domain.Church{
		ChurchID:    newChurchID,
		Name:        name,
		Description: description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if defaultCurrencyCode != "" {
		church.DefaultCurrencyCode = &defaultCurrencyCode
	}

	if err := s.churchRepo.SaveChurch(ctx, church); err != nil {
		logger.Error("Failed to save church in repository", slog.String("error", err.Error()), slog.String("church_name", name))
		return nil, fmt.Errorf("failed to create church: %w", err)
	}

	membership := domain.UserChurch{
		UserID:   creatorUserID,
		ChurchID: newChurchID,
		Role:     domain.RoleAdmin, // Creator is Admin
		JoinedAt: now,
	}
	if err := s.churchRepo.AddUserToChurch(ctx, membership); err != nil {
		logger.Error("Failed to add creator as admin to new church", slog.String("error", err.Error()), slog.String("church_id", newChurchID), slog.String("user_id", creatorUserID))
		return nil, fmt.Errorf("failed to add creator to church: %w", err)
	}

	logger.Info("Church created successfully", slog.String("church_id", newChurchID), slog.String("creator_user_id", creatorUserID))
	return &church, nil
}

// UpdateChurch updates a church's name and description.
func (s *churchService) UpdateChurch(ctx context.Context, churchID string, name, description string, requestingUserID string) (*domain.Church, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, requestingUserID, churchID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	church, err := s.churchRepo.FindChurchByID(ctx, churchID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		church.Name = name
	}
	if description != "" {
		church.Description = description
	}
	church.LastUpdatedAt = time.Now().UTC()
	church.LastUpdatedBy = requestingUserID

	if err := s.churchRepo.UpdateChurch(ctx, *church); err != nil {
		logger.Error("Failed to update church in repository", slog.String("error", err.Error()), slog.String("church_id", churchID))
		return nil, fmt.Errorf("failed to update church: %w", err)
	}

	return church, nil
}

// FindChurchByID retrieves a church by its ID.
func (s *churchService) FindChurchByID(ctx context.Context, churchID string) (*domain.Church, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	church, err := s.churchRepo.FindChurchByID(ctx, churchID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find church by ID in repository", slog.String("error", err.Error()), slog.String("church_id", churchID))
		}
		return nil, err
	}
	return church, nil
}

// ListUserChurches retrieves the list of churches a given user belongs to.
func (s *churchService) ListUserChurches(ctx context.Context, userID string, includeDisabled bool) ([]domain.Church, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	churches, err := s.churchRepo.ListChurchesByUserID(ctx, userID)
	if err != nil {
		logger.Error("Failed to list churches for user from repository", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list churches for user %s: %w", userID, err)
	}

	if !includeDisabled {
		active := churches[:0]
		for _, c := range churches {
			if c.IsActive {
				active = append(active, c)
			}
		}
		churches = active
	}

	if churches == nil {
		return []domain.Church{}, nil
	}
	return churches, nil
}

// ListChurchUsers retrieves all memberships of a church, visible to members only.
func (s *churchService) ListChurchUsers(ctx context.Context, churchID string, requestingUserID string) ([]domain.UserChurch, error) {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, churchID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	memberships, err := s.churchRepo.ListChurchUsers(ctx, churchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list church users: %w", err)
	}
	return memberships, nil
}

// DeactivateChurch marks a church as inactive.
func (s *churchService) DeactivateChurch(ctx context.Context, churchID string, requestingUserID string) error {
	return s.setChurchActive(ctx, churchID, requestingUserID, false)
}

// ActivateChurch marks a church as active.
func (s *churchService) ActivateChurch(ctx context.Context, churchID string, requestingUserID string) error {
	return s.setChurchActive(ctx, churchID, requestingUserID, true)
}

func (s *churchService) setChurchActive(ctx context.Context, churchID, requestingUserID string, active bool) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, requestingUserID, churchID, domain.RoleAdmin); err != nil {
		return err
	}

	church, err := s.churchRepo.FindChurchByID(ctx, churchID)
	if err != nil {
		return err
	}

	church.IsActive = active
	church.LastUpdatedAt = time.Now().UTC()
	church.LastUpdatedBy = requestingUserID

	if err := s.churchRepo.UpdateChurch(ctx, *church); err != nil {
		logger.Error("Failed to update church active flag", slog.String("error", err.Error()), slog.String("church_id", churchID))
		return fmt.Errorf("failed to update church: %w", err)
	}
	return nil
}

// AddUserToChurch adds a user to a church with a specific role.
func (s *churchService) AddUserToChurch(ctx context.Context, addingUserID, targetUserID, churchID string, role domain.UserChurchRole) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, addingUserID, churchID, domain.RoleAdmin); err != nil {
		return err
	}

	if _, err := s.userRepo.FindUserByID(ctx, targetUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: user %s not found", apperrors.ErrValidation, targetUserID)
		}
		return fmt.Errorf("failed to validate target user: %w", err)
	}

	membership := domain.UserChurch{
		UserID:   targetUserID,
		ChurchID: churchID,
		Role:     role,
		JoinedAt: time.Now().UTC(),
	}

	if err := s.churchRepo.AddUserToChurch(ctx, membership); err != nil {
		logger.Error("Failed to add user to church in repository", slog.String("error", err.Error()), slog.String("target_user_id", targetUserID), slog.String("church_id", churchID))
		return fmt.Errorf("failed to add user %s to church %s: %w", targetUserID, churchID, err)
	}

	logger.Info("User added to church", slog.String("target_user_id", targetUserID), slog.String("church_id", churchID), slog.String("role", string(role)), slog.String("added_by_user_id", addingUserID))
	return nil
}

// RemoveUserFromChurch marks a member's role as REMOVED. Admins cannot remove
// themselves, which keeps every church with at least one admin.
func (s *churchService) RemoveUserFromChurch(ctx context.Context, requestingUserID, targetUserID, churchID string) error {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, churchID, domain.RoleAdmin); err != nil {
		return err
	}

	if requestingUserID == targetUserID {
		return fmt.Errorf("%w: admins cannot remove themselves from a church", apperrors.ErrValidation)
	}

	if _, err := s.churchRepo.FindUserChurchRole(ctx, targetUserID, churchID); err != nil {
		return err
	}

	if err := s.churchRepo.UpdateUserChurchRole(ctx, targetUserID, churchID, domain.RoleRemoved); err != nil {
		return fmt.Errorf("failed to remove user %s from church %s: %w", targetUserID, churchID, err)
	}
	return nil
}

// UpdateUserChurchRole updates a member's role.
func (s *churchService) UpdateUserChurchRole(ctx context.Context, requestingUserID, targetUserID, churchID string, newRole domain.UserChurchRole) error {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, churchID, domain.RoleAdmin); err != nil {
		return err
	}

	if requestingUserID == targetUserID && newRole != domain.RoleAdmin {
		return fmt.Errorf("%w: admins cannot demote themselves", apperrors.ErrValidation)
	}

	if _, err := s.churchRepo.FindUserChurchRole(ctx, targetUserID, churchID); err != nil {
		return err
	}

	if err := s.churchRepo.UpdateUserChurchRole(ctx, targetUserID, churchID, newRole); err != nil {
		return fmt.Errorf("failed to update role for user %s in church %s: %w", targetUserID, churchID, err)
	}
	return nil
}

// AuthorizeUserAction checks if a user holds the required role or higher in a church.
// Returns apperrors.ErrNotFound if the user is not a member (existence is not
// revealed), apperrors.ErrForbidden if the role is insufficient.
func (s *churchService) AuthorizeUserAction(ctx context.Context, userID, churchID string, requiredRole domain.UserChurchRole) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	membership, err := s.churchRepo.FindUserChurchRole(ctx, userID, churchID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Authorization failed: user not a member of church", slog.String("user_id", userID), slog.String("church_id", churchID))
			return apperrors.ErrNotFound
		}
		logger.Error("Failed to check user church role in repository", slog.String("error", err.Error()), slog.String("user_id", userID), slog.String("church_id", churchID))
		return fmt.Errorf("failed to check authorization: %w", err)
	}

	if membership.Role == domain.RoleRemoved {
		return apperrors.ErrNotFound
	}

	if roleRank[membership.Role] >= roleRank[requiredRole] {
		return nil
	}

	logger.Warn("Authorization failed: user lacks required role", slog.String("user_id", userID), slog.String("church_id", churchID), slog.String("user_role", string(membership.Role)), slog.String("required_role", string(requiredRole)))
	return apperrors.ErrForbidden
}
