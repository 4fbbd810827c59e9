package dto

import (
	"time"

	"github.com/ecclesiahq/ecclesia-backend/internal/core/domain"
)

// --- Church DTOs ---

// CreateChurchRequest defines data for creating a new church.
type CreateChurchRequest struct {
	Name                string `json:"name" binding:"required"`
	Description         string `json:"description"`
	DefaultCurrencyCode string `json:"defaultCurrencyCode" binding:"omitempty,iso4217"`
}

// UpdateChurchRequest defines data for updating a church.
type UpdateChurchRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// ChurchResponse defines data returned for a church.
type ChurchResponse struct {
	ChurchID            string    `json:"churchID"`
	Name                string    `json:"name"`
	Description         string    `json:"description"`
	DefaultCurrencyCode *string   `json:"defaultCurrencyCode,omitempty"`
	IsActive            bool      `json:"isActive"`
	CreatedAt           time.Time `json:"createdAt"`
	CreatedBy           string    `json:"createdBy"` // UserID
	LastUpdatedAt       time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy       string    `json:"lastUpdatedBy"` // UserID
}

// ToChurchResponse converts domain.Church to DTO.
func ToChurchResponse(c *domain.Church) ChurchResponse {
	return ChurchResponse{
		ChurchID:            c.ChurchID,
		Name:                c.Name,
		Description:         c.Description,
		DefaultCurrencyCode: c.DefaultCurrencyCode,
		IsActive:            c.IsActive,
		CreatedAt:           c.CreatedAt,
		CreatedBy:           c.CreatedBy,
		LastUpdatedAt:       c.LastUpdatedAt,
		LastUpdatedBy:       c.LastUpdatedBy,
	}
}

// ListChurchesResponse wraps a list of churches.
type ListChurchesResponse struct {
	Churches []ChurchResponse `json:"churches"`
}

// ToListChurchesResponse converts a slice of domain.Church to DTO.
func ToListChurchesResponse(cs []domain.Church) ListChurchesResponse {
	list := make([]ChurchResponse, len(cs))
	for i, c := range cs {
		list[i] = ToChurchResponse(&c)
	}
	return ListChurchesResponse{Churches: list}
}

// --- Membership DTOs ---

// AddUserToChurchRequest defines data for adding a user to a church.
type AddUserToChurchRequest struct {
	UserID string                `json:"userID" binding:"required"`
	Role   domain.UserChurchRole `json:"role" binding:"required,oneof=ADMIN TREASURER MEMBER READONLY"`
}

// UpdateChurchRoleRequest defines data for changing a member's role.
type UpdateChurchRoleRequest struct {
	Role domain.UserChurchRole `json:"role" binding:"required,oneof=ADMIN TREASURER MEMBER READONLY"`
}

// UserChurchResponse defines data returned about a user's membership.
type UserChurchResponse struct {
	UserID   string                `json:"userID"`
	UserName string                `json:"userName"`
	ChurchID string                `json:"churchID"`
	Role     domain.UserChurchRole `json:"role"`
	JoinedAt time.Time             `json:"joinedAt"`
}

// ToUserChurchResponse converts domain.UserChurch to DTO.
func ToUserChurchResponse(uc *domain.UserChurch) UserChurchResponse {
	return UserChurchResponse{
		UserID:   uc.UserID,
		UserName: uc.UserName,
		ChurchID: uc.ChurchID,
		Role:     uc.Role,
		JoinedAt: uc.JoinedAt,
	}
}

// ToListUserChurchResponse converts memberships to DTOs.
func ToListUserChurchResponse(ucs []domain.UserChurch) []UserChurchResponse {
	list := make([]UserChurchResponse, len(ucs))
	for i, uc := range ucs {
		list[i] = ToUserChurchResponse(&uc)
	}
	return list
}
