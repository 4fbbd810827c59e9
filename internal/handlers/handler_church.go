package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ecclesiahq/ecclesia-backend/internal/apperrors"
	portssvc "github.com/ecclesiahq/ecclesia-backend/internal/core/ports/services"
	"github.com/ecclesiahq/ecclesia-backend/internal/dto"
	"github.com/ecclesiahq/ecclesia-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// churchHandler handles HTTP requests related to churches and their membership.
type churchHandler struct {
	churchService portssvc.ChurchSvcFacade
}

// newChurchHandler creates a new churchHandler.
func newChurchHandler(cs portssvc.ChurchSvcFacade) *churchHandler {
	return &churchHandler{
		churchService: cs,
	}
}

// registerChurchRoutes registers church routes plus all church-scoped
// sub-resources (accounts, transactions, reports, presentations).
func registerChurchRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newChurchHandler(services.Church)

	churches := rg.Group("/churches")
	{
		churches.POST("", h.createChurch)
		churches.GET("", h.listUserChurches)
		churches.GET("/:church_id", h.getChurch)
		churches.PUT("/:church_id", h.updateChurch)
		churches.POST("/:church_id/deactivate", h.deactivateChurch)
		churches.POST("/:church_id/activate", h.activateChurch)

		churches.GET("/:church_id/users", h.listChurchUsers)
		churches.POST("/:church_id/users", h.addUserToChurch)
		churches.PUT("/:church_id/users/:user_id/role", h.updateUserChurchRole)
		churches.DELETE("/:church_id/users/:user_id", h.removeUserFromChurch)
	}

	// Church-scoped sub-resources share the /churches/:church_id prefix
	churchSpecific := churches.Group("/:church_id")
	registerAccountRoutes(churchSpecific, services.Account)
	registerTransactionRoutes(churchSpecific, services.Transaction)
	registerReportingRoutes(churchSpecific, services.Reporting)
	registerPresentationRoutes(churchSpecific, services.Presentation)
}

// createChurch godoc
// @Summary Create a new church
// @Description Creates a new church with the requesting user as its admin
// @Tags churches
// @Accept  json
// @Produce  json
// @Param   church body dto.CreateChurchRequest true "Church details"
// @Success 201 {object} dto.ChurchResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create church"
// @Security BearerAuth
// @Router /churches [post]
func (h *churchHandler) createChurch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateChurchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	church, err := h.churchService.CreateChurch(c.Request.Context(), req.Name, req.Description, req.DefaultCurrencyCode, creatorUserID)
	if err != nil {
		logger.Error("Failed to create church", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create church"})
		return
	}

	logger.Info("Church created successfully", slog.String("church_id", church.ChurchID))
	c.JSON(http.StatusCreated, dto.ToChurchResponse(church))
}

// listUserChurches godoc
// @Summary List churches for the current user
// @Description Retrieves the churches the requesting user belongs to
// @Tags churches
// @Produce  json
// @Param   includeDisabled query bool false "Include inactive churches" default(false)
// @Success 200 {object} dto.ListChurchesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list churches"
// @Security BearerAuth
// @Router /churches [get]
func (h *churchHandler) listUserChurches(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	includeDisabled := c.DefaultQuery("includeDisabled", "false") == "true"

	churches, err := h.churchService.ListUserChurches(c.Request.Context(), userID, includeDisabled)
	if err != nil {
		logger.Error("Failed to list churches for user", slog.String("error", err.Error()), slog.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list churches"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListChurchesResponse(churches))
}

// getChurch godoc
// @Summary Get a church by ID
// @Description Retrieves details for a specific church
// @Tags churches
// @Produce  json
// @Param   church_id path string true "Church ID"
// @Success 200 {object} dto.ChurchResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Church not found"
// @Failure 500 {object} map[string]string "Failed to retrieve church"
// @Security BearerAuth
// @Router /churches/{church_id} [get]
func (h *churchHandler) getChurch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	churchID := c.Param("church_id")

	church, err := h.churchService.FindChurchByID(c.Request.Context(), churchID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Church not found"})
		} else {
			logger.Error("Failed to get church", slog.String("error", err.Error()), slog.String("church_id", churchID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve church"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToChurchResponse(church))
}

// updateChurch godoc
// @Summary Update a church
// @Description Updates a church's name and description (admin only)
// @Tags churches
// @Accept  json
// @Produce  json
// @Param   church_id path string true "Church ID"
// @Param   church body dto.UpdateChurchRequest true "Church details to update"
// @Success 200 {object} dto.ChurchResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (not a church admin)"
// @Failure 404 {object} map[string]string "Church not found"
// @Failure 500 {object} map[string]string "Failed to update church"
// @Security BearerAuth
// @Router /churches/{church_id} [put]
func (h *churchHandler) updateChurch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	churchID := c.Param("church_id")

	var req dto.UpdateChurchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var name, description string
	if req.Name != nil {
		name = *req.Name
	}
	if req.Description != nil {
		description = *req.Description
	}

	church, err := h.churchService.UpdateChurch(c.Request.Context(), churchID, name, description, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only church admins can update the church"})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Church not found"})
		} else {
			logger.Error("Failed to update church", slog.String("error", err.Error()), slog.String("church_id", churchID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update church"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToChurchResponse(church))
}

// deactivateChurch godoc
// @Summary Deactivate a church
// @Description Marks a church as inactive (admin only)
// @Tags churches
// @Produce  json
// @Param   church_id path string true "Church ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Church not found"
// @Failure 500 {object} map[string]string "Failed to deactivate church"
// @Security BearerAuth
// @Router /churches/{church_id}/deactivate [post]
func (h *churchHandler) deactivateChurch(c *gin.Context) {
	h.setChurchActive(c, false)
}

// activateChurch godoc
// @Summary Activate a church
// @Description Marks a church as active again (admin only)
// @Tags churches
// @Produce  json
// @Param   church_id path string true "Church ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Church not found"
// @Failure 500 {object} map[string]string "Failed to activate church"
// @Security BearerAuth
// @Router /churches/{church_id}/activate [post]
func (h *churchHandler) activateChurch(c *gin.Context) {
	h.setChurchActive(c, true)
}

func (h *churchHandler) setChurchActive(c *gin.Context, active bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	churchID := c.Param("church_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var err error
	if active {
		err = h.churchService.ActivateChurch(c.Request.Context(), churchID, userID)
	} else {
		err = h.churchService.DeactivateChurch(c.Request.Context(), churchID, userID)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only church admins can change church status"})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Church not found"})
		} else {
			logger.Error("Failed to change church active status", slog.String("error", err.Error()), slog.String("church_id", churchID), slog.Bool("active", active))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change church status"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// listChurchUsers godoc
// @Summary List church members
// @Description Retrieves all members of a church with their roles
// @Tags churches
// @Produce  json
// @Param   church_id path string true "Church ID"
// @Success 200 {array} dto.UserChurchResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (not a member)"
// @Failure 500 {object} map[string]string "Failed to list members"
// @Security BearerAuth
// @Router /churches/{church_id}/users [get]
func (h *churchHandler) listChurchUsers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	churchID := c.Param("church_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	memberships, err := h.churchService.ListChurchUsers(c.Request.Context(), churchID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only church members can view the member list"})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Church not found"})
		} else {
			logger.Error("Failed to list church users", slog.String("error", err.Error()), slog.String("church_id", churchID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list church members"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListUserChurchResponse(memberships))
}

// addUserToChurch godoc
// @Summary Add a user to a church
// @Description Adds a user to a church with a role (admin only)
// @Tags churches
// @Accept  json
// @Produce  json
// @Param   church_id path string true "Church ID"
// @Param   membership body dto.AddUserToChurchRequest true "User and role"
// @Success 201 "Created"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Church or user not found"
// @Failure 500 {object} map[string]string "Failed to add user"
// @Security BearerAuth
// @Router /churches/{church_id}/users [post]
func (h *churchHandler) addUserToChurch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	churchID := c.Param("church_id")

	var req dto.AddUserToChurchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	addingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.churchService.AddUserToChurch(c.Request.Context(), addingUserID, req.UserID, churchID, req.Role)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only church admins can add members"})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Church or user not found"})
		} else {
			logger.Error("Failed to add user to church", slog.String("error", err.Error()), slog.String("church_id", churchID), slog.String("target_user_id", req.UserID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add user to church"})
		}
		return
	}

	c.Status(http.StatusCreated)
}

// updateUserChurchRole godoc
// @Summary Update a member's role
// @Description Changes a member's role in a church (admin only)
// @Tags churches
// @Accept  json
// @Produce  json
// @Param   church_id path string true "Church ID"
// @Param   user_id path string true "Target User ID"
// @Param   role body dto.UpdateChurchRoleRequest true "New role"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Membership not found"
// @Failure 500 {object} map[string]string "Failed to update role"
// @Security BearerAuth
// @Router /churches/{church_id}/users/{user_id}/role [put]
func (h *churchHandler) updateUserChurchRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	churchID := c.Param("church_id")
	targetUserID := c.Param("user_id")

	var req dto.UpdateChurchRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.churchService.UpdateUserChurchRole(c.Request.Context(), requestingUserID, targetUserID, churchID, req.Role)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only church admins can change roles"})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Church membership not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role change"})
		} else {
			logger.Error("Failed to update church role", slog.String("error", err.Error()), slog.String("church_id", churchID), slog.String("target_user_id", targetUserID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// removeUserFromChurch godoc
// @Summary Remove a user from a church
// @Description Removes a member from a church (admin only)
// @Tags churches
// @Produce  json
// @Param   church_id path string true "Church ID"
// @Param   user_id path string true "Target User ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Membership not found"
// @Failure 500 {object} map[string]string "Failed to remove user"
// @Security BearerAuth
// @Router /churches/{church_id}/users/{user_id} [delete]
func (h *churchHandler) removeUserFromChurch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	churchID := c.Param("church_id")
	targetUserID := c.Param("user_id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.churchService.RemoveUserFromChurch(c.Request.Context(), requestingUserID, targetUserID, churchID)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only church admins can remove members"})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Church membership not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot remove the last admin"})
		} else {
			logger.Error("Failed to remove user from church", slog.String("error", err.Error()), slog.String("church_id", churchID), slog.String("target_user_id", targetUserID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove user from church"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
