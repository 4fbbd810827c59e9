package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/ecclesiahq/ecclesia-backend/internal/core/ports/services"
	"github.com/ecclesiahq/ecclesia-backend/internal/dto"
	"github.com/ecclesiahq/ecclesia-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// preferenceHandler handles HTTP requests for per-user preferences.
type preferenceHandler struct {
	preferenceService portssvc.PreferenceSvcFacade
}

// newPreferenceHandler creates a new preferenceHandler.
func newPreferenceHandler(ps portssvc.PreferenceSvcFacade) *preferenceHandler {
	return &preferenceHandler{
		preferenceService: ps,
	}
}

// registerPreferenceRoutes registers preference routes for the authenticated user.
func registerPreferenceRoutes(rg *gin.RouterGroup, preferenceService portssvc.PreferenceSvcFacade) {
	h := newPreferenceHandler(preferenceService)

	preferences := rg.Group("/preferences")
	{
		preferences.GET("", h.getPreferences)
		preferences.PATCH("", h.updatePreferences)
	}
}

// getPreferences godoc
// @Summary Get user preferences
// @Description Retrieves the authenticated user's preferences, returning defaults when none are stored yet
// @Tags preferences
// @Produce  json
// @Success 200 {object} dto.PreferenceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to retrieve preferences"
// @Security BearerAuth
// @Router /preferences [get]
func (h *preferenceHandler) getPreferences(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	prefs, err := h.preferenceService.GetPreferences(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to get preferences", slog.String("error", err.Error()), slog.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve preferences"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPreferenceResponse(prefs))
}

// updatePreferences godoc
// @Summary Update user preferences
// @Description Applies a partial update to the authenticated user's preferences
// @Tags preferences
// @Accept  json
// @Produce  json
// @Param   preferences body dto.UpdatePreferencesRequest true "Preference fields to update"
// @Success 200 {object} dto.PreferenceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to update preferences"
// @Security BearerAuth
// @Router /preferences [patch]
func (h *preferenceHandler) updatePreferences(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	prefs, err := h.preferenceService.UpdatePreferences(c.Request.Context(), userID, req)
	if err != nil {
		logger.Error("Failed to update preferences", slog.String("error", err.Error()), slog.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update preferences"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPreferenceResponse(prefs))
}
