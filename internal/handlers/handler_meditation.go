package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ecclesiahq/ecclesia-backend/internal/apperrors"
	portssvc "github.com/ecclesiahq/ecclesia-backend/internal/core/ports/services"
	"github.com/ecclesiahq/ecclesia-backend/internal/dto"
	"github.com/ecclesiahq/ecclesia-backend/internal/middleware"
	"github.com/ecclesiahq/ecclesia-backend/internal/utils/meditation"

	"github.com/gin-gonic/gin"
)

// meditationHandler handles HTTP requests for scripture meditation.
// All routes are scoped to the authenticated user.
type meditationHandler struct {
	meditationService portssvc.MeditationSvcFacade
}

// newMeditationHandler creates a new meditationHandler.
func newMeditationHandler(ms portssvc.MeditationSvcFacade) *meditationHandler {
	return &meditationHandler{
		meditationService: ms,
	}
}

// registerMeditationRoutes registers all meditation-related routes.
func registerMeditationRoutes(rg *gin.RouterGroup, meditationService portssvc.MeditationSvcFacade) {
	h := newMeditationHandler(meditationService)

	meditations := rg.Group("/meditations")
	{
		meditations.POST("/sessions", h.recordSession)
		meditations.GET("/sessions", h.listSessions)
		meditations.POST("/sessions/:session_id/feedback", h.submitFeedback)
		meditations.GET("/streak", h.getStreak)
		meditations.GET("/recommendations", h.getRecommendations)
		meditations.POST("/generate", h.generateMeditation)
	}
}

// recordSession godoc
// @Summary Record a meditation session
// @Description Persists a completed meditation session for the authenticated user
// @Tags meditations
// @Accept  json
// @Produce  json
// @Param   session body dto.RecordSessionRequest true "Session details"
// @Success 201 {object} dto.SessionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to record session"
// @Security BearerAuth
// @Router /meditations/sessions [post]
func (h *meditationHandler) recordSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RecordSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	session, err := h.meditationService.RecordSession(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to record meditation session", slog.String("error", err.Error()), slog.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record session"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToSessionResponse(session))
}

// listSessions godoc
// @Summary List meditation sessions
// @Description Retrieves a paginated list of the user's sessions, newest first
// @Tags meditations
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   nextToken query string false "Pagination token from a previous response"
// @Success 200 {object} dto.ListSessionsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list sessions"
// @Security BearerAuth
// @Router /meditations/sessions [get]
func (h *meditationHandler) listSessions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListSessionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.meditationService.ListSessions(c.Request.Context(), userID, params)
	if err != nil {
		logger.Error("Failed to list meditation sessions", slog.String("error", err.Error()), slog.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list sessions"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// submitFeedback godoc
// @Summary Submit session feedback
// @Description Records the user's rating for one of their own sessions
// @Tags meditations
// @Accept  json
// @Produce  json
// @Param   session_id path string true "Session ID"
// @Param   feedback body dto.SessionFeedbackRequest true "Feedback"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (not the session owner)"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 500 {object} map[string]string "Failed to submit feedback"
// @Security BearerAuth
// @Router /meditations/sessions/{session_id}/feedback [post]
func (h *meditationHandler) submitFeedback(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("session_id")

	var req dto.SessionFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.meditationService.SubmitFeedback(c.Request.Context(), userID, sessionID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only rate your own sessions"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to submit session feedback", slog.String("error", err.Error()), slog.String("session_id", sessionID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit feedback"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// getStreak godoc
// @Summary Get meditation streak
// @Description Derives the user's current and longest daily streaks from their session history
// @Tags meditations
// @Produce  json
// @Success 200 {object} dto.StreakResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute streak"
// @Security BearerAuth
// @Router /meditations/streak [get]
func (h *meditationHandler) getStreak(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	streak, err := h.meditationService.GetStreak(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to compute streak", slog.String("error", err.Error()), slog.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute streak"})
		return
	}

	c.JSON(http.StatusOK, dto.ToStreakResponse(streak, meditation.StreakTier(streak.CurrentStreak)))
}

// getRecommendations godoc
// @Summary Get emotion recommendations
// @Description Returns three suggested emotions based on the user's history and time of day
// @Tags meditations
// @Produce  json
// @Success 200 {object} dto.RecommendationsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute recommendations"
// @Security BearerAuth
// @Router /meditations/recommendations [get]
func (h *meditationHandler) getRecommendations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	recs, err := h.meditationService.GetRecommendations(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to compute recommendations", slog.String("error", err.Error()), slog.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute recommendations"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRecommendationsResponse(recs))
}

// generateMeditation godoc
// @Summary Generate a guided meditation
// @Description Produces guided meditation content for an emotion, serving static fallback content when the AI vendor is unavailable
// @Tags meditations
// @Accept  json
// @Produce  json
// @Param   request body dto.GenerateMeditationRequest true "Generation request"
// @Success 200 {object} dto.GeneratedMeditationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate meditation"
// @Security BearerAuth
// @Router /meditations/generate [post]
func (h *meditationHandler) generateMeditation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.GenerateMeditationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	generated, err := h.meditationService.GenerateMeditation(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to generate meditation", slog.String("error", err.Error()), slog.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate meditation"})
		return
	}

	c.JSON(http.StatusOK, dto.ToGeneratedMeditationResponse(generated))
}
