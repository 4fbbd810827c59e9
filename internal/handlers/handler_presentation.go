package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ecclesiahq/ecclesia-backend/internal/apperrors"
	portssvc "github.com/ecclesiahq/ecclesia-backend/internal/core/ports/services"
	"github.com/ecclesiahq/ecclesia-backend/internal/dto"
	"github.com/ecclesiahq/ecclesia-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// presentationHandler handles HTTP requests for slide presentations.
type presentationHandler struct {
	presentationService portssvc.PresentationSvcFacade
}

// newPresentationHandler creates a new presentationHandler.
func newPresentationHandler(ps portssvc.PresentationSvcFacade) *presentationHandler {
	return &presentationHandler{
		presentationService: ps,
	}
}

// registerPresentationRoutes registers presentation routes nested under a church.
func registerPresentationRoutes(rg *gin.RouterGroup, presentationService portssvc.PresentationSvcFacade) {
	h := newPresentationHandler(presentationService)

	presentations := rg.Group("/presentations")
	{
		presentations.POST("", h.createPresentation)
		presentations.GET("", h.listPresentations)
		presentations.GET("/:presentation_id", h.getPresentation)
		presentations.PUT("/:presentation_id", h.updatePresentation)
		presentations.DELETE("/:presentation_id", h.deletePresentation)
		presentations.POST("/:presentation_id/duplicate", h.duplicatePresentation)

		presentations.POST("/:presentation_id/slides", h.addSlide)
		presentations.PUT("/:presentation_id/slides/:slide_id", h.updateSlide)
		presentations.DELETE("/:presentation_id/slides/:slide_id", h.removeSlide)
		// Distinct path avoids clashing with the :slide_id wildcard above
		presentations.PUT("/:presentation_id/slide-order", h.reorderSlides)
	}
}

// respondPresentationError writes the HTTP response for a presentation service error.
func respondPresentationError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to " + action + " in this church"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Presentation not found"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

// createPresentation godoc
// @Summary Create a presentation
// @Description Creates a new presentation with any initial slides
// @Tags presentations
// @Accept  json
// @Produce  json
// @Param   church_id path string true "Church ID"
// @Param   presentation body dto.CreatePresentationRequest true "Presentation details"
// @Success 201 {object} dto.PresentationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to create presentation"
// @Security BearerAuth
// @Router /churches/{church_id}/presentations [post]
func (h *presentationHandler) createPresentation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	churchID := c.Param("church_id")

	var req dto.CreatePresentationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	presentation, err := h.presentationService.CreatePresentation(c.Request.Context(), churchID, req, userID)
	if err != nil {
		respondPresentationError(c, logger, err, "create presentations")
		return
	}

	logger.Info("Presentation created successfully", slog.String("presentation_id", presentation.PresentationID))
	c.JSON(http.StatusCreated, dto.ToPresentationResponse(presentation))
}

// getPresentation godoc
// @Summary Get a presentation by ID
// @Description Retrieves a presentation with its slides in order
// @Tags presentations
// @Produce  json
// @Param   church_id path string true "Church ID"
// @Param   presentation_id path string true "Presentation ID"
// @Success 200 {object} dto.PresentationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Presentation not found"
// @Failure 500 {object} map[string]string "Failed to retrieve presentation"
// @Security BearerAuth
// @Router /churches/{church_id}/presentations/{presentation_id} [get]
func (h *presentationHandler) getPresentation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	churchID := c.Param("church_id")
	presentationID := c.Param("presentation_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	presentation, err := h.presentationService.GetPresentationByID(c.Request.Context(), churchID, presentationID, userID)
	if err != nil {
		respondPresentationError(c, logger, err, "retrieve presentations")
		return
	}

	c.JSON(http.StatusOK, dto.ToPresentationResponse(presentation))
}

// listPresentations godoc
// @Summary List presentations
// @Description Retrieves a paginated list of a church's presentations, most recently updated first
// @Tags presentations
// @Produce  json
// @Param   church_id path string true "Church ID"
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.PresentationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to list presentations"
// @Security BearerAuth
// @Router /churches/{church_id}/presentations [get]
func (h *presentationHandler) listPresentations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	churchID := c.Param("church_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	presentations, err := h.presentationService.ListPresentations(c.Request.Context(), churchID, userID, limit, offset)
	if err != nil {
		respondPresentationError(c, logger, err, "list presentations")
		return
	}

	c.JSON(http.StatusOK, dto.ToListPresentationsResponse(presentations))
}

// updatePresentation godoc
// @Summary Update a presentation
// @Description Updates a presentation's title and theme
// @Tags presentations
// @Accept  json
// @Produce  json
// @Param   church_id path string true "Church ID"
// @Param   presentation_id path string true "Presentation ID"
// @Param   presentation body dto.UpdatePresentationRequest true "Fields to update"
// @Success 200 {object} dto.PresentationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Presentation not found"
// @Failure 500 {object} map[string]string "Failed to update presentation"
// @Security BearerAuth
// @Router /churches/{church_id}/presentations/{presentation_id} [put]
func (h *presentationHandler) updatePresentation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	churchID := c.Param("church_id")
	presentationID := c.Param("presentation_id")

	var req dto.UpdatePresentationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	presentation, err := h.presentationService.UpdatePresentation(c.Request.Context(), churchID, presentationID, req, userID)
	if err != nil {
		respondPresentationError(c, logger, err, "update presentations")
		return
	}

	c.JSON(http.StatusOK, dto.ToPresentationResponse(presentation))
}

// deletePresentation godoc
// @Summary Delete a presentation
// @Description Removes a presentation and all of its slides
// @Tags presentations
// @Produce  json
// @Param   church_id path string true "Church ID"
// @Param   presentation_id path string true "Presentation ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Presentation not found"
// @Failure 500 {object} map[string]string "Failed to delete presentation"
// @Security BearerAuth
// @Router /churches/{church_id}/presentations/{presentation_id} [delete]
func (h *presentationHandler) deletePresentation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	churchID := c.Param("church_id")
	presentationID := c.Param("presentation_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.presentationService.DeletePresentation(c.Request.Context(), churchID, presentationID, userID); err != nil {
		respondPresentationError(c, logger, err, "delete presentations")
		return
	}

	c.Status(http.StatusNoContent)
}

// duplicatePresentation godoc
// @Summary Duplicate a presentation
// @Description Deep-copies a presentation and its slides with fresh identifiers
// @Tags presentations
// @Produce  json
// @Param   church_id path string true "Church ID"
// @Param   presentation_id path string true "Presentation ID"
// @Success 201 {object} dto.PresentationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Presentation not found"
// @Failure 500 {object} map[string]string "Failed to duplicate presentation"
// @Security BearerAuth
// @Router /churches/{church_id}/presentations/{presentation_id}/duplicate [post]
func (h *presentationHandler) duplicatePresentation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	churchID := c.Param("church_id")
	presentationID := c.Param("presentation_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	duplicated, err := h.presentationService.DuplicatePresentation(c.Request.Context(), churchID, presentationID, userID)
	if err != nil {
		respondPresentationError(c, logger, err, "duplicate presentations")
		return
	}

	logger.Info("Presentation duplicated", slog.String("source_presentation_id", presentationID), slog.String("presentation_id", duplicated.PresentationID))
	c.JSON(http.StatusCreated, dto.ToPresentationResponse(duplicated))
}

// addSlide godoc
// @Summary Add a slide
// @Description Appends a slide to a presentation
// @Tags presentations
// @Accept  json
// @Produce  json
// @Param   church_id path string true "Church ID"
// @Param   presentation_id path string true "Presentation ID"
// @Param   slide body dto.CreateSlideRequest true "Slide details"
// @Success 201 {object} dto.SlideResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Presentation not found"
// @Failure 500 {object} map[string]string "Failed to add slide"
// @Security BearerAuth
// @Router /churches/{church_id}/presentations/{presentation_id}/slides [post]
func (h *presentationHandler) addSlide(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	churchID := c.Param("church_id")
	presentationID := c.Param("presentation_id")

	var req dto.CreateSlideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	slide, err := h.presentationService.AddSlide(c.Request.Context(), churchID, presentationID, req, userID)
	if err != nil {
		respondPresentationError(c, logger, err, "add slides")
		return
	}

	c.JSON(http.StatusCreated, dto.ToSlideResponse(slide))
}

// updateSlide godoc
// @Summary Update a slide
// @Description Updates a slide's content
// @Tags presentations
// @Accept  json
// @Produce  json
// @Param   church_id path string true "Church ID"
// @Param   presentation_id path string true "Presentation ID"
// @Param   slide_id path string true "Slide ID"
// @Param   slide body dto.UpdateSlideRequest true "Slide fields to update"
// @Success 200 {object} dto.SlideResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Slide not found"
// @Failure 500 {object} map[string]string "Failed to update slide"
// @Security BearerAuth
// @Router /churches/{church_id}/presentations/{presentation_id}/slides/{slide_id} [put]
func (h *presentationHandler) updateSlide(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	churchID := c.Param("church_id")
	presentationID := c.Param("presentation_id")
	slideID := c.Param("slide_id")

	var req dto.UpdateSlideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	slide, err := h.presentationService.UpdateSlide(c.Request.Context(), churchID, presentationID, slideID, req, userID)
	if err != nil {
		respondPresentationError(c, logger, err, "update slides")
		return
	}

	c.JSON(http.StatusOK, dto.ToSlideResponse(slide))
}

// removeSlide godoc
// @Summary Remove a slide
// @Description Deletes a slide and closes the position gap it leaves
// @Tags presentations
// @Produce  json
// @Param   church_id path string true "Church ID"
// @Param   presentation_id path string true "Presentation ID"
// @Param   slide_id path string true "Slide ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Slide not found"
// @Failure 500 {object} map[string]string "Failed to remove slide"
// @Security BearerAuth
// @Router /churches/{church_id}/presentations/{presentation_id}/slides/{slide_id} [delete]
func (h *presentationHandler) removeSlide(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	churchID := c.Param("church_id")
	presentationID := c.Param("presentation_id")
	slideID := c.Param("slide_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.presentationService.RemoveSlide(c.Request.Context(), churchID, presentationID, slideID, userID); err != nil {
		respondPresentationError(c, logger, err, "remove slides")
		return
	}

	c.Status(http.StatusNoContent)
}

// reorderSlides godoc
// @Summary Reorder slides
// @Description Applies a full ordering of slide IDs to a presentation
// @Tags presentations
// @Accept  json
// @Produce  json
// @Param   church_id path string true "Church ID"
// @Param   presentation_id path string true "Presentation ID"
// @Param   order body dto.ReorderSlidesRequest true "Complete ordered list of slide IDs"
// @Success 200 {object} dto.PresentationResponse
// @Failure 400 {object} map[string]string "Invalid or incomplete slide ID list"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Presentation not found"
// @Failure 500 {object} map[string]string "Failed to reorder slides"
// @Security BearerAuth
// @Router /churches/{church_id}/presentations/{presentation_id}/slide-order [put]
func (h *presentationHandler) reorderSlides(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	churchID := c.Param("church_id")
	presentationID := c.Param("presentation_id")

	var req dto.ReorderSlidesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	presentation, err := h.presentationService.ReorderSlides(c.Request.Context(), churchID, presentationID, req.SlideIDs, userID)
	if err != nil {
		respondPresentationError(c, logger, err, "reorder slides")
		return
	}

	c.JSON(http.StatusOK, dto.ToPresentationResponse(presentation))
}
