package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ecclesiahq/ecclesia-backend/internal/apperrors"
	portssvc "github.com/ecclesiahq/ecclesia-backend/internal/core/ports/services"
	"github.com/ecclesiahq/ecclesia-backend/internal/dto"
	"github.com/ecclesiahq/ecclesia-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to financial reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	// Routes for reports are nested under a specific church
	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/balances", h.getAccountBalances)
		reportingGroup.GET("/income-statement", h.getIncomeStatement)
		reportingGroup.GET("/balance-sheet", h.getBalanceSheet)
		reportingGroup.GET("/trial-balance", h.getTrialBalance)
	}
}

// parseDateQuery parses a YYYY-MM-DD query parameter, returning the zero time
// when the parameter is absent.
func parseDateQuery(c *gin.Context, name string) (time.Time, bool) {
	value := c.Query(name)
	if value == "" {
		return time.Time{}, true
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func respondReportError(c *gin.Context, logger *slog.Logger, err error, report string) {
	if errors.Is(err, apperrors.ErrForbidden) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this report"})
	} else if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Church not found"})
	} else {
		logger.Error("Failed to generate "+report, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate " + report})
	}
}

// getAccountBalances godoc
// @Summary Derive per-account balances
// @Description Derives signed per-account balances over posted lines dated within an optional period
// @Tags reports
// @Produce json
// @Param church_id path string true "Church ID"
// @Param fromDate query string false "Start date (YYYY-MM-DD), unbounded when omitted"
// @Param toDate query string false "End date (YYYY-MM-DD), unbounded when omitted"
// @Success 200 {object} dto.AccountBalancesResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (User not authorized)"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /churches/{church_id}/reports/balances [get]
func (h *reportingHandler) getAccountBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	churchID := c.Param("church_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	from, ok := parseDateQuery(c, "fromDate")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fromDate format. Use YYYY-MM-DD"})
		return
	}
	to, ok := parseDateQuery(c, "toDate")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid toDate format. Use YYYY-MM-DD"})
		return
	}

	balances, err := h.reportingService.AccountBalances(c.Request.Context(), churchID, from, to, userID)
	if err != nil {
		respondReportError(c, logger, err, "account balances")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountBalancesResponse(balances, from, to))
}

// getIncomeStatement godoc
// @Summary Generate income statement
// @Description Generates an income statement (revenue and expenses) for a specific period
// @Tags reports
// @Produce json
// @Param church_id path string true "Church ID"
// @Param fromDate query string false "Start date (YYYY-MM-DD)" default(first day of current month)
// @Param toDate query string false "End date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.IncomeStatementResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (User not authorized)"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /churches/{church_id}/reports/income-statement [get]
func (h *reportingHandler) getIncomeStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	churchID := c.Param("church_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	now := time.Now().UTC()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	fromStr := c.DefaultQuery("fromDate", firstOfMonth.Format("2006-01-02"))
	from, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fromDate format. Use YYYY-MM-DD"})
		return
	}
	toStr := c.DefaultQuery("toDate", now.Format("2006-01-02"))
	to, err := time.Parse("2006-01-02", toStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid toDate format. Use YYYY-MM-DD"})
		return
	}

	report, err := h.reportingService.IncomeStatement(c.Request.Context(), churchID, from, to, userID)
	if err != nil {
		respondReportError(c, logger, err, "income statement")
		return
	}

	c.JSON(http.StatusOK, dto.ToIncomeStatementResponse(report, from, to))
}

// getBalanceSheet godoc
// @Summary Generate balance sheet
// @Description Generates a balance sheet report as of a specific date
// @Tags reports
// @Produce json
// @Param church_id path string true "Church ID"
// @Param asOf query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.BalanceSheetResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (User not authorized)"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /churches/{church_id}/reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	churchID := c.Param("church_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	asOfStr := c.DefaultQuery("asOf", time.Now().Format("2006-01-02"))
	asOf, err := time.Parse("2006-01-02", asOfStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), churchID, asOf, userID)
	if err != nil {
		respondReportError(c, logger, err, "balance sheet")
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(report, asOf))
}

// getTrialBalance godoc
// @Summary Generate trial balance report
// @Description Generates a trial balance report as of a specific date
// @Tags reports
// @Produce json
// @Param church_id path string true "Church ID"
// @Param asOf query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (User not authorized)"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /churches/{church_id}/reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	churchID := c.Param("church_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	asOfStr := c.DefaultQuery("asOf", time.Now().Format("2006-01-02"))
	asOf, err := time.Parse("2006-01-02", asOfStr)
	if err != nil {
		logger.Warn("Invalid asOf date format", slog.String("asOf", asOfStr), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	trialBalanceRows, err := h.reportingService.TrialBalance(c.Request.Context(), churchID, asOf, userID)
	if err != nil {
		respondReportError(c, logger, err, "trial balance report")
		return
	}

	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(trialBalanceRows, asOf))
}
