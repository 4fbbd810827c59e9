package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ecclesiahq/ecclesia-backend/internal/apperrors"
	"github.com/ecclesiahq/ecclesia-backend/internal/core/domain"
	portssvc "github.com/ecclesiahq/ecclesia-backend/internal/core/ports/services"
	"github.com/ecclesiahq/ecclesia-backend/internal/dto"
	"github.com/ecclesiahq/ecclesia-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests related to ledger transactions.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
	}
}

// registerTransactionRoutes registers transaction routes nested under a church.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(transactionService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("", h.listTransactions)
		transactions.POST("/check-balance", h.checkBalance)
		transactions.GET("/:transaction_id", h.getTransaction)
		transactions.PUT("/:transaction_id", h.updateTransaction)
		transactions.POST("/:transaction_id/post", h.postTransaction)
		transactions.POST("/:transaction_id/void", h.voidTransaction)
		transactions.POST("/:transaction_id/reconcile", h.reconcileTransaction)
	}

	// Account statement lives alongside accounts but is transaction data
	rg.GET("/accounts/:account_id/lines", h.listAccountLines)
}

// respondTransactionError writes the HTTP response for a transaction service error.
func respondTransactionError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to " + action + " in this church"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Transaction status does not allow this operation"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

// createTransaction godoc
// @Summary Create a transaction
// @Description Creates a transaction with its lines, enforcing the double-entry balance rule. Status POSTED applies balances immediately.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   church_id path string true "Church ID"
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input or unbalanced lines"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to create transaction"
// @Security BearerAuth
// @Router /churches/{church_id}/transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	churchID := c.Param("church_id")

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), churchID, req, userID)
	if err != nil {
		respondTransactionError(c, logger, err, "create transaction")
		return
	}

	logger.Info("Transaction created successfully", slog.String("transaction_id", txn.TransactionID), slog.String("status", string(txn.Status)))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// getTransaction godoc
// @Summary Get a transaction by ID
// @Description Retrieves a transaction with its lines
// @Tags transactions
// @Produce  json
// @Param   church_id path string true "Church ID"
// @Param   transaction_id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to retrieve transaction"
// @Security BearerAuth
// @Router /churches/{church_id}/transactions/{transaction_id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	churchID := c.Param("church_id")
	transactionID := c.Param("transaction_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), churchID, transactionID, userID)
	if err != nil {
		respondTransactionError(c, logger, err, "retrieve transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List transactions
// @Description Retrieves a paginated list of a church's transactions, newest first. Voided transactions are excluded unless requested.
// @Tags transactions
// @Produce  json
// @Param   church_id path string true "Church ID"
// @Param   limit query int false "Limit number of results" default(20)
// @Param   nextToken query string false "Pagination token from a previous response"
// @Param   includeVoided query bool false "Include voided transactions" default(false)
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Security BearerAuth
// @Router /churches/{church_id}/transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	churchID := c.Param("church_id")

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.transactionService.ListTransactions(c.Request.Context(), churchID, userID, params)
	if err != nil {
		respondTransactionError(c, logger, err, "list transactions")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// updateTransaction godoc
// @Summary Update a transaction
// @Description Updates a pending transaction's date and description
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   church_id path string true "Church ID"
// @Param   transaction_id path string true "Transaction ID"
// @Param   transaction body dto.UpdateTransactionRequest true "Fields to update"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Transaction is not pending"
// @Failure 500 {object} map[string]string "Failed to update transaction"
// @Security BearerAuth
// @Router /churches/{church_id}/transactions/{transaction_id} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	churchID := c.Param("church_id")
	transactionID := c.Param("transaction_id")

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.transactionService.UpdateTransaction(c.Request.Context(), churchID, transactionID, req, userID)
	if err != nil {
		respondTransactionError(c, logger, err, "update transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// checkBalance godoc
// @Summary Check candidate lines for balance
// @Description Validates a set of candidate lines against the double-entry balance rule without writing anything
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   church_id path string true "Church ID"
// @Param   lines body dto.CheckBalanceRequest true "Candidate lines"
// @Success 200 {object} dto.BalanceCheckResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to check balance"
// @Security BearerAuth
// @Router /churches/{church_id}/transactions/check-balance [post]
func (h *transactionHandler) checkBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CheckBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	check, err := h.transactionService.CheckBalance(c.Request.Context(), req.Lines)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to check balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check balance"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceCheckResponse(check))
}

// postTransaction godoc
// @Summary Post a transaction
// @Description Moves a pending transaction to posted, applying its lines to account balances
// @Tags transactions
// @Produce  json
// @Param   church_id path string true "Church ID"
// @Param   transaction_id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Transaction is not pending"
// @Failure 500 {object} map[string]string "Failed to post transaction"
// @Security BearerAuth
// @Router /churches/{church_id}/transactions/{transaction_id}/post [post]
func (h *transactionHandler) postTransaction(c *gin.Context) {
	h.transition(c, "post transaction", h.transactionService.PostTransaction)
}

// voidTransaction godoc
// @Summary Void a transaction
// @Description Voids a transaction, reversing its balance effects if it was posted or reconciled
// @Tags transactions
// @Produce  json
// @Param   church_id path string true "Church ID"
// @Param   transaction_id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Transaction already voided"
// @Failure 500 {object} map[string]string "Failed to void transaction"
// @Security BearerAuth
// @Router /churches/{church_id}/transactions/{transaction_id}/void [post]
func (h *transactionHandler) voidTransaction(c *gin.Context) {
	h.transition(c, "void transaction", h.transactionService.VoidTransaction)
}

// reconcileTransaction godoc
// @Summary Reconcile a transaction
// @Description Marks a posted transaction as reconciled
// @Tags transactions
// @Produce  json
// @Param   church_id path string true "Church ID"
// @Param   transaction_id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Transaction is not posted"
// @Failure 500 {object} map[string]string "Failed to reconcile transaction"
// @Security BearerAuth
// @Router /churches/{church_id}/transactions/{transaction_id}/reconcile [post]
func (h *transactionHandler) reconcileTransaction(c *gin.Context) {
	h.transition(c, "reconcile transaction", h.transactionService.ReconcileTransaction)
}

// transition runs a status change operation shared by post, void, and reconcile.
func (h *transactionHandler) transition(
	c *gin.Context,
	action string,
	fn func(ctx context.Context, churchID, transactionID, userID string) (*domain.Transaction, error),
) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	churchID := c.Param("church_id")
	transactionID := c.Param("transaction_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := fn(c.Request.Context(), churchID, transactionID, userID)
	if err != nil {
		respondTransactionError(c, logger, err, action)
		return
	}

	logger.Info("Transaction status changed", slog.String("transaction_id", txn.TransactionID), slog.String("status", string(txn.Status)))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// listAccountLines godoc
// @Summary List an account's ledger lines
// @Description Retrieves a paginated statement of posted and reconciled lines touching an account, newest first
// @Tags transactions
// @Produce  json
// @Param   church_id path string true "Church ID"
// @Param   account_id path string true "Account ID"
// @Param   limit query int false "Limit number of results" default(20)
// @Param   nextToken query string false "Pagination token from a previous response"
// @Success 200 {object} dto.ListAccountLinesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to list account lines"
// @Security BearerAuth
// @Router /churches/{church_id}/accounts/{account_id}/lines [get]
func (h *transactionHandler) listAccountLines(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	churchID := c.Param("church_id")
	accountID := c.Param("account_id")

	var params dto.ListAccountLinesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.transactionService.ListLinesByAccount(c.Request.Context(), churchID, accountID, userID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this church"})
		} else {
			logger.Error("Failed to list account lines", slog.String("error", err.Error()), slog.String("account_id", accountID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list account lines"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
