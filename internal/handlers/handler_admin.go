package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/kahawapay/kahawapay_backend/internal/core/ports/services"
	"github.com/kahawapay/kahawapay_backend/internal/dto"
	"github.com/kahawapay/kahawapay_backend/internal/middleware"
)

// adminTransactionHandler handles the settlement side of the ledger.
type adminTransactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

func newAdminTransactionHandler(ts portssvc.TransactionSvcFacade) *adminTransactionHandler {
	return &adminTransactionHandler{transactionService: ts}
}

// registerAdminTransactionRoutes registers the admin settlement routes.
func registerAdminTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newAdminTransactionHandler(transactionService)

	transactions := rg.Group("/transactions")
	{
		transactions.GET("", h.list)
		transactions.GET("/summary", h.summary)
		transactions.POST("/:id/mark-paid", h.markPaid)
		transactions.POST("/:id/archive", h.archive)
	}
}

func parseTransactionID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Transaction id must be a positive integer"})
		return 0, false
	}
	return id, true
}

// list godoc
// @Summary List transactions
// @Description Returns the newest transactions with sender e-mails, for the settlement dashboard
// @Tags admin
// @Produce  json
// @Success 200 {array} dto.AdminTransactionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Admin access required"
// @Security BearerAuth
// @Router /admin/transactions [get]
func (h *adminTransactionHandler) list(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rows, err := h.transactionService.ListTransactions(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, dto.ToListAdminTransactionResponse(rows))
}

// summary godoc
// @Summary Summarize transactions by status
// @Description Returns per-status counts and USD totals
// @Tags admin
// @Produce  json
// @Success 200 {array} dto.StatusSummaryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Admin access required"
// @Security BearerAuth
// @Router /admin/transactions/summary [get]
func (h *adminTransactionHandler) summary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summaries, err := h.transactionService.Summary(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to summarize transactions")
		return
	}

	c.JSON(http.StatusOK, dto.ToListStatusSummaryResponse(summaries))
}

// markPaid godoc
// @Summary Mark a transaction as paid
// @Description Settles a pending transaction. Re-marking a paid transaction is a no-op.
// @Tags admin
// @Produce  json
// @Param   id path int true "Transaction ID"
// @Success 200 {object} dto.GuestStatusResponse
// @Failure 400 {object} map[string]string "Malformed id"
// @Failure 404 {object} map[string]string "Unknown transaction"
// @Failure 409 {object} map[string]string "Transaction already archived"
// @Security BearerAuth
// @Router /admin/transactions/{id}/mark-paid [post]
func (h *adminTransactionHandler) markPaid(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	id, ok := parseTransactionID(c)
	if !ok {
		return
	}

	txn, err := h.transactionService.MarkPaid(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to mark transaction paid")
		return
	}

	logger.Info("Transaction marked paid", slog.Int64("transaction_id", txn.ID))
	c.JSON(http.StatusOK, dto.ToGuestStatusResponse(txn))
}

// archive godoc
// @Summary Archive a transaction
// @Description Administratively closes a pending transaction without payout
// @Tags admin
// @Produce  json
// @Param   id path int true "Transaction ID"
// @Success 200 {object} dto.GuestStatusResponse
// @Failure 400 {object} map[string]string "Malformed id"
// @Failure 404 {object} map[string]string "Unknown transaction"
// @Failure 409 {object} map[string]string "Transaction already settled"
// @Security BearerAuth
// @Router /admin/transactions/{id}/archive [post]
func (h *adminTransactionHandler) archive(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	id, ok := parseTransactionID(c)
	if !ok {
		return
	}

	txn, err := h.transactionService.Archive(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to archive transaction")
		return
	}

	logger.Info("Transaction archived", slog.Int64("transaction_id", txn.ID))
	c.JSON(http.StatusOK, dto.ToGuestStatusResponse(txn))
}
