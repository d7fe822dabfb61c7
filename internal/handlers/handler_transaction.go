package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/kahawapay/kahawapay_backend/internal/core/ports/services"
	"github.com/kahawapay/kahawapay_backend/internal/dto"
	"github.com/kahawapay/kahawapay_backend/internal/middleware"
)

// transactionHandler handles transaction creation for authenticated senders.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
	userService        portssvc.UserSvcFacade
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade, us portssvc.UserSvcFacade) *transactionHandler {
	return &transactionHandler{transactionService: ts, userService: us}
}

// registerTransactionRoutes registers the authenticated transaction routes.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade, userService portssvc.UserSvcFacade) {
	h := newTransactionHandler(transactionService, userService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("/preview", h.preview)
		transactions.POST("", h.create)
	}
}

// preview godoc
// @Summary Preview a transaction
// @Description Runs validation and conversion for the authenticated sender without persisting anything
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 200 {object} dto.TransactionPreviewResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 422 {object} map[string]string "Rate unavailable or computation invalid"
// @Security BearerAuth
// @Router /transactions/preview [post]
func (h *transactionHandler) preview(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for transaction preview", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.transactionService.PreviewUser(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to preview transaction")
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to load sender")
		return
	}

	c.JSON(http.StatusOK, dto.TransactionPreviewResponse{
		SenderEmail:     user.Email,
		AmountRecipient: result.RecipientAmount,
		Currency:        result.Currency,
		RecipientMSISDN: req.RecipientMSISDN,
		AmountUSD:       result.AmountUSD,
		FeeTotal:        result.FeeTotal,
	})
}

// create godoc
// @Summary Create a transaction
// @Description Creates a pending transaction owned by the authenticated sender
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 422 {object} map[string]string "Rate unavailable or computation invalid"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) create(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for transaction create", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to load sender")
		return
	}

	txn, err := h.transactionService.CreateUserTransaction(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create transaction")
		return
	}

	logger.Info("Transaction created", slog.Int64("transaction_id", txn.ID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn, user.Email))
}
