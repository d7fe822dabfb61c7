package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kahawapay/kahawapay_backend/internal/core/domain"
	portssvc "github.com/kahawapay/kahawapay_backend/internal/core/ports/services"
	"github.com/kahawapay/kahawapay_backend/internal/dto"
	"github.com/kahawapay/kahawapay_backend/internal/middleware"
)

// guestPreviewSender is the placeholder sender label shown on previews,
// before any guest identity has been issued.
const guestPreviewSender = "guest-preview@" + domain.GuestEmailDomain

// guestHandler handles the unauthenticated guest transaction flow. Guests
// hold no bearer token; their transactions are addressed by id plus the
// guest key issued at creation.
type guestHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

func newGuestHandler(ts portssvc.TransactionSvcFacade) *guestHandler {
	return &guestHandler{transactionService: ts}
}

// RegisterGuestRoutes registers the guest transaction routes.
func RegisterGuestRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newGuestHandler(transactionService)

	guest := rg.Group("/transactions/guest")
	{
		guest.POST("/preview", h.preview)
		guest.POST("", h.create)
		guest.POST("/complete", h.markComplete)
		guest.GET("/status", h.status)
	}
}

// preview godoc
// @Summary Preview a guest transaction
// @Description Runs validation, conversion and the guest cap check without persisting anything
// @Tags guest
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 200 {object} dto.TransactionPreviewResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 403 {object} map[string]string "Guest limit exceeded"
// @Failure 422 {object} map[string]string "Rate unavailable or computation invalid"
// @Router /transactions/guest/preview [post]
func (h *guestHandler) preview(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for guest preview", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.transactionService.PreviewGuest(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to preview transaction")
		return
	}

	c.JSON(http.StatusOK, dto.TransactionPreviewResponse{
		SenderEmail:     guestPreviewSender,
		AmountRecipient: result.RecipientAmount,
		Currency:        result.Currency,
		RecipientMSISDN: req.RecipientMSISDN,
		AmountUSD:       result.AmountUSD,
		FeeTotal:        result.FeeTotal,
	})
}

// create godoc
// @Summary Create a guest transaction
// @Description Issues a sequential guest identity and creates a pending transaction bound to a fresh guest key
// @Tags guest
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 403 {object} map[string]string "Guest limit exceeded"
// @Failure 422 {object} map[string]string "Rate unavailable or computation invalid"
// @Router /transactions/guest [post]
func (h *guestHandler) create(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for guest create", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, identity, err := h.transactionService.CreateGuestTransaction(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create transaction")
		return
	}

	logger.Info("Guest transaction created",
		slog.Int64("transaction_id", txn.ID),
		slog.String("guest", identity.Label()),
	)
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn, identity.Email))
}

// markComplete godoc
// @Summary Mark a guest transaction as completed by its sender
// @Description Sets the sender-side completion flag; the payout status itself stays admin-controlled
// @Tags guest
// @Accept  json
// @Produce  json
// @Param   completion body dto.GuestCompleteRequest true "Transaction id and guest key"
// @Success 200 {object} dto.GuestStatusResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 404 {object} map[string]string "Unknown transaction or key mismatch"
// @Router /transactions/guest/complete [post]
func (h *guestHandler) markComplete(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.GuestCompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for guest complete", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.transactionService.GuestMarkComplete(c.Request.Context(), req.TxID, req.GuestKey)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to mark transaction complete")
		return
	}

	logger.Info("Guest marked transaction complete", slog.Int64("transaction_id", txn.ID))
	c.JSON(http.StatusOK, dto.ToGuestStatusResponse(txn))
}

// status godoc
// @Summary Get the status of a guest transaction
// @Description Returns the guest-visible state for a transaction addressed by id and guest key
// @Tags guest
// @Produce  json
// @Param   id  query int    true "Transaction ID"
// @Param   key query string true "Guest key issued at creation"
// @Success 200 {object} dto.GuestStatusResponse
// @Failure 400 {object} map[string]string "Missing or malformed parameters"
// @Failure 404 {object} map[string]string "Unknown transaction or key mismatch"
// @Router /transactions/guest/status [get]
func (h *guestHandler) status(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'id' must be a positive integer"})
		return
	}
	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'key' is required"})
		return
	}

	txn, err := h.transactionService.GetGuestStatus(c.Request.Context(), id, key)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to get transaction status")
		return
	}

	c.JSON(http.StatusOK, dto.ToGuestStatusResponse(txn))
}
