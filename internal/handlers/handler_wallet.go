package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/kahawapay/kahawapay_backend/internal/core/ports/services"
	"github.com/kahawapay/kahawapay_backend/internal/dto"
	"github.com/kahawapay/kahawapay_backend/internal/middleware"
	"github.com/kahawapay/kahawapay_backend/internal/platform/config"
)

// walletHandler serves the sender's wallet view: where to send bitcoin and
// what they have sent so far.
type walletHandler struct {
	transactionService portssvc.TransactionSvcFacade
	userService        portssvc.UserSvcFacade
	depositAddress     string
}

func newWalletHandler(ts portssvc.TransactionSvcFacade, us portssvc.UserSvcFacade, depositAddress string) *walletHandler {
	return &walletHandler{transactionService: ts, userService: us, depositAddress: depositAddress}
}

// registerWalletRoutes registers the authenticated wallet routes.
func registerWalletRoutes(rg *gin.RouterGroup, cfg *config.Config, transactionService portssvc.TransactionSvcFacade, userService portssvc.UserSvcFacade) {
	h := newWalletHandler(transactionService, userService, cfg.BitcoinAppAddress)

	wallet := rg.Group("/wallet")
	{
		wallet.GET("/deposit-address", h.depositAddressInfo)
		wallet.GET("/mine", h.mine)
	}
}

// depositAddressInfo godoc
// @Summary Get the bitcoin deposit address
// @Description Returns the platform address senders pay bitcoin into
// @Tags wallet
// @Produce  json
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /wallet/deposit-address [get]
func (h *walletHandler) depositAddressInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"deposit_address": h.depositAddress})
}

// mine godoc
// @Summary List the caller's transactions
// @Description Returns the authenticated sender's transactions, newest first
// @Tags wallet
// @Produce  json
// @Success 200 {array} dto.TransactionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /wallet/mine [get]
func (h *walletHandler) mine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

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

	txns, err := h.transactionService.ListUserTransactions(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list transactions")
		return
	}

	responses := make([]dto.TransactionResponse, 0, len(txns))
	for i := range txns {
		responses = append(responses, dto.ToTransactionResponse(&txns[i], user.Email))
	}
	c.JSON(http.StatusOK, responses)
}
