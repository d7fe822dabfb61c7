package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/kahawapay/kahawapay_backend/internal/core/ports/services"
)

// currencyHandler exposes the supported payout currency set.
type currencyHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
}

func newCurrencyHandler(ers portssvc.ExchangeRateSvcFacade) *currencyHandler {
	return &currencyHandler{exchangeRateService: ers}
}

// registerCurrencyRoutes registers the public currency route.
func registerCurrencyRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade) {
	h := newCurrencyHandler(exchangeRateService)
	rg.GET("/currencies", h.listCurrencies)
}

// listCurrencies godoc
// @Summary List supported payout currencies
// @Description Returns the currency codes a recipient can be paid in
// @Tags currencies
// @Produce  json
// @Success 200 {object} map[string][]string
// @Router /currencies [get]
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"currencies": h.exchangeRateService.SupportedCurrencies()})
}
