package services

import (
	"log/slog"

	portsrepo "github.com/kahawapay/kahawapay_backend/internal/core/ports/repositories"
	portssvc "github.com/kahawapay/kahawapay_backend/internal/core/ports/services"
	"github.com/kahawapay/kahawapay_backend/internal/platform/config"
	"github.com/kahawapay/kahawapay_backend/pkg/rabbitmq"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	publisher rabbitmq.Publisher,
	logger *slog.Logger,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Conversion and guest policy first; the ledger depends on both.
	container.Conversion = NewConversionService(repos.ExchangeRateRepo)
	container.Guest = NewGuestService(repos.UserRepo, cfg.GuestTxLimitUSD)

	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		container.Conversion,
		container.Guest,
		cfg.SupportedCurrencies,
		publisher,
		logger,
	)

	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, cfg.SupportedCurrencies)

	return container
}
