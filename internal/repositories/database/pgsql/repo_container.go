package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kahawapay/kahawapay_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgsql repositories onto one pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *repositories.RepositoryProvider {
	return &repositories.RepositoryProvider{
		ExchangeRateRepo: NewPGSQLExchangeRateRepository(pool),
		TransactionRepo:  NewPGSQLTransactionRepository(pool),
		UserRepo:         NewPGSQLUserRepository(pool),
	}
}
