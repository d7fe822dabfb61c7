package mapping

import (
	"github.com/kahawapay/kahawapay_backend/internal/core/domain"
	"github.com/kahawapay/kahawapay_backend/internal/models"
)

// ToDomainUser converts a persistence user row into the domain shape.
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:       m.UserID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         m.Role,
		IsGuest:      m.IsGuest,
		CreatedAt:    m.CreatedAt,
	}
}
