package domain

import "fmt"

// GuestEmailDomain is the synthetic mail domain under which sequential guest
// identities are issued.
const GuestEmailDomain = "kahawapay.com"

// GuestIdentity is the ephemeral actor recorded for a guest transaction. It
// is a bookkeeping handle, not a real registration; the sequential label must
// be unique because downstream code treats it as an identity.
type GuestIdentity struct {
	UserID   int64  `json:"userID"`
	Sequence int    `json:"sequence"`
	Email    string `json:"email"`
}

// Label returns the display label of the identity, e.g. "guest-00042".
func (g GuestIdentity) Label() string {
	return fmt.Sprintf("guest-%05d", g.Sequence)
}

// GuestEmail builds the synthetic address for a sequence number.
func GuestEmail(sequence int) string {
	return fmt.Sprintf("guest-%05d@%s", sequence, GuestEmailDomain)
}
