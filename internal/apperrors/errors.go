package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
// It is also returned on a guest-key mismatch so callers cannot probe
// for the existence of other people's transactions.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller is authenticated but lacks the required role.
var ErrForbidden = errors.New("forbidden")

// ErrRateUnavailable indicates that an exchange rate needed for a conversion
// is missing, zero or negative. This is an operational/data problem rather
// than caller misuse, so it is kept distinct from ErrValidation.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// ErrDegenerateFee indicates the stored fee fraction is >= 1, which makes the
// net-to-gross inversion undefined.
var ErrDegenerateFee = errors.New("degenerate fee fraction")

// ErrComputationInvalid indicates a conversion produced a non-positive or
// otherwise nonsensical recipient amount.
var ErrComputationInvalid = errors.New("computed amount invalid")

// ErrLimitExceeded indicates a guest tried to move more than the guest USD cap.
var ErrLimitExceeded = errors.New("guest transaction limit exceeded")

// ErrInvalidTransition indicates an attempt to move a transaction out of a
// terminal status.
var ErrInvalidTransition = errors.New("invalid status transition")
