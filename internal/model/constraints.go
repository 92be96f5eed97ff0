package model

// Domain constants shared across handler, payload, and storage packages.
const (
	DefaultURLExpirationSeconds = 3600   // 1 hour
	MaxURLExpirationSeconds     = 604800 // 7 days, SigV4 upper bound

	// KeyTimeLayout formats the UTC timestamp prefix of a storage key.
	KeyTimeLayout = "2006-01-02T15-04-05"
)

// Error strings returned in ErrorResponse.Error.
const (
	ErrFileNameRequired = "fileName is required"
	ErrFileNameInvalid  = "fileName is invalid"
	ErrSigningFailed    = "Failed to generate upload URL"
	ErrInternal         = "Internal server error"
)
