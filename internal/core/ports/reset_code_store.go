package ports

import (
	"context"
	"time"
)

// ResetCodeStore keeps one-time password-reset codes. A code and its expiry
// live together: expiry clears both at once.
type ResetCodeStore interface {
	Set(ctx context.Context, email, code string, ttl time.Duration) error
	// Validate reports whether code matches the live code for email.
	Validate(ctx context.Context, email, code string) (bool, error)
	Clear(ctx context.Context, email string) error
}
