package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResetCodeStore keeps one-time password-reset codes in Redis.
// Key format: reset_code:<email>. The TTL carries the expiry, so the code and
// its deadline are always cleared together.
type ResetCodeStore struct {
	client *redis.Client
}

// NewResetCodeStore creates a ResetCodeStore wrapping the given Redis client.
func NewResetCodeStore(client *redis.Client) *ResetCodeStore {
	return &ResetCodeStore{client: client}
}

// Set stores the code, replacing any earlier one for the same email.
func (s *ResetCodeStore) Set(ctx context.Context, email, code string, ttl time.Duration) error {
	return s.client.Set(ctx, s.key(email), code, ttl).Err()
}

// Validate reports whether code matches the live code for email. An expired
// or absent code is not a match and not an error.
func (s *ResetCodeStore) Validate(ctx context.Context, email, code string) (bool, error) {
	stored, err := s.client.Get(ctx, s.key(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("reset code lookup: %w", err)
	}
	return stored == code, nil
}

// Clear removes the code after a successful reset.
func (s *ResetCodeStore) Clear(ctx context.Context, email string) error {
	return s.client.Del(ctx, s.key(email)).Err()
}

func (s *ResetCodeStore) key(email string) string {
	return "reset_code:" + strings.ToLower(email)
}
