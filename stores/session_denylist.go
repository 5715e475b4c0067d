package stores

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionDenylist records revoked session ids until their tokens would have
// expired anyway. Without it logout falls back to pure stateless expiry.
type SessionDenylist struct {
	client *redis.Client
}

func NewSessionDenylist(client *redis.Client) *SessionDenylist {
	return &SessionDenylist{client: client}
}

// NewSessionDenylistFromEnv returns (nil, nil) when REDIS_ADDR is unset, so
// the service runs without revocation support.
func NewSessionDenylistFromEnv(ctx context.Context) (*SessionDenylist, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil, nil
	}
	db := 0
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			db = parsed
		}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, err
	}
	return &SessionDenylist{client: client}, nil
}

func (d *SessionDenylist) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	if ttl <= 0 {
		// token already expired, nothing to deny
		return nil
	}
	return d.client.Set(ctx, denyKey(sessionID), "1", ttl).Err()
}

func (d *SessionDenylist) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	n, err := d.client.Exists(ctx, denyKey(sessionID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func denyKey(sessionID string) string {
	return "session:denied:" + sessionID
}
