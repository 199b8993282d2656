// Package users
package users

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"pagesmith-api/internal/huggingface"
	"pagesmith-api/internal/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type identityAPI interface {
	WhoAmI(ctx context.Context, token string) (*huggingface.Profile, error)
}

type Manager struct {
	hub   identityAPI
	redis *redis.Client
	log   *zap.SugaredLogger
}

func NewManager(hub identityAPI, redisClient *redis.Client, log *zap.SugaredLogger) *Manager {
	return &Manager{hub: hub, redis: redisClient, log: log}
}

// GetProfileFromToken resolves a session token to the owning account profile,
// serving from the redis cache when possible. Tokens are hashed before being
// used as cache keys so they never land in redis verbatim.
func (m *Manager) GetProfileFromToken(ctx context.Context, token string) (*huggingface.Profile, error) {
	var profile huggingface.Profile

	profileCacheKey := fmt.Sprintf("v1:profile:token:%x", sha256.Sum256([]byte(token)))
	profileCache, err := m.redis.Get(ctx, profileCacheKey).Result()
	switch err {
	case nil:
		err = json.Unmarshal([]byte(profileCache), &profile)
		if err == nil {
			return &profile, nil
		}
		m.log.Errorw("Error unmarshalling profile cache", "error", err)
		fallthrough
	default:
		m.log.Debugw("Profile cache miss", "key", profileCacheKey)

		fresh, err := m.hub.WhoAmI(ctx, token)
		if err != nil {
			m.log.Warnw("Session token rejected by identity provider", "error", err)
			return nil, shared.ErrUnauthorized
		}

		go func() {
			profileCache, err := json.Marshal(fresh)
			if err != nil {
				m.log.Errorw("Error marshalling profile", "error", err)
				return
			}
			m.redis.Set(context.Background(), profileCacheKey, profileCache, shared.ProfileCacheTTL)
		}()
		return fresh, nil
	}
}
