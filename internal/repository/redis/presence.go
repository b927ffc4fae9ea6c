package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/iamasit07/connect4-arena/internal/service/game"
	"github.com/redis/go-redis/v9"
)

const (
	presencePrefix     = "connect4:live:"
	DefaultPresenceTTL = 2 * time.Minute
)

// PresenceStore mirrors live sessions as expiring keys so other processes
// can see what this server is running. Keys expire on their own if the
// server dies without untracking.
type PresenceStore struct {
	cache Cache
	ttl   time.Duration
}

func NewPresenceStore(cache Cache, ttl time.Duration) *PresenceStore {
	if ttl <= 0 {
		ttl = DefaultPresenceTTL
	}
	return &PresenceStore{cache: cache, ttl: ttl}
}

func presenceKey(gameID string) string {
	return presencePrefix + gameID
}

func (p *PresenceStore) Track(ctx context.Context, info game.SessionInfo) error {
	data, err := json.Marshal(info)
	if err != nil {
		return err
	}
	return p.cache.Set(ctx, presenceKey(info.GameID), data, p.ttl)
}

func (p *PresenceStore) Untrack(ctx context.Context, gameID string) error {
	return p.cache.Del(ctx, presenceKey(gameID))
}

// Refresh pushes the expiry of every listed session forward, re-creating
// keys that were lost.
func (p *PresenceStore) Refresh(ctx context.Context, infos []game.SessionInfo) error {
	var errs []error
	for _, info := range infos {
		if err := p.cache.Expire(ctx, presenceKey(info.GameID), p.ttl); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, err := p.cache.Get(ctx, presenceKey(info.GameID)); errors.Is(err, redis.Nil) {
			if err := p.Track(ctx, info); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Lookup reads one tracked session. found is false when the key is absent.
func (p *PresenceStore) Lookup(ctx context.Context, gameID string) (info game.SessionInfo, found bool, err error) {
	raw, err := p.cache.Get(ctx, presenceKey(gameID))
	if errors.Is(err, redis.Nil) {
		return info, false, nil
	}
	if err != nil {
		return info, false, err
	}
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		return info, false, err
	}
	return info, true, nil
}
