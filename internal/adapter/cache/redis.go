package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/armaan-yadav/apna-resume/internal/model"
)

const defaultTTL = 10 * time.Minute

// Redis caches rendered previews. When Redis cannot be reached every call
// is a no-op miss, so callers never depend on it.
type Redis struct {
	client *redis.Client
	logger *slog.Logger
	ttl    time.Duration

	warnedUnavailable atomic.Bool
}

// NewRedis connects to addr. An empty addr or a failed ping returns a
// bypassing cache.
func NewRedis(addr, password string, ttl time.Duration, logger *slog.Logger) *Redis {
	if logger == nil {
		logger = slog.Default()
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if addr == "" {
		logger.Info("redis not configured, preview cache disabled")
		return &Redis{logger: logger, ttl: ttl}
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, bypassing preview cache", "addr", addr, "error", err)
		_ = client.Close()
		return &Redis{logger: logger, ttl: ttl}
	}
	return &Redis{client: client, logger: logger, ttl: ttl}
}

// NewRedisWithClient wraps an existing client.
func NewRedisWithClient(client *redis.Client, ttl time.Duration, logger *slog.Logger) *Redis {
	if logger == nil {
		logger = slog.Default()
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Redis{client: client, logger: logger, ttl: ttl}
}

func (r *Redis) isUnavailable() bool {
	return r == nil || r.client == nil
}

func (r *Redis) warnUnavailableOnce(err error) {
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.logger.Warn("redis unavailable, bypassing preview cache", "error", err)
	}
}

func (r *Redis) Ping(ctx context.Context) error {
	if r.isUnavailable() {
		return errors.New("redis unavailable")
	}
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	if r.isUnavailable() {
		return nil
	}
	return r.client.Close()
}

// GetPreview returns a cached page for key.
func (r *Redis) GetPreview(ctx context.Context, key string) (string, bool) {
	if r.isUnavailable() {
		return "", false
	}
	s, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.warnUnavailableOnce(err)
		}
		return "", false
	}
	return s, true
}

// SetPreview stores a rendered page under key.
func (r *Redis) SetPreview(ctx context.Context, key, page string) {
	if r.isUnavailable() {
		return
	}
	if err := r.client.Set(ctx, key, page, r.ttl).Err(); err != nil {
		r.warnUnavailableOnce(err)
	}
}

// PreviewKey identifies a rendering of doc with a layout. The key changes
// whenever the document content changes, so entries never need
// invalidation.
func PreviewKey(resumeID string, templateID model.TemplateID, doc model.Resume) (string, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return "preview:" + resumeID + ":" + string(templateID) + ":" + hex.EncodeToString(sum[:12]), nil
}
