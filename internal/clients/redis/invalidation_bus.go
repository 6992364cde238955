package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/campusforge/matchengine-backend/internal/platform/logger"
)

// InvalidationEvent announces that cache rows were staled and work was
// enqueued, so external drain schedulers can react without polling.
type InvalidationEvent struct {
	Reason    string    `json:"reason"`
	StudentID uuid.UUID `json:"student_id,omitempty"`
	ListingID uuid.UUID `json:"listing_id,omitempty"`
	Pairs     int       `json:"pairs"`
	Queued    int       `json:"queued"`
	At        time.Time `json:"at"`
}

type InvalidationBus interface {
	Publish(ctx context.Context, event InvalidationEvent) error
	Close() error
}

type invalidationBus struct {
	log     *logger.Logger
	rdb     *goredis.Client
	channel string
}

// NewInvalidationBus connects using REDIS_ADDR. A missing address returns
// (nil, nil): the bus is optional and callers must tolerate a nil bus.
func NewInvalidationBus(log *logger.Logger) (InvalidationBus, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, nil
	}
	ch := strings.TrimSpace(os.Getenv("REDIS_INVALIDATION_CHANNEL"))
	if ch == "" {
		ch = "match_invalidation"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &invalidationBus{
		log:     log.With("service", "InvalidationBus"),
		rdb:     rdb,
		channel: ch,
	}, nil
}

func (b *invalidationBus) Publish(ctx context.Context, event InvalidationEvent) error {
	if b == nil || b.rdb == nil {
		return fmt.Errorf("invalidation bus not initialized")
	}
	raw, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal invalidation event: %w", err)
	}
	if err := b.rdb.Publish(ctx, b.channel, raw).Err(); err != nil {
		return fmt.Errorf("publish invalidation event: %w", err)
	}
	return nil
}

func (b *invalidationBus) Close() error {
	if b == nil || b.rdb == nil {
		return nil
	}
	return b.rdb.Close()
}
