package revalidate

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/smallbiznis/invoiceboard/internal/clock"
	obslogger "github.com/smallbiznis/invoiceboard/internal/observability/logger"
	"go.uber.org/zap"
)

// InvoicesPath is the listing view refreshed after every invoice mutation.
const InvoicesPath = "/dashboard/invoices"

// Invalidator tells presentation caches that a view must be re-rendered.
type Invalidator interface {
	Invalidate(ctx context.Context, path string) error
}

// Event is the payload published for each invalidated path.
type Event struct {
	Path      string    `json:"path"`
	RequestID string    `json:"request_id,omitempty"`
	At        time.Time `json:"invalidated_at"`
}

// RedisInvalidator publishes invalidation events on a pub/sub channel.
type RedisInvalidator struct {
	client  *redis.Client
	channel string
	clock   clock.Clock
}

func NewRedisInvalidator(client *redis.Client, channel string, clk clock.Clock) *RedisInvalidator {
	return &RedisInvalidator{client: client, channel: channel, clock: clk}
}

func (r *RedisInvalidator) Invalidate(ctx context.Context, path string) error {
	payload, err := json.Marshal(Event{
		Path:      path,
		RequestID: obslogger.RequestIDFromContext(ctx),
		At:        r.clock.Now(),
	})
	if err != nil {
		return fmt.Errorf("marshal revalidate event: %w", err)
	}
	if err := r.client.Publish(ctx, r.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish revalidate event: %w", err)
	}
	return nil
}

// LogInvalidator only records the invalidation in the log.
type LogInvalidator struct {
	log *zap.Logger
}

func NewLogInvalidator(log *zap.Logger) *LogInvalidator {
	return &LogInvalidator{log: log}
}

func (l *LogInvalidator) Invalidate(ctx context.Context, path string) error {
	obslogger.WithContext(ctx, l.log).Info("view invalidated", zap.String("path", path))
	return nil
}

// Recorder keeps every invalidated path in memory.
type Recorder struct {
	mu    sync.Mutex
	paths []string
	Err   error
}

func (r *Recorder) Invalidate(_ context.Context, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.paths = append(r.paths, path)
	return nil
}

func (r *Recorder) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.paths))
	copy(out, r.paths)
	return out
}

func (r *Recorder) Count(path string) int {
	n := 0
	for _, p := range r.Paths() {
		if p == path {
			n++
		}
	}
	return n
}
