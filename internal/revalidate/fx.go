package revalidate

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/smallbiznis/invoiceboard/internal/clock"
	"github.com/smallbiznis/invoiceboard/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("revalidate",
	fx.Provide(New),
)

type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    config.Config
	Log       *zap.Logger
	Clock     clock.Clock
}

// New publishes through redis when an address is configured and logs otherwise.
func New(p Params) Invalidator {
	log := p.Log.Named("revalidate")
	if !p.Config.Redis.Enabled() {
		log.Info("redis not configured, invalidations are logged only")
		return NewLogInvalidator(log)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         p.Config.Redis.Addr,
		Password:     p.Config.Redis.Password,
		DB:           p.Config.Redis.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				log.Warn("redis unreachable, invalidations will fail until it recovers", zap.Error(err))
			}
			return nil
		},
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})

	log.Info("publishing invalidations",
		zap.String("addr", p.Config.Redis.Addr),
		zap.String("channel", p.Config.Redis.RevalidateChannel),
	)
	return NewRedisInvalidator(client, p.Config.Redis.RevalidateChannel, p.Clock)
}
