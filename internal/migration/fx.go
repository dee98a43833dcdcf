package migration

import (
	"context"
	"time"

	"github.com/smallbiznis/invoiceboard/internal/config"
	"github.com/smallbiznis/invoiceboard/internal/seed"
	"github.com/smallbiznis/invoiceboard/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(Run),
)

const bootTimeout = 30 * time.Second

type Params struct {
	fx.In

	DB     *gorm.DB
	Store  repository.Store
	Config config.Config
	Log    *zap.Logger
}

// Run creates the dashboard tables and, when SEED_ON_START is set, loads the
// placeholder rows into empty tables.
func Run(p Params) error {
	ctx, cancel := context.WithTimeout(context.Background(), bootTimeout)
	defer cancel()

	log := p.Log.Named("migrations")
	if err := seed.EnsureSchema(ctx, p.Store); err != nil {
		log.Error("schema provisioning failed", zap.Error(err))
		return err
	}

	if !p.Config.SeedOnStart {
		return nil
	}
	if err := seed.EnsurePlaceholderData(ctx, p.DB); err != nil {
		log.Error("placeholder seeding failed", zap.Error(err))
		return err
	}
	log.Info("placeholder data ensured")
	return nil
}
