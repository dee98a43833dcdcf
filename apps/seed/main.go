package main

import (
	"context"

	"github.com/smallbiznis/invoiceboard/internal/config"
	"github.com/smallbiznis/invoiceboard/internal/observability"
	"github.com/smallbiznis/invoiceboard/internal/seed"
	"github.com/smallbiznis/invoiceboard/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Loads the placeholder customers, invoices and revenue into an empty
// database, then exits.
func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		db.Module,

		// No server module!
		fx.Invoke(SeedAndExit),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
	)
	app.Run()
}

func SeedAndExit(lc fx.Lifecycle, shutdowner fx.Shutdowner, conn *gorm.DB, log *zap.Logger) {
	log = log.Named("seed")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := seed.EnsurePlaceholderData(ctx, conn); err != nil {
				log.Error("seeding failed", zap.Error(err))
				return err
			}
			log.Info("placeholder data ensured",
				zap.Int("customers", len(seed.Customers)),
				zap.Int("invoices", len(seed.Invoices)),
				zap.Int("revenue_months", len(seed.Revenue)),
			)
			return shutdowner.Shutdown()
		},
	})
}
