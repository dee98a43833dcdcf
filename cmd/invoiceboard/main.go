package main

import (
	"github.com/smallbiznis/invoiceboard/internal/clock"
	"github.com/smallbiznis/invoiceboard/internal/config"
	"github.com/smallbiznis/invoiceboard/internal/migration"
	"github.com/smallbiznis/invoiceboard/internal/observability"
	"github.com/smallbiznis/invoiceboard/internal/revalidate"
	"github.com/smallbiznis/invoiceboard/internal/server"
	"github.com/smallbiznis/invoiceboard/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		db.Module,
		clock.Module,
		revalidate.Module,

		// Schema must exist before the first request.
		migration.Module,

		// Invoices, customers and dashboard routes
		server.Module,

		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
	)
	app.Run()
}
