package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/invoiceboard/internal/config"
	"github.com/smallbiznis/invoiceboard/internal/customer"
	customerdomain "github.com/smallbiznis/invoiceboard/internal/customer/domain"
	"github.com/smallbiznis/invoiceboard/internal/dashboard"
	dashboarddomain "github.com/smallbiznis/invoiceboard/internal/dashboard/domain"
	"github.com/smallbiznis/invoiceboard/internal/invoice"
	invoicedomain "github.com/smallbiznis/invoiceboard/internal/invoice/domain"
	"github.com/smallbiznis/invoiceboard/internal/observability"
	obsmiddleware "github.com/smallbiznis/invoiceboard/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/invoiceboard/internal/observability/metrics"
	obstracing "github.com/smallbiznis/invoiceboard/internal/observability/tracing"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	customer.Module,
	invoice.Module,
	dashboard.Module,
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	if !obsCfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(httpMetrics.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, shutdowner fx.Shutdowner, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	log = log.Named("http.server")

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			log.Info("http server listening", zap.String("addr", ln.Addr().String()))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine          *gin.Engine
	display         *config.DisplayConfigHolder
	invoiceQuery    invoicedomain.QueryService
	invoiceMutation invoicedomain.MutationService
	customerSvc     customerdomain.Service
	dashboardSvc    dashboarddomain.Service
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Display         *config.DisplayConfigHolder
	InvoiceQuery    invoicedomain.QueryService
	InvoiceMutation invoicedomain.MutationService
	CustomerSvc     customerdomain.Service
	DashboardSvc    dashboarddomain.Service
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:          p.Gin,
		display:         p.Display,
		invoiceQuery:    p.InvoiceQuery,
		invoiceMutation: p.InvoiceMutation,
		customerSvc:     p.CustomerSvc,
		dashboardSvc:    p.DashboardSvc,
	}

	s.registerAPIRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	invoices := api.Group("/invoices")
	invoices.GET("", s.ListInvoices)
	invoices.GET("/latest", s.ListLatestInvoices)
	invoices.GET("/:id", s.GetInvoiceByID)
	invoices.POST("", s.CreateInvoice)
	invoices.PUT("/:id", s.UpdateInvoice)
	invoices.DELETE("/:id", s.DeleteInvoice)

	customers := api.Group("/customers")
	customers.GET("", s.ListCustomers)
	customers.GET("/table", s.ListCustomerTable)
	customers.GET("/:id", s.GetCustomerByID)

	dashboard := api.Group("/dashboard")
	dashboard.GET("/cards", s.GetCardSummary)
	dashboard.GET("/revenue", s.ListRevenue)
}
