// Package server carries the HTTP surface of the invoicing API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/fatouralabs/fatoura/internal/config"
	customerdomain "github.com/fatouralabs/fatoura/internal/customer/domain"
	invoicedomain "github.com/fatouralabs/fatoura/internal/invoice/domain"
)

type Params struct {
	fx.In

	Config      *config.Config
	Log         *zap.Logger
	CustomerSvc customerdomain.Service
	InvoiceSvc  invoicedomain.Service
}

type Server struct {
	cfg         *config.Config
	log         *zap.Logger
	customerSvc customerdomain.Service
	invoiceSvc  invoicedomain.Service

	http *http.Server
}

func New(p Params) *Server {
	s := &Server{
		cfg:         p.Config,
		log:         p.Log.Named("server"),
		customerSvc: p.CustomerSvc,
		invoiceSvc:  p.InvoiceSvc,
	}
	s.http = &http.Server{
		Addr:              p.Config.HTTP.Addr,
		Handler:           s.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) router() *gin.Engine {
	if s.cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(s.log))
	r.Use(metricsMiddleware())

	r.GET("/healthz", s.Healthz)
	r.GET("/metrics", metricsHandler())

	v1 := r.Group("/v1")
	{
		v1.POST("/customers", s.CreateCustomer)
		v1.GET("/customers", s.ListCustomers)
		v1.GET("/customers/:id", s.GetCustomer)

		v1.POST("/invoices", s.CreateInvoice)
		v1.GET("/invoices", s.ListInvoices)
		v1.GET("/invoices/:id", s.GetInvoice)
		v1.PATCH("/invoices/:id", s.UpdateInvoice)
		v1.DELETE("/invoices/:id", s.DeleteInvoice)

		v1.PUT("/invoices/:id/status", s.TransitionInvoiceStatus)

		v1.POST("/invoices/:id/line-items", s.CreateLineItem)
		v1.GET("/invoices/:id/line-items", s.ListLineItems)
		v1.GET("/invoices/:id/line-items/:lineItemID", s.GetLineItem)
		v1.PUT("/invoices/:id/line-items/:lineItemID", s.UpdateLineItem)
		v1.DELETE("/invoices/:id/line-items/:lineItemID", s.DeleteLineItem)

		v1.POST("/invoices/:id/pdf", s.RenderInvoicePDF)
		v1.GET("/invoices/:id/pdf", s.DownloadInvoicePDF)
		v1.POST("/invoices/:id/send", s.SendInvoice)
	}
	return r
}

func (s *Server) Start() error {
	s.log.Info("http server listening", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

var Module = fx.Module("server",
	fx.Provide(New),
	fx.Invoke(registerLifecycle),
)

func registerLifecycle(lc fx.Lifecycle, s *Server, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := s.Start(); err != nil {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return s.Stop(ctx)
		},
	})
}
