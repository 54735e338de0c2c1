package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/fatflowers/hms-payment/docs"
	"github.com/fatflowers/hms-payment/internal/app/api/handlers"
	mw "github.com/fatflowers/hms-payment/internal/app/api/middleware"
	"github.com/fatflowers/hms-payment/internal/app/service/ledger"
	"github.com/fatflowers/hms-payment/internal/app/service/payment"
	cfgpkg "github.com/fatflowers/hms-payment/pkg/config"
	"github.com/fatflowers/hms-payment/pkg/logctx"
	metrics "github.com/fatflowers/hms-payment/pkg/metrics"
	"github.com/fatflowers/hms-payment/pkg/response"
)

const shutdownTimeout = 30 * time.Second

func newEngine(log *zap.SugaredLogger) *gin.Engine {
	r := gin.New()
	// correlation id first so recovery and 404 answers carry it
	r.Use(mw.CorrelationMiddleware())
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logctx.FromGin(c, log).Errorw("panic_recovered", "path", c.Request.URL.Path, "panic", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.InternalError(mw.CorrelationID(c)))
	}))
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, response.RouteNotFound(c.Request.URL.Path, mw.CorrelationID(c)))
	})
	return r
}

func registerRoutes(lc fx.Lifecycle, r *gin.Engine, log *zap.SugaredLogger, mgr payment.Manager, store ledger.Store, cfg *cfgpkg.Config) {
	p := metrics.NewPrometheus(metrics.NewPrometheusOptions{
		Subsystem: metrics.Subsystem,
		Logger:    log,
	})
	if srv := p.Use(r, cfg.MetricsAddr); srv != nil {
		lc.Append(serverHook(log, "metrics", srv))
	}

	pub := r.Group("/")
	pub.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware(log))
	handlers.RegisterHealthRoutes(pub, store, log)

	docs.SwaggerInfo.BasePath = "/"
	pub.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/v1/payments")
	v1.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware(log))
	handlers.RegisterPaymentRoutes(v1, mgr, log)
}

func runServer(lc fx.Lifecycle, log *zap.SugaredLogger, cfg *cfgpkg.Config, r *gin.Engine) {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}
	lc.Append(serverHook(log, "http", srv))
}

func serverHook(log *zap.SugaredLogger, name string, srv *http.Server) fx.Hook {
	return fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("server_starting", "server", name, "addr", srv.Addr)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Errorw("server_failed", "server", name, "error", err)
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("server_stopping", "server", name)
			shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}

var Module = fx.Options(
	fx.Provide(newEngine),
	fx.Invoke(registerRoutes),
	fx.Invoke(runServer),
)
