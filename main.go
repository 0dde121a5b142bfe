package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"menumeters/internal/config"
	"menumeters/internal/controllers"
	"menumeters/internal/middleware"
	"menumeters/internal/models"
	"menumeters/internal/presenter"
	"menumeters/internal/routes"
	"menumeters/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "menumeters:", err)
		os.Exit(1)
	}
}

func run() error {
	path, err := config.Path()
	if err != nil {
		return err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("starting menumeters", zap.String("config", path))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	board := services.NewBoard(staleAfter(cfg.IntervalMap()))
	presenters := presenter.Multi{board}
	if cfg.Console.Enabled {
		presenters = append(presenters, presenter.NewConsole(os.Stdout))
	}

	var exporter *services.Exporter
	if cfg.Exporter.Enabled {
		exporter = services.NewExporter()
		presenters = append(presenters, exporter)
	}

	var (
		srv       *http.Server
		serverErr <-chan error
	)
	if cfg.Server.Enabled {
		hub := services.NewWebSocketHub(logger.Named("ws"))
		go hub.Run(ctx)
		presenters = append(presenters, hub)

		srv, err = newServer(cfg, board, hub, exporter, logger)
		if err != nil {
			return err
		}
		serverErr = serve(srv, stop, logger)
	}

	samplers := services.NewSamplers(services.NewGopsutilProvider())
	monitor := services.NewMonitor(samplers, cfg.IntervalMap(), cfg.WindowSize, presenters, logger.Named("monitor"))
	runErr := monitor.Run(ctx)

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("http server shutdown", zap.Error(err))
		}
	}
	if runErr != nil {
		return runErr
	}
	select {
	case err := <-serverErr:
		return fmt.Errorf("http server: %w", err)
	default:
		return nil
	}
}

// serve runs srv in the background. A failure other than a clean shutdown
// is delivered on the returned channel and cancels the monitor through stop.
func serve(srv *http.Server, stop context.CancelFunc, logger *zap.Logger) <-chan error {
	errc := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", zap.Error(err))
			errc <- err
			stop()
		}
	}()
	return errc
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = level
	loggerConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return loggerConfig.Build()
}

// staleAfter is how long a frame stays visible to HTTP readers once its
// meter stops updating.
func staleAfter(intervals map[models.Category]time.Duration) time.Duration {
	var longest time.Duration
	for _, d := range intervals {
		longest = max(longest, d)
	}
	return 3 * longest
}

func newServer(cfg *config.Config, board *services.Board, hub *services.WebSocketHub, exporter *services.Exporter, logger *zap.Logger) (*http.Server, error) {
	auth, err := services.NewAuthService(cfg.Server.Secret, cfg.Server.TokenExpiry, logger.Named("auth"))
	if err != nil {
		return nil, err
	}
	token, err := auth.GenerateToken("menumeters")
	if err != nil {
		return nil, err
	}
	logger.Info("access token for /meters and /ws", zap.String("token", token))

	if logger.Core().Enabled(zap.DebugLevel) {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	security := middleware.NewSecurityLogger(logger)
	requireToken := middleware.RequireToken(auth, security)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.SecurityHeadersMiddleware())
	r.Use(middleware.RateLimitMiddleware(middleware.NewRateLimiter(20, 40), security))
	if gin.Mode() == gin.DebugMode {
		r.Use(gin.Logger())
	}

	routes.RegisterMeterRoutes(r, controllers.NewMetersController(board), requireToken)
	routes.RegisterWebSocketRoutes(r, controllers.NewWebSocketController(hub, board, security, logger.Named("ws")), requireToken)
	if exporter != nil {
		routes.RegisterExporterRoutes(r, exporter.Registry())
	}

	return &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}, nil
}
