package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	gmw "github.com/Laisky/gin-middlewares/v6"
	glog "github.com/Laisky/go-utils/v5/log"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/handboekai/handboek-api/common"
	"github.com/handboekai/handboek-api/common/client"
	"github.com/handboekai/handboek-api/common/config"
	"github.com/handboekai/handboek-api/common/graceful"
	"github.com/handboekai/handboek-api/common/logger"
	"github.com/handboekai/handboek-api/middleware"
	"github.com/handboekai/handboek-api/model"
	"github.com/handboekai/handboek-api/relay/adaptor/openrouter"
	"github.com/handboekai/handboek-api/router"
)

func main() {
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	common.Init()
	logger.SetupLogger()
	logger.StartLogRetentionCleaner(ctx, config.LogRetentionDays, logger.LogDir)
	logger.Logger.Info("Handboek API started", zap.String("version", common.Version))

	if config.GinMode != "" {
		gin.SetMode(config.GinMode)
	} else if os.Getenv("GIN_MODE") != gin.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	model.InitDB()
	defer func() {
		if err := model.CloseDB(); err != nil {
			logger.Logger.Error("failed to close database", zap.Error(err))
		}
	}()

	if err := common.InitRedisClient(); err != nil {
		logger.Logger.Fatal("failed to initialize Redis", zap.Error(err))
	}

	openrouter.InitTokenEncoders()
	client.Init()

	logLevel := glog.LevelInfo
	if config.DebugEnabled {
		logLevel = glog.LevelDebug
	}

	server := gin.New()
	server.RedirectTrailingSlash = false
	server.Use(
		middleware.RelayPanicRecover(),
		gmw.NewLoggerMiddleware(
			gmw.WithLoggerMwColored(),
			gmw.WithLevel(logLevel.String()),
			gmw.WithLogger(logger.Logger.Named("gin")),
		),
	)
	// Never add gzip here, it breaks SSE.
	server.Use(middleware.RequestId())
	server.Use(func(c *gin.Context) {
		done := graceful.BeginRequest()
		defer done()
		c.Next()
	})

	if config.EnablePrometheusMetrics {
		server.GET("/metrics", gin.WrapH(promhttp.Handler()))
		logger.Logger.Info("Prometheus metrics endpoint available at /metrics")
	}

	router.SetRouter(server)

	port := config.ServerPort
	if port == "" {
		port = strconv.Itoa(*common.Port)
	}

	httpServer := &http.Server{
		Addr:    ":" + port,
		Handler: server,
	}
	go func() {
		logger.Logger.Info("server started", zap.String("address", "http://localhost:"+port))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("failed to start HTTP server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("shutting down, draining in-flight requests")
	graceful.SetDraining()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Logger.Error("forced shutdown", zap.Error(err))
	}
	if err := graceful.Drain(ctx); err != nil {
		logger.Logger.Error("failed to drain critical tasks", zap.Error(err))
	}
	logger.Logger.Info("server exited")
}
