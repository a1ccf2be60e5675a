package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"solana_portfolio/internal/app/service"
	cmcclient "solana_portfolio/internal/client"
	"solana_portfolio/internal/infrastructure/chart"
	"solana_portfolio/internal/infrastructure/configloader"
	clientprovider "solana_portfolio/internal/infrastructure/network/client"
	networkdefinition "solana_portfolio/internal/infrastructure/network/definition"
	"solana_portfolio/internal/infrastructure/restapi"
	"solana_portfolio/internal/pkg/logger"
	"solana_portfolio/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to config.yml (default $CONFIG_PATH or "+configloader.DefaultPath+")")
	enablePprof := flag.Bool("pprof", false, "expose /debug/pprof endpoints")
	flag.Parse()

	cfg, err := configloader.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	var zapLogger *zap.Logger
	if cfg.Logging.Level == "debug" {
		zapLogger, err = zap.NewDevelopment()
	} else {
		zapLogger, err = zap.NewProduction()
		gin.SetMode(gin.ReleaseMode)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to initialize zap logger: %v\n", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	logger.Init(zapLogger, cfg.Logging.Level)
	appLogger := logger.NewSlogAdapter()
	logger.Info("Portfolio server starting", "cluster", cfg.Solana.Cluster, "max_concurrent_routines", cfg.Performance.MaxConcurrentRoutines)

	metrics.MustRegisterMetrics()

	netDefProvider := networkdefinition.NewNetworkDefinitionProvider(appLogger, cfg.Helius.RPCURL)
	netDef, ok := netDefProvider.GetNetworkDefinitionByName(cfg.Solana.Cluster)
	if !ok {
		logger.Fatal("Unknown Solana cluster", "cluster", cfg.Solana.Cluster)
	}

	fetcherFactory := clientprovider.NewSolanaClientProvider(cfg, netDef, zapLogger, appLogger)

	cmcClient := cmcclient.NewCoinMarketCapClient(
		cfg.CoinMarketCap.BaseURL,
		time.Duration(cfg.CoinMarketCap.RequestTimeoutMillis)*time.Millisecond,
		zapLogger,
	)
	priceService := service.NewSpotPriceService(cmcClient, cfg, appLogger)

	portfolioService := service.NewPortfolioService(
		fetcherFactory,
		priceService,
		chart.NewVegaLiteRenderer(),
		appLogger,
		cfg.Performance.MaxConcurrentRoutines,
		cfg.Display.MaterialityPercent,
	)
	logger.Info("PortfolioService initialized")

	handler := restapi.NewPortfolioHandler(portfolioService, netDefProvider, cfg, appLogger)
	router := restapi.SetupRouter(handler, zapLogger, restapi.RouterOptions{EnablePprof: *enablePprof})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start HTTP server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	logger.Info("Server exiting")
}
