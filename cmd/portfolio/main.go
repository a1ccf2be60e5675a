package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"solana_portfolio/internal/app/port"
	"solana_portfolio/internal/app/service"
	cmcclient "solana_portfolio/internal/client"
	"solana_portfolio/internal/domain/entity"
	"solana_portfolio/internal/infrastructure/chart"
	"solana_portfolio/internal/infrastructure/configloader"
	clientprovider "solana_portfolio/internal/infrastructure/network/client"
	networkdefinition "solana_portfolio/internal/infrastructure/network/definition"
	"solana_portfolio/internal/infrastructure/walletloader"
	"solana_portfolio/internal/pkg/logger"
	"solana_portfolio/internal/pkg/metrics"
	"solana_portfolio/internal/pkg/utils"

	"go.uber.org/zap"
)

const (
	exitOK = iota
	exitFailure
	exitInvalid
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  = flag.String("config", "", "path to config.yml (default $CONFIG_PATH or "+configloader.DefaultPath+")")
		addresses   = flag.String("addresses", "", "comma or space separated wallet addresses")
		walletsFile = flag.String("wallets-file", "", "file with one wallet address per line")
		unstaked    = flag.Bool("unstaked", false, "include unstaked SOL")
		staked      = flag.Bool("staked", false, "include staked SOL")
		rpcKey      = flag.String("rpc-key", "", "Helius API key (default $"+configloader.EnvHeliusAPIKey+")")
		priceKey    = flag.String("price-key", "", "CoinMarketCap API key (default $"+configloader.EnvCMCAPIKey+")")
		format      = flag.String("format", "table", "output format: table or vega")
		timeout     = flag.Duration("timeout", 2*time.Minute, "overall deadline for the submission")
	)
	flag.Parse()

	if *format != "table" && *format != "vega" {
		fmt.Fprintf(os.Stderr, "unknown -format %q (want table or vega)\n", *format)
		return exitInvalid
	}

	cfg, err := configloader.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		return exitFailure
	}

	var zapLogger *zap.Logger
	if cfg.Logging.Level == "debug" {
		zapLogger, err = zap.NewDevelopment()
	} else {
		zapLogger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize zap logger: %v\n", err)
		return exitFailure
	}
	defer zapLogger.Sync()
	logger.Init(zapLogger, cfg.Logging.Level)
	appLogger := logger.NewSlogAdapter()
	metrics.MustRegisterMetrics()

	addrs := utils.SplitAddresses(*addresses)
	if *walletsFile != "" {
		fromFile, err := walletloader.NewWalletFileLoader(*walletsFile, appLogger).GetWallets()
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return exitFailure
		}
		addrs = append(addrs, fromFile...)
	}

	sub := entity.Submission{
		Addresses:       addrs,
		IncludeUnstaked: *unstaked,
		IncludeStaked:   *staked,
		Credentials: entity.Credentials{
			RPCAPIKey:   firstNonEmpty(*rpcKey, cfg.Helius.APIKey),
			PriceAPIKey: firstNonEmpty(*priceKey, cfg.CoinMarketCap.APIKey),
		},
	}

	portfolioService, err := buildService(cfg, zapLogger, appLogger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return exitFailure
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	result, err := portfolioService.RenderForAddresses(ctx, sub)
	if err != nil {
		var verrs entity.ValidationErrors
		if errors.As(err, &verrs) {
			fmt.Fprintln(os.Stderr, "Submission rejected:")
			for _, msg := range verrs {
				fmt.Fprintf(os.Stderr, "  - %s\n", msg)
			}
			return exitInvalid
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitFailure
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s: %s\n", utils.ShortAddress(w.Address), w.Message)
	}
	if result.Empty() {
		fmt.Println(result.EmptyMessage())
		return exitOK
	}

	if *format == "vega" {
		os.Stdout.Write(result.Spec)
		fmt.Println()
		return exitOK
	}
	if err := writeTable(os.Stdout, result); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitFailure
	}
	return exitOK
}

func buildService(cfg *configloader.Config, zapLogger *zap.Logger, appLogger port.Logger) (port.PortfolioService, error) {
	netDefProvider := networkdefinition.NewNetworkDefinitionProvider(appLogger, cfg.Helius.RPCURL)
	netDef, ok := netDefProvider.GetNetworkDefinitionByName(cfg.Solana.Cluster)
	if !ok {
		return nil, fmt.Errorf("unknown Solana cluster %q", cfg.Solana.Cluster)
	}

	cmcClient := cmcclient.NewCoinMarketCapClient(
		cfg.CoinMarketCap.BaseURL,
		time.Duration(cfg.CoinMarketCap.RequestTimeoutMillis)*time.Millisecond,
		zapLogger,
	)
	return service.NewPortfolioService(
		clientprovider.NewSolanaClientProvider(cfg, netDef, zapLogger, appLogger),
		service.NewSpotPriceService(cmcClient, cfg, appLogger),
		chart.NewVegaLiteRenderer(),
		appLogger,
		cfg.Performance.MaxConcurrentRoutines,
		cfg.Display.MaterialityPercent,
	), nil
}

func writeTable(w io.Writer, result *entity.PortfolioChart) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "ASSET\tVALUE (USD)\tSHARE\t")
	for _, rec := range result.Records {
		fmt.Fprintf(tw, "%s\t%.2f\t%.1f%%\t\n", rec.Symbol, rec.ValueUSD, rec.Percent)
	}
	fmt.Fprintf(tw, "TOTAL\t%.2f\t\t\n", result.TotalValueUSD)
	return tw.Flush()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
