package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"stock_proxy/internal/app/di"
	"stock_proxy/internal/app/router"
	"stock_proxy/internal/app/server"
	"stock_proxy/internal/config"
	platformhandler "stock_proxy/internal/platform/http/handler"
	"stock_proxy/internal/platform/logging"
)

// version はビルド時に -ldflags "-X main.version=..." で上書きされます。
var version = "dev"

type serveOptions struct {
	configFile string
	addr       string
}

// newRootCmd はサブコマンド無しで serve と同じ動作をするルートコマンドを生成します。
func newRootCmd(out io.Writer) *cobra.Command {
	opts := &serveOptions{}

	rootCmd := &cobra.Command{
		Use:   "stock-proxy",
		Short: "Stock market data proxy for Finnhub and Alpha Vantage",
		Long: `stock-proxy relays Finnhub quotes, news, ticks and candles and Alpha Vantage
company overviews over a small set of GET routes, keeping API keys on the server.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
	rootCmd.SetOut(out)
	addServeFlags(rootCmd, opts)

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func newServeCmd() *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:          "serve",
		Short:        "Start the HTTP proxy",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
	addServeFlags(cmd, opts)
	return cmd
}

func addServeFlags(cmd *cobra.Command, opts *serveOptions) {
	cmd.Flags().StringVar(&opts.configFile, "config", "", "YAML config file (defaults to $"+config.EnvConfigFile+")")
	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address, overrides config and environment")
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "stock-proxy %s\n", version)
		},
	}
}

// loadConfig は設定を読み込み、フラグを反映してから検証します。
func loadConfig(opts *serveOptions) (*config.Config, error) {
	path := opts.configFile
	if path == "" {
		path = os.Getenv(config.EnvConfigFile)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if opts.addr != "" {
		cfg.Server.Addr = opts.addr
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runServe(ctx context.Context, opts *serveOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		slog.Error("refusing to start", "error", err)
		return err
	}

	if _, err := logging.Setup(os.Stderr, cfg.Log.Level, cfg.Log.Format); err != nil {
		return err
	}
	if !strings.EqualFold(cfg.Log.Level, "debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	market := di.NewMarketDataHandler(cfg, nil)
	r := router.NewRouter(market, platformhandler.NewHealthHandler(version), cfg.Server.BasePath)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("server configured",
		"addr", cfg.Server.Addr,
		"basePath", cfg.Server.BasePath,
		"upstreamTimeout", cfg.Upstream.Timeout.String(),
		"version", version,
	)
	return server.New(cfg.Server.Addr, r, cfg.Server.ShutdownTimeout).Run(ctx)
}
