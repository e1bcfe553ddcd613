package main

import (
	"net/url"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "scanner",
		Short:        "DEX cross-pool price spread scanner",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	scanCmd := &cobra.Command{
		Use:   "scan [network]",
		Short: "Scan the newest pools of a network for price spreads",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScan,
	}

	scanCmd.Flags().String("api-url", "https://api.geckoterminal.com/api/v2", "GeckoTerminal API base URL")
	scanCmd.Flags().Int("page", 1, "newest pools page to scan")
	scanCmd.Flags().Float64("threshold", 0.5, "minimum spread percent to report")
	scanCmd.Flags().Duration("search-delay", defaultSearchDelay, "fixed delay before every pool search")
	scanCmd.Flags().Duration("http-timeout", defaultHTTPTimeout, "HTTP request timeout")
	scanCmd.Flags().String("pg-dsn", "", "Postgres DSN")
	scanCmd.Flags().String("out", "", "optional JSONL output path for opportunities")
	scanCmd.Flags().String("redis-addr", "", "optional Redis address for publishing opportunities")
	scanCmd.Flags().String("redis-channel", "arbitrage:opportunities", "Redis pub/sub channel")
	scanCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(scanCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored arbitrage opportunities",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}

	listCmd.Flags().String("network", "", "only show opportunities for this network")
	listCmd.Flags().Int("limit", 20, "maximum rows to show, 0 means all")
	listCmd.Flags().String("pg-dsn", "", "Postgres DSN")
	listCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(listCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

func redactDSN(dsn string) string {
	if dsn == "" {
		return dsn
	}
	u, err := url.Parse(dsn)
	if err != nil || u.Scheme == "" {
		return "***"
	}
	return u.Redacted()
}
