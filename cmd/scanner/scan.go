package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"spreadScope/internal/config"
	"spreadScope/internal/detector"
	"spreadScope/internal/gecko"
	"spreadScope/internal/storage"
	"spreadScope/internal/storage/postgres"
	"spreadScope/internal/storage/redisfeed"
)

const (
	defaultSearchDelay = time.Second
	defaultHTTPTimeout = 30 * time.Second

	networkPrompt = "Enter the network to scan (e.g., eth, sol, base): "
)

func runScan(cmd *cobra.Command, args []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		return err
	}

	network, err := resolveNetwork(args, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if network == "" {
		logger.Info("no network provided")
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sinks, closeSinks, err := buildSinks(cfg, logger)
	if err != nil {
		return err
	}
	defer closeSinks()

	var sink storage.OpportunitySink
	if len(sinks) > 0 {
		sink = sinks
	}

	client := gecko.NewClient(gecko.Options{
		BaseURL: cfg.APIURL,
		Timeout: cfg.HTTPTimeout,
	})

	det := detector.New(detector.Config{
		Threshold:   cfg.Threshold,
		SearchDelay: cfg.SearchDelay,
		Page:        cfg.Page,
	}, client, sink, cmd.OutOrStdout(), logger)

	logger.Info("scanner start",
		zap.String("network", network),
		zap.String("api_url", cfg.APIURL),
		zap.Int("page", cfg.Page),
		zap.String("threshold", cfg.Threshold.String()),
		zap.Duration("search_delay", cfg.SearchDelay),
		zap.String("pg_dsn", redactDSN(postgres.DSN(cfg.Postgres.DSN, connParams(cfg.Postgres)))),
		zap.String("out", cfg.Out),
		zap.String("redis_addr", cfg.RedisAddr),
	)

	_, err = det.Detect(ctx, network)
	if errors.Is(err, context.Canceled) {
		logger.Info("scan interrupted")
		return nil
	}
	return err
}

// resolveNetwork takes the network from args, or prompts for it on in.
func resolveNetwork(args []string, in io.Reader, out io.Writer) (string, error) {
	if len(args) > 0 {
		return normalizeNetwork(args[0]), nil
	}

	fmt.Fprint(out, networkPrompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read network: %w", err)
	}
	return normalizeNetwork(line), nil
}

func normalizeNetwork(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func connParams(pg config.Postgres) postgres.ConnParams {
	return postgres.ConnParams{
		Host:     pg.Host,
		Port:     pg.Port,
		User:     pg.User,
		Password: pg.Password,
		Database: pg.Database,
		SSLMode:  pg.SSLMode,
	}
}

func buildSinks(cfg config.Config, logger *zap.Logger) (storage.MultiSink, func(), error) {
	var sinks storage.MultiSink
	var closers []func() error

	if dsn := postgres.DSN(cfg.Postgres.DSN, connParams(cfg.Postgres)); dsn != "" {
		store, err := postgres.NewStore(dsn)
		if err != nil {
			return nil, func() {}, err
		}
		sinks = append(sinks, store)
	}
	if cfg.Out != "" {
		sinks = append(sinks, storage.NewJsonlStorage(cfg.Out))
	}
	if cfg.RedisAddr != "" {
		publisher := redisfeed.NewPublisher(cfg.RedisAddr, cfg.RedisChannel)
		sinks = append(sinks, publisher)
		closers = append(closers, publisher.Close)
	}

	if len(sinks) == 0 {
		logger.Warn("no opportunity sink configured, results will only be printed")
	}

	closeAll := func() {
		for _, closeFn := range closers {
			if err := closeFn(); err != nil {
				logger.Warn("close sink failed", zap.Error(err))
			}
		}
	}
	return sinks, closeAll, nil
}
