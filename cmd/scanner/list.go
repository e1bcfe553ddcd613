package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"spreadScope/internal/config"
	"spreadScope/internal/model"
	"spreadScope/internal/storage/postgres"
)

func runList(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadList(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	dsn := postgres.DSN(cfg.Postgres.DSN, connParams(cfg.Postgres))
	if dsn == "" {
		return fmt.Errorf("pg dsn is required")
	}
	if cfg.Limit < 0 {
		return fmt.Errorf("limit must not be negative")
	}

	store, err := postgres.NewStore(dsn)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opps, err := store.ListOpportunities(ctx, cfg.Network, cfg.Limit)
	if err != nil {
		return err
	}

	logger.Debug("list opportunities",
		zap.String("network", cfg.Network),
		zap.Int("limit", cfg.Limit),
		zap.Int("rows", len(opps)),
	)

	return writeOpportunityTable(cmd.OutOrStdout(), opps)
}

func writeOpportunityTable(out io.Writer, opps []model.ArbitrageOpportunity) error {
	if len(opps) == 0 {
		_, err := fmt.Fprintln(out, "no opportunities found")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NETWORK\tPAIR\tHIGH\tLOW\tDIFF %\tHIGH POOL\tLOW POOL")
	for _, opp := range opps {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			opp.Network,
			opp.Pair(),
			opp.HighPrice.StringFixed(6),
			opp.LowPrice.StringFixed(6),
			opp.PriceDifferencePercent.StringFixed(2),
			model.DisplayAddress(opp.HighPricePoolAddress),
			model.DisplayAddress(opp.LowPricePoolAddress),
		)
	}
	return w.Flush()
}
