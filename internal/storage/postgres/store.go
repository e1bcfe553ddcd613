package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"spreadScope/internal/model"
)

// Store persists arbitrage opportunities to Postgres. Every call opens its
// own connection and closes it before returning.
type Store struct {
	connConfig *pgx.ConnConfig
}

func NewStore(dsn string) (*Store, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	connConfig, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pg dsn: %w", err)
	}
	return &Store{connConfig: connConfig}, nil
}

func (s *Store) connect(ctx context.Context) (*pgx.Conn, error) {
	conn, err := pgx.ConnectConfig(ctx, s.connConfig.Copy())
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return conn, nil
}

const insertOpportunitySQL = `
	INSERT INTO arbitrage_opportunities (
		network, base_token_name, quote_token_name, base_token_address,
		quote_token_address, high_price_pool_address, low_price_pool_address,
		high_price, low_price, price_difference_percent
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

// SaveOpportunity inserts one opportunity row.
func (s *Store) SaveOpportunity(ctx context.Context, opp model.ArbitrageOpportunity) error {
	conn, err := s.connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Close(context.Background())

	_, err = conn.Exec(ctx, insertOpportunitySQL,
		opp.Network,
		opp.BaseTokenName,
		opp.QuoteTokenName,
		opp.BaseTokenAddress,
		opp.QuoteTokenAddress,
		opp.HighPricePoolAddress,
		opp.LowPricePoolAddress,
		opp.HighPrice.String(),
		opp.LowPrice.String(),
		opp.PriceDifferencePercent.String(),
	)
	if err != nil {
		return fmt.Errorf("postgres: insert opportunity %s: %w", opp.Pair(), err)
	}
	return nil
}

// ListOpportunities returns the most recently inserted opportunities,
// optionally restricted to one network.
func (s *Store) ListOpportunities(ctx context.Context, network string, limit int) ([]model.ArbitrageOpportunity, error) {
	query, args := listOpportunitiesQuery(network, limit)

	conn, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close(context.Background())

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: list opportunities: %w", err)
	}
	defer rows.Close()

	var opps []model.ArbitrageOpportunity
	for rows.Next() {
		var opp model.ArbitrageOpportunity
		var high, low, pct string
		if err := rows.Scan(
			&opp.Network, &opp.BaseTokenName, &opp.QuoteTokenName,
			&opp.BaseTokenAddress, &opp.QuoteTokenAddress,
			&opp.HighPricePoolAddress, &opp.LowPricePoolAddress,
			&high, &low, &pct,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan opportunity: %w", err)
		}
		if opp.HighPrice, err = decimal.NewFromString(high); err != nil {
			return nil, fmt.Errorf("postgres: parse high_price: %w", err)
		}
		if opp.LowPrice, err = decimal.NewFromString(low); err != nil {
			return nil, fmt.Errorf("postgres: parse low_price: %w", err)
		}
		if opp.PriceDifferencePercent, err = decimal.NewFromString(pct); err != nil {
			return nil, fmt.Errorf("postgres: parse price_difference_percent: %w", err)
		}
		opps = append(opps, opp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: list opportunities rows: %w", err)
	}
	return opps, nil
}

func listOpportunitiesQuery(network string, limit int) (string, []any) {
	query := `
	SELECT network, base_token_name, quote_token_name, base_token_address,
		quote_token_address, high_price_pool_address, low_price_pool_address,
		high_price::text, low_price::text, price_difference_percent::text
	FROM arbitrage_opportunities`
	args := []any{}

	if network != "" {
		args = append(args, network)
		query += fmt.Sprintf(" WHERE network = $%d", len(args))
	}
	query += " ORDER BY id DESC"
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	return query, args
}
