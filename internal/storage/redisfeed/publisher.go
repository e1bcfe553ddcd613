package redisfeed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"spreadScope/internal/model"
)

// DefaultChannel is used when no channel is configured.
const DefaultChannel = "arbitrage:opportunities"

// Publisher broadcasts opportunities on a Redis pub/sub channel.
type Publisher struct {
	rdb     *redis.Client
	channel string
}

func NewPublisher(addr, channel string) *Publisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Publisher{
		rdb:     redis.NewClient(&redis.Options{Addr: addr}),
		channel: channel,
	}
}

// SaveOpportunity publishes opp as JSON.
func (p *Publisher) SaveOpportunity(ctx context.Context, opp model.ArbitrageOpportunity) error {
	payload, err := json.Marshal(opp)
	if err != nil {
		return fmt.Errorf("marshal opportunity: %w", err)
	}
	if err := p.rdb.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("redis publish %s: %w", p.channel, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.rdb.Close()
}
