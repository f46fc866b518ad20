package storage

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/joelgarciajr84/library-backend-go/internal/core/domain"
)

const (
	redisKeyPayments = "latefees:payments"
	redisKeyRefunds  = "latefees:refunds"
)

// RedisLedger records completed gateway transactions as sorted-set members
// "txnId|amount|timestamp" scored by unix nanos, so summaries are a single
// ZRANGEBYSCORE per key.
type RedisLedger struct {
	client *redis.Client
}

func NewRedisLedger(client *redis.Client) *RedisLedger {
	return &RedisLedger{client: client}
}

func (r *RedisLedger) RecordPayment(ctx context.Context, transactionID, patronID string, amount float64) error {
	return r.record(ctx, redisKeyPayments, transactionID, amount)
}

func (r *RedisLedger) RecordRefund(ctx context.Context, transactionID string, amount float64) error {
	return r.record(ctx, redisKeyRefunds, transactionID, amount)
}

func (r *RedisLedger) record(ctx context.Context, key, transactionID string, amount float64) error {
	now := time.Now().UTC()
	member := transactionID + "|" + strconv.FormatFloat(amount, 'f', 2, 64) + "|" + now.Format(time.RFC3339Nano)

	err := r.client.ZAdd(ctx, key, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: member,
	}).Err()

	return errors.Wrap(err, "ledger record")
}

func (r *RedisLedger) Summary(ctx context.Context, from, to *time.Time) (domain.LedgerSummary, error) {
	min, max := "0", strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
	if from != nil {
		min = strconv.FormatInt(from.UnixNano(), 10)
	}
	if to != nil {
		max = strconv.FormatInt(to.UnixNano(), 10)
	}

	payments, err := r.totalsFor(ctx, redisKeyPayments, min, max)
	if err != nil {
		return domain.LedgerSummary{}, err
	}
	refunds, err := r.totalsFor(ctx, redisKeyRefunds, min, max)
	if err != nil {
		return domain.LedgerSummary{}, err
	}

	return domain.LedgerSummary{Payments: payments, Refunds: refunds}, nil
}

func (r *RedisLedger) totalsFor(ctx context.Context, key, min, max string) (domain.LedgerTotals, error) {
	members, err := r.client.ZRangeByScore(ctx, key, &redis.ZRangeBy{Min: min, Max: max}).Result()
	if err != nil {
		return domain.LedgerTotals{}, errors.Wrap(err, "ledger range query")
	}

	totals := domain.LedgerTotals{}
	for _, member := range members {
		parts := strings.Split(member, "|")
		if len(parts) != 3 {
			continue
		}
		amount, parseErr := strconv.ParseFloat(parts[1], 64)
		if parseErr != nil {
			continue
		}
		totals.Count++
		totals.TotalAmount += amount
	}
	return totals, nil
}
