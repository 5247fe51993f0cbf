package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/piresc/payrelay/internal/pkg/constants"
	"github.com/piresc/payrelay/internal/pkg/logger"
	"github.com/piresc/payrelay/internal/pkg/models"
	"github.com/piresc/payrelay/services/payment"
)

const maxTxRetries = 10

// RedisRepo stores each payment as a JSON value under payment:record:{id}
type RedisRepo struct {
	client *redis.Client
}

// NewRedisRepository creates a Redis-backed ledger
func NewRedisRepository(client *redis.Client) *RedisRepo {
	return &RedisRepo{client: client}
}

func recordKey(id string) string {
	return fmt.Sprintf(constants.KeyPaymentRecord, id)
}

// Insert adds a new record with SETNX
func (r *RedisRepo) Insert(ctx context.Context, p *models.Payment) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal payment: %w", err)
	}

	ok, err := r.client.SetNX(ctx, recordKey(p.ID), data, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	if !ok {
		return payment.ErrDuplicateID
	}
	return nil
}

// Get loads a record
func (r *RedisRepo) Get(ctx context.Context, id string) (*models.Payment, error) {
	return r.load(ctx, r.client, id)
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (r *RedisRepo) load(ctx context.Context, c getter, id string) (*models.Payment, error) {
	data, err := c.Get(ctx, recordKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, payment.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	var p models.Payment
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payment: %w", err)
	}
	return &p, nil
}

// Update runs mutate in a WATCH/MULTI transaction, retrying when the key
// changes between read and write
func (r *RedisRepo) Update(ctx context.Context, id string, mutate payment.MutationFunc) (*models.Payment, error) {
	key := recordKey(id)
	var updated *models.Payment

	txf := func(tx *redis.Tx) error {
		current, err := r.load(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := mutate(current); err != nil {
			return err
		}
		current.ID = id

		data, err := json.Marshal(current)
		if err != nil {
			return fmt.Errorf("failed to marshal payment: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		if err == nil {
			updated = current
		}
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err := r.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			logger.DebugCtx(ctx, "Payment update conflicted, retrying",
				logger.String("payment_id", id),
				logger.Int("attempt", i+1))
			continue
		}
		if err != nil {
			return nil, err
		}
		return updated, nil
	}

	return nil, fmt.Errorf("failed to update payment %s: too many concurrent writers", id)
}
