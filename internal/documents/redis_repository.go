package documents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/goliatone/go-composer/internal/identity"
)

const defaultRedisPrefix = "composer:pages:"

// RedisRepository stores each record as a JSON string under prefix+key.
type RedisRepository struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewRedisRepository connects to redisURL and verifies the connection.
func NewRedisRepository(ctx context.Context, redisURL, prefix string) (*RedisRepository, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return NewRedisRepositoryWithClient(client, prefix), nil
}

// NewRedisRepositoryWithClient wraps an existing client.
func NewRedisRepositoryWithClient(client *redis.Client, prefix string) *RedisRepository {
	if strings.TrimSpace(prefix) == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisRepository{
		client: client,
		prefix: prefix,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (r *RedisRepository) key(pageKey string) string {
	return r.prefix + pageKey
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (r *RedisRepository) Get(ctx context.Context, key string) (*Record, error) {
	return r.read(ctx, r.client, key)
}

func (r *RedisRepository) read(ctx context.Context, conn stringGetter, key string) (*Record, error) {
	raw, err := conn.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, notFound(key)
	}
	if err != nil {
		return nil, fmt.Errorf("redis get document: %w", err)
	}
	var record Record
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &record, nil
}

// Upsert writes the record inside a WATCH transaction so concurrent writers
// cannot interleave the revision bump.
func (r *RedisRepository) Upsert(ctx context.Context, record *Record) (*Record, error) {
	if record == nil || strings.TrimSpace(record.Key) == "" {
		return nil, ErrPageKeyRequired
	}
	redisKey := r.key(record.Key)
	var stored *Record

	txf := func(tx *redis.Tx) error {
		next := cloneRecord(record)
		now := r.now()
		existing, err := r.read(ctx, tx, record.Key)
		switch {
		case err == nil:
			next.ID = existing.ID
			next.CreatedAt = existing.CreatedAt
			next.Revision = existing.Revision + 1
		case errors.Is(err, ErrDocumentNotFound):
			next.ID = identity.DocumentUUID(record.Key)
			next.CreatedAt = now
			next.Revision = 1
		default:
			return err
		}
		next.UpdatedAt = now
		payload, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("encode document: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, redisKey, payload, 0)
			return nil
		})
		if err == nil {
			stored = next
		}
		return err
	}

	if err := r.client.Watch(ctx, txf, redisKey); err != nil {
		return nil, fmt.Errorf("redis upsert document: %w", err)
	}
	return stored, nil
}

func (r *RedisRepository) Delete(ctx context.Context, key string) error {
	removed, err := r.client.Del(ctx, r.key(key)).Result()
	if err != nil {
		return fmt.Errorf("redis delete document: %w", err)
	}
	if removed == 0 {
		return notFound(key)
	}
	return nil
}

func (r *RedisRepository) List(ctx context.Context) ([]*Record, error) {
	var out []*Record
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		record, err := r.Get(ctx, strings.TrimPrefix(iter.Val(), r.prefix))
		if errors.Is(err, ErrDocumentNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan documents: %w", err)
	}
	slices.SortFunc(out, func(a, b *Record) int { return strings.Compare(a.Key, b.Key) })
	return out, nil
}

// Close releases the client.
func (r *RedisRepository) Close() error {
	return r.client.Close()
}
