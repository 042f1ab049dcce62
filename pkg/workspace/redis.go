package workspace

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Redis is a Store backed by Redis. The client lifecycle belongs to the
// caller; see pkg/redis.
type Redis struct {
	client redis.UniversalClient
	opts   *redisOptions
}

// NewRedis creates a Redis store.
//
//	client, err := redis.Open(ctx, cfg.RedisURL)
//	store := workspace.NewRedis(client, workspace.WithRedisTTL(cfg.UploadTTL))
func NewRedis(client redis.UniversalClient, opts ...RedisOption) *Redis {
	o := defaultRedisOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Redis{client: client, opts: o}
}

// Save implements Store.
func (r *Redis) Save(ctx context.Context, u *Upload) error {
	if err := validate(u); err != nil {
		return err
	}

	data, err := json.Marshal(u)
	if err != nil {
		return errors.Join(ErrMarshal, err)
	}

	return r.client.Set(ctx, r.key(u.ID), data, max(r.opts.ttl, 0)).Err()
}

// Load implements Store.
func (r *Redis) Load(ctx context.Context, id string) (*Upload, error) {
	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var u Upload
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, errors.Join(ErrUnmarshal, err)
	}
	return &u, nil
}

// Delete implements Store.
func (r *Redis) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, r.key(id)).Err()
}

// Close is a no-op. Shut the client down with pkg/redis.Shutdown.
func (r *Redis) Close() error {
	return nil
}

func (r *Redis) key(id string) string {
	if r.opts.prefix == "" {
		return id
	}
	return r.opts.prefix + ":" + id
}

var _ Store = (*Redis)(nil)
