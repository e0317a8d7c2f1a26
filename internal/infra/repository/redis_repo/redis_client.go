package redis_repo

import (
	"context"

	"github.com/RoyceAzure/lab/rj_redis/pkg/redis_client"
	"github.com/redis/go-redis/v9"
)

// WithDB 選擇 redis logical db
func WithDB(db int) redis_client.Option {
	return func(o *redis.Options) {
		o.DB = db
	}
}

// NewRedisClient 同一個 address 共用 client, 並 ping 一次確認可用
func NewRedisClient(ctx context.Context, address string, options ...redis_client.Option) (*redis.Client, error) {
	client, err := redis_client.GetRedisClient(address, options...)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}
