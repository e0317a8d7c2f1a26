package redis_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrLockHeld = errors.New("lock is held by another request")

// ICheckoutLocker 同一個使用者同時只能有一個結帳流程
type ICheckoutLocker interface {
	// Acquire 取得鎖, 已被持有時回傳 ErrLockHeld
	Acquire(ctx context.Context, userID uint) (release func(context.Context) error, err error)
}

// 只有持有者(value相同)才能刪除
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type CheckoutLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCheckoutLocker(client *redis.Client, ttl time.Duration) *CheckoutLocker {
	return &CheckoutLocker{client: client, ttl: ttl}
}

func generateCheckoutLockKey(userID uint) string {
	return fmt.Sprintf("checkout:%d:lock", userID)
}

func (l *CheckoutLocker) Acquire(ctx context.Context, userID uint) (func(context.Context) error, error) {
	key := generateCheckoutLockKey(userID)
	owner := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, owner, l.ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLockHeld
	}

	return func(ctx context.Context) error {
		return releaseScript.Run(ctx, l.client, []string{key}, owner).Err()
	}, nil
}

// NoopCheckoutLocker 沒有設定 redis 時使用
type NoopCheckoutLocker struct{}

func (NoopCheckoutLocker) Acquire(context.Context, uint) (func(context.Context) error, error) {
	return func(context.Context) error { return nil }, nil
}

var (
	_ ICheckoutLocker = (*CheckoutLocker)(nil)
	_ ICheckoutLocker = NoopCheckoutLocker{}
)
