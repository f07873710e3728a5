package redis

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/redis/go-redis/v9"
)

func TestFixedWindowAllow(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}

	allowed, count, err := client.FixedWindowAllow(ctx, "signin", 2, time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !allowed || count != 1 {
		t.Fatalf("expected first request allowed with count 1, got allowed=%v count=%d", allowed, count)
	}
	if len(mock.expireCalls) != 1 || mock.expireCalls[0].key != "sf:rate_limit:signin" {
		t.Fatalf("expected expire on first increment, got %+v", mock.expireCalls)
	}

	allowed, count, err = client.FixedWindowAllow(ctx, "signin", 2, time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !allowed || count != 2 {
		t.Fatalf("unexpected second call state allowed=%v count=%d", allowed, count)
	}
	if len(mock.expireCalls) != 1 {
		t.Fatalf("expire should not be set again")
	}

	allowed, _, err = client.FixedWindowAllow(ctx, "signin", 2, time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if allowed {
		t.Fatalf("expected limit reached")
	}
}

func TestFixedWindowRepairsMissingExpiry(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}
	mock.incr["sf:rate_limit:signup"] = 3

	allowed, count, err := client.FixedWindowAllow(ctx, "signup", 3, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if allowed || count != 4 {
		t.Fatalf("expected rejection at 4, got allowed=%v count=%d", allowed, count)
	}
	if len(mock.expireCalls) != 1 || mock.expireCalls[0].ttl != time.Minute {
		t.Fatalf("expected expiry repair, got %+v", mock.expireCalls)
	}

	if _, _, err := client.FixedWindowAllow(ctx, "signup", 3, time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mock.expireCalls) != 1 {
		t.Fatalf("repair must only run on the first rejection, got %+v", mock.expireCalls)
	}
}

func TestKeyspaceKey(t *testing.T) {
	if got := Keyspace("").Key("a", " ", "b"); got != "sf:a:b" {
		t.Fatalf("unexpected key %s", got)
	}
	if got := Keyspace("test").Key("cache"); got != "test:cache" {
		t.Fatalf("unexpected key %s", got)
	}
}

func TestGetMissingKeyIsNil(t *testing.T) {
	client := &Client{store: newMockCmdable()}
	_, err := client.Get(context.Background(), "absent")
	if !IsNil(err) {
		t.Fatalf("expected redis.Nil, got %v", err)
	}
	if IsNil(errors.New("boom")) {
		t.Fatalf("arbitrary errors are not nil replies")
	}
}

func TestSetGetDel(t *testing.T) {
	ctx := context.Background()
	client := &Client{store: newMockCmdable()}
	key := client.StateKey("default", "cart-storage")

	if err := client.Set(ctx, key, `{"state":{}}`, 0); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	got, err := client.Get(ctx, key)
	if err != nil || got != `{"state":{}}` {
		t.Fatalf("unexpected get %q err=%v", got, err)
	}
	if err := client.Del(ctx, key); err != nil {
		t.Fatalf("del failed: %v", err)
	}
	if _, err := client.Get(ctx, key); !IsNil(err) {
		t.Fatalf("expected key gone, got %v", err)
	}
}

func TestUninitializedClient(t *testing.T) {
	client := &Client{}
	if err := client.Ping(context.Background()); err == nil {
		t.Fatal("expected error from uninitialized client")
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close without raw client should be a no-op, got %v", err)
	}
}

func TestKeyBuilders(t *testing.T) {
	client := &Client{}
	if got := client.IdempotencyKey("orders", "abc"); got != "sf:idempotency:orders:abc" {
		t.Fatalf("unexpected idempotency key %s", got)
	}
	if got := client.RateLimitKey("scope"); got != "sf:rate_limit:scope" {
		t.Fatalf("unexpected rate limit key %s", got)
	}
	if got := client.AccessSessionKey("jti"); got != "sf:session:access:jti" {
		t.Fatalf("unexpected session key %s", got)
	}
	if got := client.CacheKey("catalog", "products"); got != "sf:cache:catalog:products" {
		t.Fatalf("unexpected cache key %s", got)
	}
	if got := client.StateKey("", "cart-storage"); got != "sf:state:cart-storage" {
		t.Fatalf("empty namespace should be skipped, got %s", got)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected missing address error")
	}
	opts, err := optionsFromConfig(config.RedisConfig{URL: "redis://localhost:6379/2", PoolSize: 7, DialTimeout: time.Second})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.DB != 2 || opts.PoolSize != 7 || opts.DialTimeout != time.Second || opts.ClientName != "storefront" {
		t.Fatalf("unexpected options %+v", opts)
	}
	opts, err = optionsFromConfig(config.RedisConfig{Address: "cache:6380", DB: 4})
	if err != nil || opts.Addr != "cache:6380" || opts.DB != 4 {
		t.Fatalf("unexpected address options %+v err=%v", opts, err)
	}
}

type mockCmdable struct {
	data        map[string]string
	incr        map[string]int64
	expireCalls []expireCall
}

type expireCall struct {
	key string
	ttl time.Duration
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{
		data: make(map[string]string),
		incr: make(map[string]int64),
	}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	m.data[key] = fmt.Sprint(value)
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd {
	if _, exists := m.data[key]; exists {
		return redis.NewBoolResult(false, nil)
	}
	m.data[key] = fmt.Sprint(value)
	return redis.NewBoolResult(true, nil)
}

func (m *mockCmdable) Incr(ctx context.Context, key string) *redis.IntCmd {
	m.incr[key]++
	return redis.NewIntResult(m.incr[key], nil)
}

func (m *mockCmdable) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	m.expireCalls = append(m.expireCalls, expireCall{key: key, ttl: expiration})
	return redis.NewBoolResult(true, nil)
}

func (m *mockCmdable) TTL(ctx context.Context, key string) *redis.DurationCmd {
	for _, call := range m.expireCalls {
		if call.key == key {
			return redis.NewDurationResult(call.ttl, nil)
		}
	}
	return redis.NewDurationResult(-1, nil)
}

func (m *mockCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(m.data, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}
