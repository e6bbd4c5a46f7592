package redis

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/angelmondragon/storefront/pkg/config"
)

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newMockCmdable()
	client := NewWithCmdable(store)

	if _, err := client.LoadSnapshot(ctx, "vendors"); !errors.Is(err, ErrNil) {
		t.Fatalf("expected ErrNil before first save, got %v", err)
	}
	if err := client.SaveSnapshot(ctx, "vendors", []byte(`{"schema_version":1}`)); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := client.LoadSnapshot(ctx, "vendors")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if string(got) != `{"schema_version":1}` {
		t.Fatalf("unexpected payload %q", got)
	}
	if _, ok := store.data["sf:snapshot:vendors"]; !ok {
		t.Fatalf("expected namespaced key, got %v", store.data)
	}
}

func TestKeyBuilders(t *testing.T) {
	client := &Client{}
	if got := client.SnapshotKey("storefront_vendors_db"); got != "sf:snapshot:storefront_vendors_db" {
		t.Fatalf("unexpected snapshot key %s", got)
	}
	if got := client.buildKey("snapshot", "", "x"); got != "sf:snapshot:x" {
		t.Fatalf("empty parts should be skipped, got %s", got)
	}
}

func TestUninitializedClientErrors(t *testing.T) {
	client := &Client{}
	if err := client.Ping(context.Background()); err == nil {
		t.Fatal("expected error from uninitialized client")
	}
	if _, err := client.LoadSnapshot(context.Background(), "k"); err == nil {
		t.Fatal("expected error from uninitialized client")
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close without raw client should be a no-op, got %v", err)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected error without url or address")
	}
	opts, err := optionsFromConfig(config.RedisConfig{
		URL:         "redis://localhost:6379/3",
		PoolSize:    7,
		DialTimeout: time.Second,
	})
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if opts.DB != 3 || opts.PoolSize != 7 || opts.DialTimeout != time.Second {
		t.Fatalf("unexpected options %+v", opts)
	}
}

type mockCmdable struct {
	data map[string]string
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{data: make(map[string]string)}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	default:
		m.data[key] = fmt.Sprint(value)
	}
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}
