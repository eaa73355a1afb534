//go:build integration

package session

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("WORDCLOUD_REDIS_ADDR")
	if addr == "" {
		t.Skip("WORDCLOUD_REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	ctx := context.Background()
	store := NewRedisStore(client, "wordcloud-test:session:")

	s := New(time.Minute)
	if err := store.Set(ctx, s); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	got, err := store.Get(ctx, s.ID)
	if err != nil || got == nil || got.ID != s.ID {
		t.Fatalf("Get = %+v, %v", got, err)
	}
	if err := store.Delete(ctx, s.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := store.Delete(ctx, s.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete = %v, want ErrNotFound", err)
	}
}
