package cache

import (
	"context"
	"testing"
	"time"
)

type ttlRecorder struct {
	Disabled
	ttls []time.Duration
}

func (r *ttlRecorder) Set(_ context.Context, _ string, _ []byte, ttl time.Duration) error {
	r.ttls = append(r.ttls, ttl)
	return nil
}

func TestWithMaxTTL(t *testing.T) {
	ctx := context.Background()
	rec := &ttlRecorder{}
	c := WithMaxTTL(rec, time.Hour)

	for _, ttl := range []time.Duration{time.Minute, TTLLayout, 0} {
		if err := c.Set(ctx, "k", nil, ttl); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}

	want := []time.Duration{time.Minute, time.Hour, time.Hour}
	for i, got := range rec.ttls {
		if got != want[i] {
			t.Errorf("ttl[%d] = %v, want %v", i, got, want[i])
		}
	}
}

func TestWithMaxTTLDisabled(t *testing.T) {
	rec := &ttlRecorder{}
	if c := WithMaxTTL(rec, 0); c != Cache(rec) {
		t.Error("WithMaxTTL(0) should return the cache unchanged")
	}
}
