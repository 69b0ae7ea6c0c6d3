package redis

import (
	"testing"
	"time"

	"github.com/taskforge/rewards-api/internal/infrastructure/config"
)

func TestClientOptions(t *testing.T) {
	opts := clientOptions(config.RedisConfig{
		Addr:     "cache.internal:6379",
		Password: "hunter2",
		DB:       3,
	})

	if opts.Addr != "cache.internal:6379" {
		t.Fatalf("unexpected addr: %q", opts.Addr)
	}
	if opts.Password != "hunter2" {
		t.Fatalf("password not carried over")
	}
	if opts.DB != 3 {
		t.Fatalf("unexpected db: %d", opts.DB)
	}
	if opts.DialTimeout != 5*time.Second || opts.ReadTimeout != 3*time.Second || opts.WriteTimeout != 3*time.Second {
		t.Fatalf("timeouts not bounded: dial=%v read=%v write=%v", opts.DialTimeout, opts.ReadTimeout, opts.WriteTimeout)
	}
}
