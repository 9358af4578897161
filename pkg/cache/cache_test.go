package cache

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	base := OutputKeyOpts{Kind: "icon", MaxColors: 20, ContrastStrength: 0.12, OutlineAmount: 0.4, AlphaThreshold: 1, Version: "1"}

	if k.OutputKey("abc", base) != k.OutputKey("abc", base) {
		t.Error("OutputKey should be deterministic")
	}
	if !strings.HasPrefix(k.OutputKey("abc", base), "output:") {
		t.Errorf("OutputKey prefix unexpected: %s", k.OutputKey("abc", base))
	}

	variants := []OutputKeyOpts{
		{Kind: "sheet", MaxColors: 20, ContrastStrength: 0.12, OutlineAmount: 0.4, AlphaThreshold: 1, Version: "1"},
		{Kind: "icon", MaxColors: 21, ContrastStrength: 0.12, OutlineAmount: 0.4, AlphaThreshold: 1, Version: "1"},
		{Kind: "icon", MaxColors: 20, ContrastStrength: 0.2, OutlineAmount: 0.4, AlphaThreshold: 1, Version: "1"},
		{Kind: "icon", MaxColors: 20, ContrastStrength: 0.12, OutlineAmount: 0.5, AlphaThreshold: 1, Version: "1"},
		{Kind: "icon", MaxColors: 20, ContrastStrength: 0.12, OutlineAmount: 0.4, AlphaThreshold: 2, Version: "1"},
		{Kind: "icon", MaxColors: 20, ContrastStrength: 0.12, OutlineAmount: 0.4, AlphaThreshold: 1, Version: "2"},
	}
	want := k.OutputKey("abc", base)
	for i, v := range variants {
		if got := k.OutputKey("abc", v); got == want {
			t.Errorf("variant %d should produce a different key", i)
		}
	}
	if k.OutputKey("abd", base) == want {
		t.Error("different source hash should produce a different key")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "game:")

	opts := OutputKeyOpts{Kind: "sheet", MaxColors: 64}
	got := scoped.OutputKey("hash", opts)
	if got != "game:"+inner.OutputKey("hash", opts) {
		t.Errorf("ScopedKeyer OutputKey unexpected: %s", got)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.OutputKey("hash", OutputKeyOpts{})
	if key != "prefix:"+NewDefaultKeyer().OutputKey("hash", OutputKeyOpts{}) {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get(missing) = hit %v, err %v; want miss", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("png bytes"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit {
		t.Fatalf("Get(k) = hit %v, err %v; want hit", hit, err)
	}
	if string(data) != "png bytes" {
		t.Errorf("Get(k) = %q, want %q", data, "png bytes")
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("entry should be gone after Delete")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCacheBinaryValues(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	for _, v := range [][]byte{{}, []byte("\x89PNG\r\n\x1a\n\x00rest"), []byte("\n\n")} {
		if err := c.Set(ctx, "k", v, time.Hour); err != nil {
			t.Fatalf("Set: %v", err)
		}
		got, hit, err := c.Get(ctx, "k")
		if err != nil || !hit {
			t.Fatalf("Get: hit %v, err %v", hit, err)
		}
		if string(got) != string(v) {
			t.Errorf("Get = %q, want %q", got, v)
		}
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if err := c.Set(ctx, "k", []byte("x"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should be a miss")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, hit, err := c.Get(ctx, "k"); err != nil || hit {
		t.Errorf("corrupt entry: hit %v, err %v; want miss", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatalf("Set(%s): %v", k, err)
		}
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d entries, want 3", n)
	}
	for _, k := range []string{"a", "b", "c"} {
		if _, hit, _ := c.Get(ctx, k); hit {
			t.Errorf("%s should be cleared", k)
		}
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		backend string
		wantErr bool
		check   func(Cache) bool
	}{
		{"", false, func(c Cache) bool { _, ok := c.(NullCache); return ok }},
		{"none", false, func(c Cache) bool { _, ok := c.(NullCache); return ok }},
		{"file", false, func(c Cache) bool { fc, ok := c.(*FileCache); return ok && fc.Dir() == dir }},
		{"memcached://x", true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			c, err := Open(ctx, tt.backend, dir)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open(%q) error = %v, wantErr %v", tt.backend, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			defer c.Close()
			if !tt.check(c) {
				t.Errorf("Open(%q) returned %T", tt.backend, c)
			}
		})
	}
}

func TestOpenBadRedisURL(t *testing.T) {
	if _, err := Open(context.Background(), "redis://host:notaport/x/y", ""); err == nil {
		t.Error("Open should reject a malformed redis URL")
	}
}

// serverError mimics a reply error from a Redis server.
type serverError string

func (e serverError) Error() string { return string(e) }
func (serverError) RedisError()     {}

func fastRetry(t *testing.T) {
	t.Helper()
	old := retryDelay
	retryDelay = time.Millisecond
	t.Cleanup(func() { retryDelay = old })
}

func TestTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"dial", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("refused")}, true},
		{"loading", serverError("LOADING Redis is loading the dataset in memory"), true},
		{"tryagain", serverError("TRYAGAIN Multiple keys request during rehashing"), true},
		{"kvrocks prefix", serverError("ERR CLUSTERDOWN The cluster is down"), true},
		{"wrongtype", serverError("WRONGTYPE Operation against a key holding the wrong kind of value"), false},
		{"plain", errors.New("LOADING but not from a server"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := transient(tt.err); got != tt.want {
				t.Errorf("transient(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestRedisDo(t *testing.T) {
	fastRetry(t)
	ctx := context.Background()
	c := &RedisCache{}

	tests := []struct {
		name      string
		errs      []error // returned by successive attempts; nil after the last
		wantCalls int
		wantErr   error
	}{
		{"success", nil, 1, nil},
		{"miss passes through", []error{redis.Nil}, 1, redis.Nil},
		{"permanent", []error{serverError("WRONGTYPE x")}, 1, ErrBackend},
		{"recovers", []error{serverError("LOADING x")}, 2, nil},
		{"gives up", []error{serverError("LOADING a"), serverError("LOADING b"), serverError("LOADING c"), serverError("LOADING d")}, redisAttempts, ErrBackend},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := c.do(ctx, func() error {
				calls++
				if calls <= len(tt.errs) {
					return tt.errs[calls-1]
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if tt.wantErr == nil && err != nil {
				t.Errorf("err = %v, want nil", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRedisDoContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := (&RedisCache{}).do(ctx, func() error {
		return serverError("TRYAGAIN x")
	})
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestRedisCacheUnreachable(t *testing.T) {
	fastRetry(t)
	c := NewRedisCacheFromClient(redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	}))
	defer c.Close()

	ctx := context.Background()
	if _, hit, err := c.Get(ctx, "k"); !errors.Is(err, ErrBackend) || hit {
		t.Errorf("Get = hit %v, err %v; want ErrBackend", hit, err)
	}
	if err := c.Set(ctx, "k", []byte("v"), 0); !errors.Is(err, ErrBackend) {
		t.Errorf("Set err = %v, want ErrBackend", err)
	}
}
