package cli

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/matzehuels/pixelup/pkg/cache"
)

func TestCacheDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name string
		xdg  string
		want string
	}{
		{"home default", "", filepath.Join(home, ".cache", appName)},
		{"xdg override", "/tmp/custom-cache", filepath.Join("/tmp/custom-cache", appName)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CACHE_HOME", tt.xdg)
			dir, err := cacheDir()
			if err != nil {
				t.Fatalf("cacheDir() error: %v", err)
			}
			if dir != tt.want {
				t.Errorf("cacheDir() = %q, want %q", dir, tt.want)
			}
		})
	}
}

func TestNewCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	for _, backend := range []string{"", "none", "file"} {
		c, err := newCache(t.Context(), backend)
		if err != nil {
			t.Errorf("newCache(%q): %v", backend, err)
			continue
		}
		c.Close()
	}
	if _, err := newCache(t.Context(), "bogus"); err == nil {
		t.Error("newCache should reject an unknown backend")
	}
}

func TestNewRunnerNamespace(t *testing.T) {
	c := New(io.Discard, LogInfo)
	opts := cache.OutputKeyOpts{Kind: "icon", MaxColors: 12}

	plain, err := c.newRunner(t.Context(), "none", "")
	if err != nil {
		t.Fatal(err)
	}
	scoped, err := c.newRunner(t.Context(), "none", "game")
	if err != nil {
		t.Fatal(err)
	}

	base := plain.Keyer.OutputKey("abc", opts)
	if got := scoped.Keyer.OutputKey("abc", opts); got != "game:"+base {
		t.Errorf("namespaced key = %q, want %q", got, "game:"+base)
	}
}
