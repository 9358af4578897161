package cache

import (
	"context"
	"fmt"
	"strings"
)

// Backend names accepted by Open besides redis URLs.
const (
	BackendNone = "none"
	BackendFile = "file"
)

// Open returns the cache named by backend: "" or "none" disables
// caching, "file" uses a FileCache in dir, and a redis:// or rediss:// URL
// connects to Redis.
func Open(ctx context.Context, backend, dir string) (Cache, error) {
	switch {
	case backend == "" || backend == BackendNone:
		return NewNullCache(), nil
	case backend == BackendFile:
		fc, err := NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	case strings.HasPrefix(backend, "redis://"), strings.HasPrefix(backend, "rediss://"):
		rc, err := NewRedisCache(ctx, backend)
		if err != nil {
			return nil, err
		}
		return rc, nil
	}
	return nil, fmt.Errorf("unknown cache backend %q (want none, file, or a redis:// URL)", backend)
}
