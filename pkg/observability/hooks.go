// Package observability provides hooks for metrics and tracing.
//
// Hooks are registered once at startup and called by library code. The
// defaults do nothing, so libraries never depend on a specific backend.
//
// # Usage
//
//	func main() {
//	    observability.SetUpgradeHooks(&myUpgradeHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Upgrade().OnStageComplete(ctx, "quantize", path, d)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Upgrade Hooks
// =============================================================================

// UpgradeHooks receives events from an upgrade run.
type UpgradeHooks interface {
	// OnRunStart is called once resolution has produced the target list.
	OnRunStart(ctx context.Context, runID string, targets int, dryRun bool)

	// OnStageComplete is called after one transform stage ran on one target.
	OnStageComplete(ctx context.Context, stage, path string, duration time.Duration)

	// OnTargetComplete is called once per target with the action taken
	// ("upgraded", "skipped", "missing", "failed", "planned").
	OnTargetComplete(ctx context.Context, path, action string, duration time.Duration, err error)

	// OnRunComplete is called when every target has been processed.
	OnRunComplete(ctx context.Context, runID string, duration time.Duration)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopUpgradeHooks is a no-op implementation of UpgradeHooks.
type NoopUpgradeHooks struct{}

func (NoopUpgradeHooks) OnRunStart(context.Context, string, int, bool)                          {}
func (NoopUpgradeHooks) OnStageComplete(context.Context, string, string, time.Duration)         {}
func (NoopUpgradeHooks) OnTargetComplete(context.Context, string, string, time.Duration, error) {}
func (NoopUpgradeHooks) OnRunComplete(context.Context, string, time.Duration)                   {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	upgradeHooks UpgradeHooks = NoopUpgradeHooks{}
	cacheHooks   CacheHooks   = NoopCacheHooks{}
	hooksMu      sync.RWMutex
)

// SetUpgradeHooks registers custom upgrade hooks.
// This should be called once at application startup before any run.
func SetUpgradeHooks(h UpgradeHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		upgradeHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Upgrade returns the registered upgrade hooks.
func Upgrade() UpgradeHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return upgradeHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	upgradeHooks = NoopUpgradeHooks{}
	cacheHooks = NoopCacheHooks{}
}
