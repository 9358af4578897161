package pipeline

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/pixelup/pkg/cache"
	"github.com/matzehuels/pixelup/pkg/errors"
	"github.com/matzehuels/pixelup/pkg/observability"
	"github.com/matzehuels/pixelup/pkg/pixel"
	"github.com/matzehuels/pixelup/pkg/preserve"
	"github.com/matzehuels/pixelup/pkg/target"
	"github.com/matzehuels/pixelup/pkg/transform"
)

// outputKeyType labels output cache events for hooks.
const outputKeyType = "output"

// Runner executes upgrade runs with an optional output cache.
//
// The Runner holds no per-run state, so one Runner may serve several runs
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Run resolves targets and upgrades (or, in a dry run, plans) each one.
//
// Errors returned by Run stop the whole batch: invalid options, a missing
// or malformed registry, or context cancellation. Everything that goes
// wrong with a single target is recorded in the Summary instead.
func (r *Runner) Run(ctx context.Context, opts Options) (*Summary, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	start := time.Now()
	summary := &Summary{RunID: uuid.NewString(), DryRun: opts.DryRun}

	res, err := target.Resolve(opts.targetOptions())
	if err != nil {
		return nil, err
	}
	summary.Rejected = res.Rejected
	for _, rej := range res.Rejected {
		logger.Warn("registry entry rejected", "id", rej.ID, "path", rej.Path, "reason", rej.Reason)
	}
	summary.Unreadable = res.Unreadable
	for _, u := range res.Unreadable {
		logger.Warn("directory not scanned", "path", u.Path, "reason", u.Reason)
	}

	guard, err := preserve.New(opts.Root, opts.Prefix)
	if err != nil {
		return nil, err
	}

	logger.Info("resolved targets",
		"run_id", summary.RunID,
		"targets", len(res.Targets),
		"dry_run", opts.DryRun)
	observability.Upgrade().OnRunStart(ctx, summary.RunID, len(res.Targets), opts.DryRun)

	if len(res.Targets) == 0 {
		summary.Duration = time.Since(start)
		observability.Upgrade().OnRunComplete(ctx, summary.RunID, summary.Duration)
		return summary, nil
	}

	outcomes := make([]Outcome, len(res.Targets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, t := range res.Targets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = r.process(gctx, &opts, guard, t)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, o := range outcomes {
		summary.add(o)
	}
	summary.Duration = time.Since(start)
	observability.Upgrade().OnRunComplete(ctx, summary.RunID, summary.Duration)

	logger.Debug("run complete",
		"run_id", summary.RunID,
		"upgraded", summary.Upgraded,
		"skipped", summary.Skipped,
		"planned", summary.Planned,
		"cached", summary.Cached,
		"duration", summary.Duration)
	return summary, nil
}

// process handles one target from start to finish.
func (r *Runner) process(ctx context.Context, opts *Options, guard *preserve.Guard, t target.Target) Outcome {
	start := time.Now()
	out := Outcome{
		Path:      t.Path,
		Kind:      t.Kind,
		Source:    t.Source,
		Preserved: preservedRel(t.Path, opts.Prefix),
	}

	if opts.DryRun {
		r.plan(guard, t, &out)
	} else {
		r.upgrade(ctx, opts, guard, t, &out)
	}

	out.Duration = time.Since(start)
	opts.Logger.Debug("target done",
		"path", out.Path,
		"kind", out.Kind,
		"action", out.Action,
		"duration", out.Duration)
	if out.Err != nil {
		opts.Logger.Warn(out.Message(), "code", errors.GetCode(out.Err))
	}
	observability.Upgrade().OnTargetComplete(ctx, out.Path, string(out.Action), out.Duration, out.Err)
	return out
}

// plan fills out with what an upgrade would do, without side effects.
func (r *Runner) plan(guard *preserve.Guard, t target.Target, out *Outcome) {
	res, err := guard.Plan(t.Path)
	if err != nil {
		setError(out, err)
		return
	}
	out.Status = res.Status
	if res.Status == preserve.AlreadyPreserved {
		out.Action = ActionSkipped
		return
	}
	out.Action = ActionPlanned
}

// upgrade preserves, transforms and writes one target.
//
// The source is read and decoded before the original is renamed, so a
// target whose PNG cannot be decoded is left exactly where it was.
func (r *Runner) upgrade(ctx context.Context, opts *Options, guard *preserve.Guard, t target.Target, out *Outcome) {
	planned, err := guard.Plan(t.Path)
	if err != nil {
		setError(out, err)
		return
	}
	out.Status = planned.Status
	if planned.Status == preserve.AlreadyPreserved {
		out.Action = ActionSkipped
		return
	}

	// Before the rename the untouched original still sits at the target path.
	sourcePath := planned.Original
	if planned.Status == preserve.Preserved {
		sourcePath = planned.Target
	}
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		setError(out, errors.Wrap(errors.ErrCodeIO, err, "read %s", sourcePath))
		return
	}

	params := opts.Tuning.For(t.Kind)
	key := r.Keyer.OutputKey(cache.Hash(data), cache.OutputKeyOpts{
		Kind:             t.Kind.String(),
		MaxColors:        params.MaxColors,
		ContrastStrength: params.ContrastStrength,
		OutlineAmount:    params.OutlineAmount,
		AlphaThreshold:   params.AlphaThreshold,
		Version:          transform.Version,
	})

	encoded, hit := r.cached(ctx, key)
	if !hit {
		src, err := pixel.DecodeBytes(data)
		if err != nil {
			setError(out, err)
			return
		}
		upgraded := transform.ApplyObserved(src, params, func(stage string, d time.Duration) {
			opts.Logger.Debug("stage complete", "path", t.Path, "stage", stage, "duration", d)
			observability.Upgrade().OnStageComplete(ctx, stage, t.Path, d)
		})
		encoded, err = pixel.EncodeBytes(upgraded)
		if err != nil {
			setError(out, err)
			return
		}
	}

	if _, err := guard.Preserve(t.Path); err != nil {
		setError(out, err)
		return
	}
	if err := pixel.WriteFile(planned.Target, encoded); err != nil {
		setError(out, err)
		return
	}

	if !hit {
		r.store(ctx, key, encoded)
	}
	out.Cached = hit
	out.Action = ActionUpgraded
}

// cached looks up key, treating backend errors as misses.
func (r *Runner) cached(ctx context.Context, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, outputKeyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, outputKeyType)
	return data, true
}

// store writes encoded output to the cache. Failures are logged and dropped.
func (r *Runner) store(ctx context.Context, key string, data []byte) {
	if err := r.Cache.Set(ctx, key, data, 0); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, outputKeyType, len(data))
}

// setError records err on out with the matching action.
func setError(out *Outcome, err error) {
	out.Err = err
	if errors.Is(err, errors.ErrCodeMissingAsset) {
		out.Action = ActionMissing
		return
	}
	out.Action = ActionFailed
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
