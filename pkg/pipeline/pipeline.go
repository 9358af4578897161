// Package pipeline runs the asset upgrade over a project tree.
//
// A run resolves targets from the registry and scan directories, preserves
// each original under a prefixed name, transforms the preserved pixels with
// the parameters for the target's kind, and writes the result back to the
// original path.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	summary, err := runner.Run(ctx, pipeline.Options{
//	    Root: ".",
//	    Tag:  "player",
//	    Dirs: []string{"assets/icons"},
//	})
//	if err != nil {
//	    // registry missing or invalid options
//	}
//	fmt.Println(summary)
//
// Per-target problems (missing files, undecodable PNGs) never abort a run.
// They are recorded on the target's [Outcome] and in the [Summary].
package pipeline

import (
	"fmt"
	"io"
	"path"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pixelup/pkg/asset"
	"github.com/matzehuels/pixelup/pkg/errors"
	"github.com/matzehuels/pixelup/pkg/preserve"
	"github.com/matzehuels/pixelup/pkg/target"
	"github.com/matzehuels/pixelup/pkg/transform"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultRegistryPath is the registry document, relative to the root.
	DefaultRegistryPath = "runtime/registry.json"

	// DefaultWorkers processes targets one at a time.
	DefaultWorkers = 1

	// MaxWorkers bounds --workers.
	MaxWorkers = 64
)

// =============================================================================
// Options
// =============================================================================

// Options configures a run.
type Options struct {
	// Root is the project root all target paths are relative to.
	Root string
	// RegistryPath is read only when Tag is set.
	RegistryPath string
	// Tag selects registry entries.
	Tag string
	// Dirs are scanned recursively for PNG files.
	Dirs []string
	// Prefix marks preserved originals.
	Prefix string
	// DryRun plans every target without touching the filesystem.
	DryRun bool
	// Tuning is the per-kind parameter table, including the alpha threshold.
	Tuning transform.Tuning
	// Workers is the number of targets processed concurrently.
	Workers int

	// Logger receives run events. Defaults to a discard logger.
	Logger *log.Logger

	validated bool
}

// ValidateAndSetDefaults checks fields and applies defaults.
// Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Root == "" {
		o.Root = "."
	}
	if o.RegistryPath == "" {
		o.RegistryPath = DefaultRegistryPath
	}
	if o.Prefix == "" {
		o.Prefix = preserve.DefaultPrefix
	}
	if err := errors.ValidatePrefix(o.Prefix); err != nil {
		return err
	}
	if o.Tuning == (transform.Tuning{}) {
		o.Tuning = transform.DefaultTuning()
	}
	if err := o.Tuning.Validate(); err != nil {
		return err
	}
	if o.Workers == 0 {
		o.Workers = DefaultWorkers
	}
	if o.Workers < 1 || o.Workers > MaxWorkers {
		return errors.New(errors.ErrCodeInvalidInput, "workers must be between 1 and %d (got %d)", MaxWorkers, o.Workers)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// targetOptions returns the resolver options for o.
func (o *Options) targetOptions() target.Options {
	return target.Options{
		Root:         o.Root,
		RegistryPath: o.RegistryPath,
		Tag:          o.Tag,
		Dirs:         o.Dirs,
		Prefix:       o.Prefix,
	}
}

// =============================================================================
// Outcomes
// =============================================================================

// Action is what a run did with one target.
type Action string

const (
	ActionUpgraded Action = "upgraded"
	ActionSkipped  Action = "skipped"
	ActionMissing  Action = "missing"
	ActionFailed   Action = "failed"
	ActionPlanned  Action = "planned"
)

// Outcome is the result for one target.
type Outcome struct {
	Path   string
	Kind   asset.Kind
	Source target.Source
	Action Action
	// Status is the preservation state; meaningful for upgraded and
	// planned outcomes.
	Status preserve.Status
	// Preserved is the preserved original, relative to the root.
	Preserved string
	// Cached is set when the output came from the cache.
	Cached   bool
	Err      error
	Duration time.Duration
}

// Message is the action log line for o.
func (o Outcome) Message() string {
	switch o.Action {
	case ActionPlanned:
		if o.Status == preserve.Existing {
			return fmt.Sprintf("already preserved, would re-upgrade %s kind=%s", o.Path, o.Kind)
		}
		return fmt.Sprintf("would preserve %s -> %s; upgrade kind=%s", o.Path, o.Preserved, o.Kind)
	case ActionUpgraded:
		if o.Cached {
			return fmt.Sprintf("upgraded %s kind=%s (cached)", o.Path, o.Kind)
		}
		return fmt.Sprintf("upgraded %s kind=%s", o.Path, o.Kind)
	case ActionSkipped:
		return fmt.Sprintf("prefixed, skipping %s", o.Path)
	case ActionMissing:
		return fmt.Sprintf("missing asset: %s", o.Path)
	case ActionFailed:
		return fmt.Sprintf("failed %s: %s", o.Path, errors.UserMessage(o.Err))
	}
	return o.Path
}

// preservedRel returns the preserved name for a slash-separated target path.
func preservedRel(rel, prefix string) string {
	dir, name := path.Split(rel)
	return dir + prefix + name
}

// =============================================================================
// Summary
// =============================================================================

// Failure is a target that could not be upgraded for a reason other than
// being missing.
type Failure struct {
	Path string
	Code errors.Code
	Err  error
}

// Summary aggregates a run.
type Summary struct {
	RunID  string
	DryRun bool

	// Upgraded counts targets written, including cache hits.
	Upgraded int
	// Skipped counts targets not written: missing, prefixed and failed.
	Skipped int
	// Cached counts upgraded targets served from the cache.
	Cached int
	// Planned counts targets in a dry run that would be upgraded.
	Planned int

	Missing    []string
	Failed     []Failure
	Rejected   []target.Rejection
	Unreadable []target.Unreadable

	// Outcomes are in resolution order.
	Outcomes []Outcome
	Duration time.Duration
}

// Empty reports whether the run had no targets.
func (s *Summary) Empty() bool {
	return len(s.Outcomes) == 0
}

// String returns the one-line summary.
func (s *Summary) String() string {
	if s.DryRun {
		return fmt.Sprintf("Would upgrade %d asset(s); missing %d.", s.Planned, len(s.Missing))
	}
	return fmt.Sprintf("Upgraded %d asset(s); skipped %d.", s.Upgraded, s.Skipped)
}

// add folds o into the counters.
func (s *Summary) add(o Outcome) {
	s.Outcomes = append(s.Outcomes, o)
	switch o.Action {
	case ActionUpgraded:
		s.Upgraded++
		if o.Cached {
			s.Cached++
		}
	case ActionPlanned:
		s.Planned++
	case ActionMissing:
		s.Missing = append(s.Missing, o.Path)
		if !s.DryRun {
			s.Skipped++
		}
	case ActionFailed:
		s.Failed = append(s.Failed, Failure{Path: o.Path, Code: errors.GetCode(o.Err), Err: o.Err})
		s.Skipped++
	case ActionSkipped:
		s.Skipped++
	}
}
