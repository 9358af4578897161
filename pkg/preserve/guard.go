// Package preserve keeps an untouched copy of every asset before it is
// rewritten.
//
// The copy lives next to the asset as <prefix><name>. It is created by a
// filesystem rename the first time an asset is upgraded and is never
// overwritten or deleted afterwards; its presence marks the asset as
// already processed, and later runs read from it instead of the asset.
package preserve

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/pixelup/pkg/errors"
)

// DefaultPrefix is the file name prefix of preserved originals.
const DefaultPrefix = "original_"

// ErrMissingAsset matches a target whose file does not exist.
var ErrMissingAsset = errors.Sentinel(errors.ErrCodeMissingAsset)

// Status describes what Preserve did, or what Plan expects it to do.
type Status int

const (
	// Preserved means the asset was renamed to its preserved name.
	Preserved Status = iota
	// Existing means a preserved original from an earlier run was found
	// and is the authoritative source.
	Existing
	// AlreadyPreserved means the target itself is a preserved original.
	// Nothing is done with it.
	AlreadyPreserved
)

func (s Status) String() string {
	switch s {
	case Preserved:
		return "preserved"
	case Existing:
		return "existing"
	case AlreadyPreserved:
		return "already-preserved"
	}
	return "unknown"
}

// Result reports the paths involved in preserving one target.
type Result struct {
	Status Status
	// Target is the absolute path that receives upgraded output.
	Target string
	// Original is the absolute path of the preserved original, which is
	// the pixel source for the upgrade.
	Original string
}

// Guard preserves assets under a project root.
type Guard struct {
	Root   string
	Prefix string
}

// New creates a guard. An empty prefix selects DefaultPrefix.
func New(root, prefix string) (*Guard, error) {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if err := errors.ValidatePrefix(prefix); err != nil {
		return nil, err
	}
	return &Guard{Root: root, Prefix: prefix}, nil
}

// PreservedName returns the preserved file name for name.
func (g *Guard) PreservedName(name string) string {
	return g.Prefix + name
}

// IsPreserved reports whether name is already a preserved original.
func (g *Guard) IsPreserved(name string) bool {
	return strings.HasPrefix(name, g.Prefix)
}

// Plan reports what Preserve would do for rel without touching the
// filesystem.
func (g *Guard) Plan(rel string) (Result, error) {
	target := g.abs(rel)
	if _, err := os.Stat(target); err != nil {
		if os.IsNotExist(err) {
			return Result{Target: target}, errors.New(errors.ErrCodeMissingAsset, "missing asset: %s", rel)
		}
		return Result{Target: target}, errors.Wrap(errors.ErrCodeIO, err, "stat %s", rel)
	}

	name := filepath.Base(target)
	if g.IsPreserved(name) {
		return Result{Status: AlreadyPreserved, Target: target, Original: target}, nil
	}

	original := filepath.Join(filepath.Dir(target), g.PreservedName(name))
	if _, err := os.Stat(original); err == nil {
		return Result{Status: Existing, Target: target, Original: original}, nil
	}
	return Result{Status: Preserved, Target: target, Original: original}, nil
}

// Preserve renames rel to its preserved name unless a preserved original
// already exists. Calling it again for the same target is a no-op that
// reports Existing.
func (g *Guard) Preserve(rel string) (Result, error) {
	res, err := g.Plan(rel)
	if err != nil || res.Status != Preserved {
		return res, err
	}
	if err := os.Rename(res.Target, res.Original); err != nil {
		return res, errors.Wrap(errors.ErrCodeIO, err, "preserve %s", rel)
	}
	return res, nil
}

func (g *Guard) abs(rel string) string {
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	return filepath.Join(g.Root, filepath.FromSlash(rel))
}
