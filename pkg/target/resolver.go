package target

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/pixelup/pkg/asset"
	"github.com/matzehuels/pixelup/pkg/errors"
)

// Source records where a target was discovered.
type Source string

const (
	SourceRegistry Source = "registry"
	SourceScan     Source = "scan"
)

// Target is one asset to upgrade.
type Target struct {
	// Path is relative to the project root, slash-separated and cleaned.
	Path   string
	Kind   asset.Kind
	Source Source
}

// Options selects targets.
type Options struct {
	// Root is the project root all paths are relative to.
	Root string
	// RegistryPath is the registry document, relative to Root unless absolute.
	RegistryPath string
	// Tag selects registry entries. Empty disables registry selection.
	Tag string
	// Dirs are asset directories, relative to Root, scanned recursively.
	Dirs []string
	// Prefix marks preserved originals, which scans skip.
	Prefix string
}

// Rejection is a registry entry that could not become a target.
type Rejection struct {
	ID     string
	Path   string
	Reason string
}

// Unreadable is a directory below a scan root that could not be read.
// Nothing under it becomes a target.
type Unreadable struct {
	Path   string
	Reason string
}

// Resolution is the outcome of Resolve.
type Resolution struct {
	Targets    []Target
	Rejected   []Rejection
	Unreadable []Unreadable
}

// NormalizePath returns the deduplication key for p.
func NormalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(filepath.FromSlash(p)))
}

// Resolve discovers targets from the registry (when opts.Tag is set) and
// from opts.Dirs, deduplicated by normalized path.
//
// A missing registry fails with ErrRegistryNotFound before anything else
// is read. Scan directories that do not exist are skipped, and so are
// subdirectories that cannot be read; those are listed in Unreadable. Only a
// scan directory that exists but cannot be read itself is an error.
func Resolve(opts Options) (*Resolution, error) {
	res := &Resolution{}
	seen := make(map[string]struct{})
	add := func(t Target) {
		if _, dup := seen[t.Path]; dup {
			return
		}
		seen[t.Path] = struct{}{}
		res.Targets = append(res.Targets, t)
	}

	if opts.Tag != "" {
		regPath := opts.RegistryPath
		if !filepath.IsAbs(regPath) {
			regPath = filepath.Join(opts.Root, regPath)
		}
		reg, err := LoadRegistry(regPath)
		if err != nil {
			return nil, err
		}
		for _, e := range reg.Tagged(opts.Tag) {
			if err := errors.ValidateAssetPath(e.Path); err != nil {
				res.Rejected = append(res.Rejected, Rejection{ID: e.ID, Path: e.Path, Reason: errors.UserMessage(err)})
				continue
			}
			p := NormalizePath(e.Path)
			add(Target{Path: p, Kind: KindForType(e.Type, p), Source: SourceRegistry})
		}
	}

	for _, dir := range opts.Dirs {
		found, unreadable, err := scanDir(opts.Root, dir, opts.Prefix)
		if err != nil {
			return nil, err
		}
		res.Unreadable = append(res.Unreadable, unreadable...)
		for _, t := range found {
			add(t)
		}
	}

	return res, nil
}

// scanDir walks root/dir for .png files in lexical order.
func scanDir(root, dir, prefix string) ([]Target, []Unreadable, error) {
	abs := filepath.Join(root, filepath.FromSlash(dir))
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return nil, nil, nil
	}

	var out []Target
	var skipped []Unreadable
	err = filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == abs {
				return err
			}
			rel, _ := filepath.Rel(root, p)
			skipped = append(skipped, Unreadable{Path: NormalizePath(rel), Reason: err.Error()})
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if !strings.EqualFold(filepath.Ext(name), ".png") {
			return nil
		}
		if prefix != "" && strings.HasPrefix(name, prefix) {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = NormalizePath(rel)
		out = append(out, Target{Path: rel, Kind: InferKind(rel), Source: SourceScan})
		return nil
	})
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeIO, err, "scan %s", dir)
	}
	return out, skipped, nil
}
