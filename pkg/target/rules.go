package target

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/matzehuels/pixelup/pkg/asset"
)

// Rule maps a path pattern to a kind.
type Rule struct {
	Name  string
	Kind  asset.Kind
	Match func(p, base string) bool
}

// sheetDirs are directory segments holding animated sprite sheets.
var sheetDirs = []string{"/players/", "/enemies/", "/bosses/", "/vfx/"}

// Rules is evaluated top to bottom; the first match decides the kind.
// Match receives the lower-cased, slash-separated path with a leading
// slash, and its lower-cased base name.
var Rules = []Rule{
	{
		Name:  "icons-dir",
		Kind:  asset.Icon,
		Match: func(p, _ string) bool { return strings.Contains(p, "/icons/") },
	},
	{
		Name:  "icon-name",
		Kind:  asset.Icon,
		Match: func(_, base string) bool { return strings.Contains(base, "icon") },
	},
	{
		Name: "sheet-dir",
		Kind: asset.Sheet,
		Match: func(p, _ string) bool {
			for _, seg := range sheetDirs {
				if strings.Contains(p, seg) {
					return true
				}
			}
			return false
		},
	},
}

// InferKind classifies p by the first matching rule, or asset.Image.
func InferKind(p string) asset.Kind {
	kind, _ := InferKindRule(p)
	return kind
}

// InferKindRule is InferKind that also returns the matching rule name
// ("" when no rule matched).
func InferKindRule(p string) (asset.Kind, string) {
	norm := "/" + strings.TrimPrefix(strings.ToLower(filepath.ToSlash(p)), "/")
	base := path.Base(norm)
	for _, r := range Rules {
		if r.Match(norm, base) {
			return r.Kind, r.Name
		}
	}
	return asset.Image, ""
}

// KindForType maps a registry type to a kind. Types that do not name a
// kind fall back to path inference.
func KindForType(typ, p string) asset.Kind {
	switch strings.ToLower(strings.TrimSpace(typ)) {
	case "spritesheet", "sheet":
		return asset.Sheet
	case "icon":
		return asset.Icon
	}
	return InferKind(p)
}
