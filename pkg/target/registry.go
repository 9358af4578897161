package target

import (
	"bytes"
	"encoding/json"
	"os"
	"slices"
	"sort"

	"github.com/matzehuels/pixelup/pkg/errors"
)

// ErrRegistryNotFound matches a registry that was requested but is absent.
var ErrRegistryNotFound = errors.Sentinel(errors.ErrCodeRegistryNotFound)

// Entry describes one asset in the registry.
type Entry struct {
	ID   string   `json:"id"`
	Path string   `json:"path"`
	Type string   `json:"type"`
	Tags []string `json:"tags"`
}

// HasTag reports whether e carries tag (exact, case-sensitive).
func (e Entry) HasTag(tag string) bool {
	return slices.Contains(e.Tags, tag)
}

// Registry is the asset registry produced by the data importer.
//
// The "assets" member may be a list of entries or an object keyed by asset
// id. Object entries are ordered by id.
type Registry struct {
	Assets []Entry
}

type registryDoc struct {
	Assets json.RawMessage `json:"assets"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Registry) UnmarshalJSON(data []byte) error {
	var doc registryDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	r.Assets = nil

	raw := bytes.TrimSpace(doc.Assets)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	if raw[0] == '[' {
		return json.Unmarshal(raw, &r.Assets)
	}

	var byID map[string]Entry
	if err := json.Unmarshal(raw, &byID); err != nil {
		return err
	}
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		e := byID[id]
		if e.ID == "" {
			e.ID = id
		}
		r.Assets = append(r.Assets, e)
	}
	return nil
}

// LoadRegistry reads the registry at path.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeRegistryNotFound, "registry not found: %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read registry %s", path)
	}
	return ParseRegistry(data)
}

// ParseRegistry decodes a registry document.
func ParseRegistry(data []byte) (*Registry, error) {
	var r Registry
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRegistry, err, "parse registry")
	}
	return &r, nil
}

// Tagged returns the entries carrying tag, in registry order.
func (r *Registry) Tagged(tag string) []Entry {
	var out []Entry
	for _, e := range r.Assets {
		if e.HasTag(tag) {
			out = append(out, e)
		}
	}
	return out
}
