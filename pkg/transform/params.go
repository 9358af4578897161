package transform

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pixelup/pkg/asset"
	"github.com/matzehuels/pixelup/pkg/errors"
)

// Params holds the policy values for one asset kind.
type Params struct {
	// MaxColors is the opaque palette budget for Quantize.
	MaxColors int `toml:"max_colors"`
	// ContrastStrength widens tones around the midpoint in Contrast.
	ContrastStrength float64 `toml:"contrast_strength"`
	// OutlineAmount is the blend factor toward the darkest color in Outline.
	OutlineAmount float64 `toml:"outline_amount"`
	// AlphaThreshold is the opacity cut-off for Cleanup. It is a run-wide
	// setting and is not read from tuning files.
	AlphaThreshold uint8 `toml:"-"`
}

// Validate checks that p is usable by the stages.
func (p Params) Validate() error {
	if p.MaxColors < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "max_colors must be at least 1 (got %d)", p.MaxColors)
	}
	if p.ContrastStrength < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "contrast_strength must not be negative (got %g)", p.ContrastStrength)
	}
	if p.OutlineAmount < 0 || p.OutlineAmount > 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "outline_amount must be within [0, 1] (got %g)", p.OutlineAmount)
	}
	return nil
}

// Tuning is the per-kind parameter table.
type Tuning struct {
	Icon  Params `toml:"icon"`
	Sheet Params `toml:"sheet"`
	Image Params `toml:"image"`
}

// DefaultTuning returns the built-in parameter table.
func DefaultTuning() Tuning {
	return Tuning{
		Icon:  Params{MaxColors: 20, ContrastStrength: 0.12, OutlineAmount: 0.40, AlphaThreshold: DefaultAlphaThreshold},
		Sheet: Params{MaxColors: 64, ContrastStrength: 0.10, OutlineAmount: 0.30, AlphaThreshold: DefaultAlphaThreshold},
		Image: Params{MaxColors: 48, ContrastStrength: 0.10, OutlineAmount: 0.30, AlphaThreshold: DefaultAlphaThreshold},
	}
}

// For returns the parameters for kind k.
func (t Tuning) For(k asset.Kind) Params {
	switch k {
	case asset.Icon:
		return t.Icon
	case asset.Sheet:
		return t.Sheet
	default:
		return t.Image
	}
}

// WithAlphaThreshold returns a copy of t with the cleanup threshold set
// for every kind.
func (t Tuning) WithAlphaThreshold(threshold uint8) Tuning {
	t.Icon.AlphaThreshold = threshold
	t.Sheet.AlphaThreshold = threshold
	t.Image.AlphaThreshold = threshold
	return t
}

// Validate checks every kind's parameters.
func (t Tuning) Validate() error {
	for _, k := range asset.Kinds {
		if err := t.For(k).Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", k)
		}
	}
	return nil
}

// LoadTuning reads a TOML tuning file and overlays it on DefaultTuning.
// Keys missing from the file keep their defaults; unknown keys are an error.
//
//	[icon]
//	max_colors = 16
//
//	[sheet]
//	outline_amount = 0.25
func LoadTuning(path string) (Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read tuning file %s", path)
	}
	return ParseTuning(string(data))
}

// ParseTuning is LoadTuning over in-memory TOML.
func ParseTuning(data string) (Tuning, error) {
	t := DefaultTuning()
	md, err := toml.Decode(data, &t)
	if err != nil {
		return Tuning{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse tuning")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Tuning{}, errors.New(errors.ErrCodeInvalidConfig, "unknown tuning keys: %s", strings.Join(keys, ", "))
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

// WriteTOML writes t in the tuning file format.
func (t Tuning) WriteTOML(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(t); err != nil {
		return fmt.Errorf("encode tuning: %w", err)
	}
	return nil
}
