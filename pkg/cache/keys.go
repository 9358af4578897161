package cache

// OutputKeyOpts are the inputs, besides the source bytes, that determine
// an upgraded image.
type OutputKeyOpts struct {
	Kind             string  `json:"kind"`
	MaxColors        int     `json:"max_colors"`
	ContrastStrength float64 `json:"contrast_strength"`
	OutlineAmount    float64 `json:"outline_amount"`
	AlphaThreshold   uint8   `json:"alpha_threshold"`
	// Version changes whenever the stage algorithms change.
	Version string `json:"version"`
}

// Keyer generates cache keys.
type Keyer interface {
	// OutputKey returns the key for the upgrade of a source with the given
	// content hash.
	OutputKey(sourceHash string, opts OutputKeyOpts) string
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// OutputKey implements Keyer.
func (DefaultKeyer) OutputKey(sourceHash string, opts OutputKeyOpts) string {
	return hashKey("output", sourceHash, opts)
}
