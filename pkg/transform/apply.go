package transform

import (
	"time"

	"github.com/matzehuels/pixelup/pkg/pixel"
)

// Version identifies the stage algorithms. It changes whenever a stage
// would produce different pixels for the same input, and is part of
// output cache keys.
const Version = "1"

// Stage names, in execution order.
const (
	StageCleanup  = "cleanup"
	StageQuantize = "quantize"
	StageContrast = "contrast"
	StageOutline  = "outline"
)

// Stage is one step of the upgrade pipeline.
type Stage struct {
	Name string
	Run  func(*pixel.Buffer, Params) *pixel.Buffer
}

var stages = []Stage{
	{StageCleanup, func(b *pixel.Buffer, p Params) *pixel.Buffer { return Cleanup(b, p.AlphaThreshold) }},
	{StageQuantize, func(b *pixel.Buffer, p Params) *pixel.Buffer { return Quantize(b, p.MaxColors) }},
	{StageContrast, func(b *pixel.Buffer, p Params) *pixel.Buffer { return Contrast(b, p.ContrastStrength) }},
	{StageOutline, func(b *pixel.Buffer, p Params) *pixel.Buffer { return Outline(b, p.OutlineAmount) }},
}

// Stages returns the fixed stage sequence.
func Stages() []Stage {
	out := make([]Stage, len(stages))
	copy(out, stages)
	return out
}

// Observer is told how long each stage took.
type Observer func(stage string, d time.Duration)

// Apply runs every stage over src in order and returns the final buffer.
// src is not modified.
func Apply(src *pixel.Buffer, p Params) *pixel.Buffer {
	return ApplyObserved(src, p, nil)
}

// ApplyObserved is Apply with a per-stage timing callback. obs may be nil.
func ApplyObserved(src *pixel.Buffer, p Params, obs Observer) *pixel.Buffer {
	cur := src
	for _, s := range stages {
		start := time.Now()
		next := s.Run(cur, p)
		pixel.MustMatch(cur, next)
		if obs != nil {
			obs(s.Name, time.Since(start))
		}
		cur = next
	}
	return cur
}
