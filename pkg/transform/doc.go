// Package transform provides the conservative cleanup stages applied to
// pixel-art assets.
//
// # Overview
//
// Every stage is a pure function from an input [pixel.Buffer] to a new
// buffer of identical size. Inputs are never written: neighbour reads in
// [Cleanup] and [Outline] always observe the original pixels, so results
// do not depend on scan order.
//
// [Apply] runs the stages in their fixed order:
//
//  1. [Cleanup] replaces isolated 1px speckles with their only opaque
//     neighbour's color.
//  2. [Quantize] reduces the opaque palette with median cut, without
//     dithering, when it exceeds the kind's color budget.
//  3. [Contrast] stretches opaque pixels against a 5th..95th percentile
//     luminance window.
//  4. [Outline] pulls silhouette pixels toward the darkest existing color.
//
// Speckles are removed before colors are counted, and tone and edge
// adjustments run on the reduced palette.
//
// # Parameters
//
// [Params] carries the per-kind policy values. [DefaultTuning] holds the
// built-in table; [LoadTuning] overlays a TOML file on top of it.
package transform
