// Package pkg provides the core libraries for pixelup, an offline pixel-art
// asset upgrader.
//
// # Overview
//
// pixelup takes finished pixel-art PNGs and runs them through a fixed,
// deterministic sequence of image passes, keeping every original next to
// its upgrade:
//
//	registry tags + directory scan
//	         ↓
//	    [target] (discover, classify, deduplicate)
//	         ↓
//	    [preserve] (rename original to original_<name>, once)
//	         ↓
//	    [pixel] (decode preserved original to RGBA)
//	         ↓
//	    [transform] (cleanup → quantize → contrast → outline)
//	         ↓
//	    [pixel] (encode, overwrite original path)
//
// [pipeline] drives the flow above for a whole batch and aggregates a
// summary. [cache] optionally stores upgraded bytes keyed by the original's
// content hash and parameters, so unchanged art is not reprocessed.
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	summary, err := runner.Run(ctx, pipeline.Options{
//	    Root: ".",
//	    Tag:  "player",
//	    Dirs: []string{"assets/icons"},
//	})
//
// Transform a single image:
//
//	b, _ := pixel.Load("hero.png")
//	out := transform.Apply(b, transform.DefaultTuning().For(asset.Sheet))
//	_ = pixel.Save("hero.png", out)
//
// # Main Packages
//
// [pixel] - RGBA pixel buffer and PNG codec.
//
// [transform] - The four stages and the per-kind parameter table
// ([transform.Tuning], loadable from TOML).
//
// [asset] - Asset kinds: icon, sheet, image.
//
// [target] - Registry loading, directory scanning and ordered kind rules.
//
// [preserve] - Idempotent preservation of originals.
//
// [pipeline] - Batch orchestration with dry-run and parallel workers.
//
// [cache] - Output cache backends (null, file, Redis).
//
// [errors] - Coded errors shared by every package.
//
// [observability] - Hooks for stage timing, per-target results and cache
// events.
//
// [pixel]: https://pkg.go.dev/github.com/matzehuels/pixelup/pkg/pixel
// [transform]: https://pkg.go.dev/github.com/matzehuels/pixelup/pkg/transform
// [asset]: https://pkg.go.dev/github.com/matzehuels/pixelup/pkg/asset
// [target]: https://pkg.go.dev/github.com/matzehuels/pixelup/pkg/target
// [preserve]: https://pkg.go.dev/github.com/matzehuels/pixelup/pkg/preserve
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/pixelup/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/pixelup/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/pixelup/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/pixelup/pkg/observability
package pkg
