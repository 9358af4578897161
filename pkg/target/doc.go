// Package target discovers which PNG assets a run should upgrade.
//
// Targets come from two additive sources:
//
//   - a registry document, filtered by tag ([LoadRegistry], [Registry.Tagged])
//   - recursive scans of asset directories for .png files
//
// [Resolve] unions both sources and deduplicates them by normalized path;
// the first occurrence wins, registry entries first. Each target carries an
// [asset.Kind], taken from the registry's type field when it names one and
// otherwise inferred from the path by the ordered [Rules].
//
// Files whose name starts with the preservation prefix are untouched
// originals kept by earlier runs and are never picked up by a scan.
package target
