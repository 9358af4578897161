package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pixelup/pkg/errors"
	"github.com/matzehuels/pixelup/pkg/observability"
	"github.com/matzehuels/pixelup/pkg/pipeline"
	"github.com/matzehuels/pixelup/pkg/preserve"
	"github.com/matzehuels/pixelup/pkg/transform"
)

// runOpts holds the command-line flags shared by run and plan.
type runOpts struct {
	root           string   // project root (default: working directory)
	registry       string   // registry document, relative to root
	tag            string   // registry tag to upgrade
	dirs           []string // asset directories to scan (comma-separated, repeatable)
	prefix         string   // preserved-original prefix
	dryRun         bool     // plan only, touch nothing
	config         string   // TOML tuning file
	alphaThreshold uint8    // cleanup opacity cut-off
	workers        int      // targets processed concurrently
	cache          string   // none, file, or a redis:// URL
	namespace      string   // cache key prefix
}

func defaultRunOpts() runOpts {
	return runOpts{
		registry:       pipeline.DefaultRegistryPath,
		prefix:         preserve.DefaultPrefix,
		alphaThreshold: transform.DefaultAlphaThreshold,
		workers:        pipeline.DefaultWorkers,
		cache:          "none",
	}
}

// runCommand creates the run command.
func (c *CLI) runCommand() *cobra.Command {
	opts := defaultRunOpts()

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Preserve and upgrade pixel-art assets",
		Long: `Run selects assets by registry tag and/or directory scan, moves each
original to <prefix><name> (once), and writes the upgraded image back to the
original path.

Examples:
  pixelup run --tag player
  pixelup run --dirs assets/icons,assets/props --workers 4
  pixelup run --tag vfx --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runUpgrade(cmd.Context(), opts)
		},
	}

	addRunFlags(cmd, &opts)
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "list actions without writing")
	return cmd
}

// addRunFlags registers the flags shared by run and plan.
func addRunFlags(cmd *cobra.Command, opts *runOpts) {
	cmd.Flags().StringVar(&opts.root, "root", "", "project root (default: current directory)")
	cmd.Flags().StringVar(&opts.registry, "registry", opts.registry, "registry document, relative to root")
	cmd.Flags().StringVar(&opts.tag, "tag", "", "registry tag to upgrade (e.g. player, enemy, vfx)")
	cmd.Flags().StringSliceVar(&opts.dirs, "dirs", nil, "asset directories to scan (comma-separated)")
	cmd.Flags().StringVar(&opts.prefix, "prefix", opts.prefix, "prefix for preserved originals")
	addTuningFlags(cmd, &opts.config, &opts.alphaThreshold)
	cmd.Flags().IntVarP(&opts.workers, "workers", "j", opts.workers, "targets processed concurrently")
	cmd.Flags().StringVar(&opts.cache, "cache", opts.cache, "output cache: none, file, or a redis:// URL")
	cmd.Flags().StringVar(&opts.namespace, "cache-namespace", "", "prefix for cache keys when projects share a cache")
}

// addTuningFlags registers the flags that shape the parameter table.
func addTuningFlags(cmd *cobra.Command, config *string, alpha *uint8) {
	cmd.Flags().StringVar(config, "config", "", "TOML tuning file overlaying the built-in parameters")
	cmd.Flags().Uint8Var(alpha, "alpha-threshold", *alpha, "alpha at or below which a pixel counts as transparent")
}

// loadTuning returns the effective parameter table.
func loadTuning(config string, alpha uint8) (transform.Tuning, error) {
	t := transform.DefaultTuning()
	if config != "" {
		var err error
		if t, err = transform.LoadTuning(config); err != nil {
			return transform.Tuning{}, err
		}
	}
	return t.WithAlphaThreshold(alpha), nil
}

// pipelineOptions converts flags to pipeline options.
func (o runOpts) pipelineOptions() (pipeline.Options, error) {
	tuning, err := loadTuning(o.config, o.alphaThreshold)
	if err != nil {
		return pipeline.Options{}, err
	}
	root := o.root
	if root == "" {
		if root, err = os.Getwd(); err != nil {
			return pipeline.Options{}, errors.Wrap(errors.ErrCodeIO, err, "get working directory")
		}
	}
	return pipeline.Options{
		Root:         root,
		RegistryPath: o.registry,
		Tag:          o.tag,
		Dirs:         splitDirs(o.dirs),
		Prefix:       o.prefix,
		DryRun:       o.dryRun,
		Tuning:       tuning,
		Workers:      o.workers,
	}, nil
}

// runUpgrade executes a run and prints its action log and summary.
func (c *CLI) runUpgrade(ctx context.Context, opts runOpts) error {
	popts, err := opts.pipelineOptions()
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.cache, opts.namespace)
	if err != nil {
		return err
	}
	defer runner.Close()

	var spin *spinner
	if !c.verbose() {
		spin = newSpinner(ctx, os.Stderr, "Resolving targets")
		observability.SetUpgradeHooks(&spinnerHooks{spin: spin})
		defer observability.Reset()
		spin.Start()
	}

	summary, err := runner.Run(ctx, popts)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	printSummary(summary)
	if popts.DryRun && summary.Planned > 0 {
		printNextStep("Apply with", "pixelup run"+flagEcho(opts))
	}
	return nil
}

// flagEcho rebuilds the selection flags for the "apply" hint.
func flagEcho(o runOpts) string {
	s := ""
	if o.tag != "" {
		s += " --tag " + o.tag
	}
	if dirs := splitDirs(o.dirs); len(dirs) > 0 {
		s += " --dirs " + strings.Join(dirs, ",")
	}
	return s
}

// spinnerHooks reports run progress on a spinner.
type spinnerHooks struct {
	observability.NoopUpgradeHooks
	spin  *spinner
	total atomic.Int64
	done  atomic.Int64
}

func (h *spinnerHooks) OnRunStart(_ context.Context, _ string, targets int, dryRun bool) {
	h.total.Store(int64(targets))
	verb := "Upgrading"
	if dryRun {
		verb = "Planning"
	}
	h.spin.SetMessage(fmt.Sprintf("%s 0/%d", verb, targets))
}

func (h *spinnerHooks) OnTargetComplete(_ context.Context, path, _ string, _ time.Duration, _ error) {
	n := h.done.Add(1)
	h.spin.SetMessage(fmt.Sprintf("%d/%d %s", n, h.total.Load(), path))
}
