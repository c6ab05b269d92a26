package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cardsheet/pkg/config"
	"github.com/matzehuels/cardsheet/pkg/errors"
	"github.com/matzehuels/cardsheet/pkg/pipeline"
)

// sheetCommand creates the sheet command that builds the duplex PDF.
func (c *CLI) sheetCommand() *cobra.Command {
	var (
		noCache  bool
		planOnly bool
	)
	flags := newConfigFlags()

	cmd := &cobra.Command{
		Use:   "sheet",
		Short: "Lay out front and back images on a duplex PDF",
		Long: `Lay out front and back images on a duplex PDF.

Images in --fronts and --backs are sorted in natural order ("card2" before
"card10") and paired by identical file name stem, or by position with
--match by-order. Each sheet of cards becomes a front page followed by a back
page with every back in the same slot as its front.

All inputs are checked before anything is written: missing directories,
unmatched names, a grid that does not fit the paper and unreadable images are
reported without touching the output file.

Settings are taken from the built-in defaults, then the --config TOML file,
then any flag given on the command line.`,
		Example: `  cardsheet sheet --fronts art/fronts --backs art/backs
  cardsheet sheet --config deck.toml --cut-marks -o deck.pdf
  cardsheet sheet --fronts f --backs b --match by-order --plan`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			return c.runSheet(cmd.Context(), cfg, noCache, planOnly)
		},
	}

	flags.registerSheet(cmd.Flags())
	flags.registerGeometry(cmd.Flags())
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the prepared image cache")
	cmd.Flags().BoolVar(&planOnly, "plan", false, "only check the inputs and print the plan")

	return cmd
}

// runSheet validates cfg and renders the sheet, or only plans it.
func (c *CLI) runSheet(ctx context.Context, cfg *config.Config, noCache, planOnly bool) error {
	logger := loggerFromContext(ctx)

	if cfg.Fronts == "" || cfg.Backs == "" {
		return errors.New(errors.ErrCodeInvalidInput, "both --fronts and --backs are required (or set them in --config)")
	}
	opts, err := pipeline.FromConfig(cfg)
	if err != nil {
		return err
	}
	opts.Logger = logger

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Loader.Cache.Close()

	if planOnly {
		return c.runPlan(ctx, runner, opts)
	}

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, "Checking images...")
	hooks := newSpinnerHooks(spinner)
	restore := hooks.install()
	defer restore()
	spinner.Start()

	result, err := runner.Sheet(ctx, opts)
	if err != nil {
		spinner.StopWithError("Sheet failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Wrote %d pages", result.Pages))

	printSuccess("Sheet complete")
	printFile(result.Output)
	printStats(
		fmt.Sprintf("%d cards", result.Cards),
		fmt.Sprintf("%d pages", result.Pages),
		fmt.Sprintf("%d images", result.Images),
		formatBytes(result.Bytes),
		cacheStatus(hooks.hits.Load(), hooks.misses.Load()),
	)
	printDetail("Print double-sided, flipping on the long edge")
	printNewline()
	printNextStep("Shrink", "cardsheet compress "+result.Output+" "+compressedName(result.Output))
	return nil
}

// runPlan prints what a sheet run would produce without writing it.
func (c *CLI) runPlan(ctx context.Context, runner *pipeline.Runner, opts pipeline.SheetOptions) error {
	plan, err := runner.Plan(ctx, opts)
	if err != nil {
		return err
	}

	printSuccess("Inputs look good")
	printKeyValue("Cards", fmt.Sprintf("%d", len(plan.Pairs)))
	printKeyValue("Per page", fmt.Sprintf("%d (%d×%d)", len(plan.Slots), opts.Grid.Columns, opts.Grid.Rows))
	printKeyValue("Sheets", fmt.Sprintf("%d", plan.Batches))
	printKeyValue("Pages", fmt.Sprintf("%d", plan.Pages))
	printKeyValue("Images", fmt.Sprintf("%d", plan.Images))
	printKeyValue("Output", opts.Output)
	printNewline()
	for i, p := range plan.Pairs {
		printDetail("%3d  %s", i+1, p)
	}
	return nil
}

// cacheStatus describes how many prepared images came from the cache.
func cacheStatus(hits, misses int64) string {
	switch {
	case hits == 0 && misses == 0:
		return ""
	case misses == 0:
		return iconCached
	default:
		return fmt.Sprintf("%d/%d %s", hits, hits+misses, iconCached)
	}
}

// compressedName suggests an output name for compress: deck.pdf -> deck_small.pdf.
func compressedName(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_small" + ext
}

// formatBytes renders n as a human-readable size.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
