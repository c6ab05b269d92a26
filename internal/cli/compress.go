package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cardsheet/pkg/raster"
)

// compressCommand creates the compress command that rasterises a PDF.
func (c *CLI) compressCommand() *cobra.Command {
	opts := raster.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "compress INPUT OUTPUT",
		Short: "Shrink a PDF by rasterising every page to JPEG",
		Long: `Shrink a PDF by rasterising every page to JPEG.

Each page is rendered at --dpi, optionally converted to greyscale, encoded as
JPEG at --quality and placed full-page on a page of the same size. Text and
vector content become pixels, so only use this on finished print files.`,
		Example: `  cardsheet compress cards_a4_duplex.pdf small.pdf
  cardsheet compress deck.pdf deck_gray.pdf --dpi 150 --quality 70 --gray`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCompress(cmd.Context(), args[0], args[1], opts)
		},
	}

	cmd.Flags().IntVar(&opts.DPI, "dpi", opts.DPI, fmt.Sprintf("render resolution (%d-%d)", raster.MinDPI, raster.MaxDPI))
	cmd.Flags().IntVar(&opts.Quality, "quality", opts.Quality, "JPEG quality (1-100)")
	cmd.Flags().BoolVar(&opts.Grayscale, "gray", false, "convert pages to greyscale")
	cmd.Flags().BoolVar(&opts.Optimize, "optimize", false, "optimise the written PDF")

	return cmd
}

// runCompress rasterises in into out and prints the size change.
func (c *CLI) runCompress(ctx context.Context, in, out string, opts raster.Options) error {
	opts.Logger = loggerFromContext(ctx)

	runner, err := c.newRunner(true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}

	spinner := newSpinnerWithContext(ctx, "Opening "+in+"...")
	restore := (&rasterSpinnerHooks{spinner: spinner}).install()
	defer restore()
	spinner.Start()

	res, err := runner.Compress(ctx, in, out, opts)
	if err != nil {
		spinner.StopWithError("Compression failed")
		return err
	}
	spinner.Stop()

	printSuccess("Compression complete")
	printFile(res.Output)
	printStats(
		fmt.Sprintf("%d pages", res.Pages),
		fmt.Sprintf("%s → %s", formatBytes(res.InputBytes), formatBytes(res.OutputBytes)),
		fmt.Sprintf("%.0f%% of original", 100*res.Ratio()),
	)
	return nil
}
