// Package pkg provides the libraries behind the cardsheet card printing tool.
//
// # Overview
//
// Cardsheet places card artwork on printable PDF pages for double-sided
// printing. Fronts and backs live in two directories; each front is paired
// with a back, the pairs are laid out on a fixed grid, and every sheet of
// cards becomes a front page followed by a back page whose slots line up
// behind the fronts when printed long-edge duplex.
//
// # Architecture
//
// The data flow of a sheet run:
//
//	fronts/  backs/
//	     ↓
//	[imageset] list, natural sort and pair
//	     ↓
//	[layout] grid slots in PDF points
//	     ↓
//	[compose] batches → front page, back page
//	     ↓
//	[sink] PDF canvas, atomic write, optimise
//
// [pipeline] runs the flow in two phases. The plan phase checks directories,
// pairing, layout fit and every image header before any output is opened; the
// render phase draws the pages into memory and writes the file atomically.
//
// # Main Packages
//
// [units] - Millimetre to point conversion and named paper sizes.
//
// [imageset] - Image discovery, natural ordering ("card2" before "card10")
// and front/back pairing by name or by position.
//
// [layout] - The grid engine. [layout.ComputeSlots] centres a block of
// columns × rows cards inside the page margins and reports an overflow with
// the needed and usable extents.
//
// [cardimage] - Content sniffing, header probes and PNG normalisation with a
// content-addressed [cache].
//
// [compose] - Aspect-preserving fit, cut mark geometry and page ordering on
// an abstract canvas.
//
// [sink] - The gofpdf canvas, atomic file writes and pdfcpu optimisation.
//
// [raster] - PDF compression by rendering every page to JPEG.
//
// [config] - Defaults and TOML configuration files.
//
// [observability] - Progress hooks for the CLI.
//
// # Quick Start
//
//	cfg := config.Default()
//	cfg.Fronts, cfg.Backs = "art/fronts", "art/backs"
//	cfg.CutMarks.Enabled = true
//
//	opts, _ := pipeline.FromConfig(cfg)
//	result, err := pipeline.NewRunner(nil, nil).Sheet(ctx, opts)
//
// # Testing
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/layout/...     # Specific package
//	go test -run Example ./pkg/... # Examples only
//
// [units]: https://pkg.go.dev/github.com/matzehuels/cardsheet/pkg/units
// [imageset]: https://pkg.go.dev/github.com/matzehuels/cardsheet/pkg/imageset
// [layout]: https://pkg.go.dev/github.com/matzehuels/cardsheet/pkg/layout
// [layout.ComputeSlots]: https://pkg.go.dev/github.com/matzehuels/cardsheet/pkg/layout#ComputeSlots
// [cardimage]: https://pkg.go.dev/github.com/matzehuels/cardsheet/pkg/cardimage
// [cache]: https://pkg.go.dev/github.com/matzehuels/cardsheet/pkg/cache
// [compose]: https://pkg.go.dev/github.com/matzehuels/cardsheet/pkg/compose
// [sink]: https://pkg.go.dev/github.com/matzehuels/cardsheet/pkg/sink
// [raster]: https://pkg.go.dev/github.com/matzehuels/cardsheet/pkg/raster
// [config]: https://pkg.go.dev/github.com/matzehuels/cardsheet/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/cardsheet/pkg/observability
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/cardsheet/pkg/pipeline
package pkg
