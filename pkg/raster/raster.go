// Package raster shrinks PDFs by re-rendering every page as a JPEG.
//
// Each page is rendered at a fixed resolution, optionally converted to
// greyscale, encoded as a JPEG and placed full-bleed on a page of the
// original size. Text and vector content become pixels; in exchange, scanned
// documents and image-heavy exports get much smaller.
package raster

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gen2brain/go-fitz"
	"github.com/jung-kurt/gofpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/matzehuels/cardsheet/pkg/buildinfo"
	"github.com/matzehuels/cardsheet/pkg/errors"
	"github.com/matzehuels/cardsheet/pkg/observability"
	"github.com/matzehuels/cardsheet/pkg/sink"
)

const (
	DefaultDPI     = 300
	DefaultQuality = 85

	MinDPI = 36
	MaxDPI = 1200
)

// Options controls rasterisation.
type Options struct {
	DPI       int  // render resolution
	Quality   int  // JPEG quality, 1-100
	Grayscale bool // convert pages to grey before encoding
	Optimize  bool // run a structural optimisation pass on the result
	Logger    *log.Logger
}

// DefaultOptions returns 300 DPI colour output at quality 85.
func DefaultOptions() Options {
	return Options{DPI: DefaultDPI, Quality: DefaultQuality}
}

// Validate checks the option ranges.
func (o Options) Validate() error {
	if o.DPI < MinDPI || o.DPI > MaxDPI {
		return errors.New(errors.ErrCodeInvalidInput, "dpi must be between %d and %d, got %d", MinDPI, MaxDPI, o.DPI)
	}
	if o.Quality < 1 || o.Quality > 100 {
		return errors.New(errors.ErrCodeInvalidInput, "quality must be between 1 and 100, got %d", o.Quality)
	}
	return nil
}

// Result describes a finished compression.
type Result struct {
	Output      string
	Pages       int
	InputBytes  int64
	OutputBytes int64
	Duration    time.Duration
}

// Ratio returns output size as a fraction of input size.
func (r Result) Ratio() float64 {
	if r.InputBytes == 0 {
		return 0
	}
	return float64(r.OutputBytes) / float64(r.InputBytes)
}

// Compress rasterises the PDF at in and writes the result to out. out may
// equal in; the input is replaced only after the new document is complete.
func Compress(ctx context.Context, in, out string, opts Options) (result *Result, err error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := errors.ValidateInputFile(in); err != nil {
		return nil, err
	}
	if err := errors.ValidateOutputPath(out); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	if mt, err := mimetype.DetectFile(in); err != nil || !mt.Is("application/pdf") {
		return nil, errors.New(errors.ErrCodeInvalidPDF, "%s is not a PDF document", in)
	}
	dims, err := api.PageDimsFile(in)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPDF, err, "cannot read page sizes of %s", in)
	}
	if len(dims) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidPDF, "%s has no pages", in)
	}

	start := time.Now()
	hooks := observability.Raster()
	hooks.OnRasterStart(ctx, in, len(dims))
	defer func() {
		var inBytes, outBytes int64
		if result != nil {
			inBytes, outBytes = result.InputBytes, result.OutputBytes
		}
		hooks.OnRasterComplete(ctx, in, inBytes, outBytes, time.Since(start), err)
	}()

	doc, err := fitz.New(in)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPDF, err, "cannot open %s", in)
	}
	defer doc.Close()

	n := doc.NumPage()
	if n != len(dims) {
		return nil, errors.New(errors.ErrCodeInvalidPDF, "%s: renderer sees %d pages, parser %d", in, n, len(dims))
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: "pt", Size: gofpdf.SizeType{Wd: dims[0].Width, Ht: dims[0].Height}})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("cardsheet "+buildinfo.Version, true)

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		jpg, bounds, err := renderPage(doc, i, opts)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPDF, err, "render page %d of %s", i+1, in)
		}

		size := pageSize(dims[i], bounds)
		name := fmt.Sprintf("page%d", i+1)
		imgOpts := gofpdf.ImageOptions{ImageType: "JPG"}

		pdf.AddPageFormat("P", size)
		pdf.RegisterImageOptionsReader(name, imgOpts, bytes.NewReader(jpg))
		pdf.ImageOptions(name, 0, 0, size.Wd, size.Ht, false, imgOpts, 0, "")
		if !pdf.Ok() {
			return nil, errors.Wrap(errors.ErrCodeInternal, pdf.Error(), "build page %d", i+1)
		}

		hooks.OnPageRasterized(ctx, i+1, n, len(jpg))
		logger.Debug("rasterized page", "page", i+1, "of", n, "width_px", bounds.Dx(), "height_px", bounds.Dy(), "jpeg_bytes", len(jpg))
	}

	if err := sink.WritePDF(out, pdf.Output, opts.Optimize); err != nil {
		return nil, fmt.Errorf("write %s: %w", out, err)
	}

	result = &Result{Output: out, Pages: n, Duration: time.Since(start)}
	if fi, err := os.Stat(in); err == nil {
		result.InputBytes = fi.Size()
	}
	if fi, err := os.Stat(out); err == nil {
		result.OutputBytes = fi.Size()
	}
	return result, nil
}

// renderPage renders page i and returns it JPEG-encoded.
func renderPage(doc *fitz.Document, i int, opts Options) ([]byte, image.Rectangle, error) {
	img, err := doc.ImageDPI(i, float64(opts.DPI))
	if err != nil {
		return nil, image.Rectangle{}, err
	}

	var src image.Image = img
	if opts.Grayscale {
		src = imaging.Grayscale(img)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, src, imaging.JPEG, imaging.JPEGQuality(opts.Quality)); err != nil {
		return nil, image.Rectangle{}, err
	}
	return buf.Bytes(), img.Bounds(), nil
}

// pageSize returns the output page size for a source page of dim points
// rendered to bounds. The renderer applies page rotation and the parser does
// not, so the dimensions are swapped when the orientations disagree.
func pageSize(dim types.Dim, bounds image.Rectangle) gofpdf.SizeType {
	w, h := dim.Width, dim.Height
	renderedLandscape := bounds.Dx() > bounds.Dy()
	if (w > h) != renderedLandscape && w != h {
		w, h = h, w
	}
	return gofpdf.SizeType{Wd: w, Ht: h}
}
