// Package sink writes finished documents to disk.
//
// [PDFCanvas] is the compose.Canvas used for real output. Placement
// rectangles arrive with a bottom-left origin, the usual PDF convention; the
// underlying writer measures from the top-left, so every coordinate is
// flipped on the way in.
package sink

import (
	"bytes"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/matzehuels/cardsheet/pkg/buildinfo"
	"github.com/matzehuels/cardsheet/pkg/cardimage"
	"github.com/matzehuels/cardsheet/pkg/errors"
	"github.com/matzehuels/cardsheet/pkg/layout"
)

// PDFCanvas draws pages of one fixed size into an in-memory PDF.
type PDFCanvas struct {
	pdf    *gofpdf.Fpdf
	page   layout.Page
	images map[string]string // image key -> registered name
}

// NewPDFCanvas creates an empty document whose pages measure page (points).
func NewPDFCanvas(page layout.Page, title string) *PDFCanvas {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: page.Width, Ht: page.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(true)
	pdf.SetCreator("cardsheet "+buildinfo.Version, true)
	if title != "" {
		pdf.SetTitle(title, true)
	}
	pdf.SetDrawColor(0, 0, 0)

	return &PDFCanvas{
		pdf:    pdf,
		page:   page,
		images: make(map[string]string),
	}
}

// AddPage starts a new page.
func (c *PDFCanvas) AddPage() error {
	c.pdf.AddPage()
	return c.err()
}

// DrawImage places img into r. Each distinct image is embedded once no
// matter how many times it is drawn.
func (c *PDFCanvas) DrawImage(img *cardimage.Image, r layout.Rect) error {
	name, ok := c.images[img.Key]
	if !ok {
		name = "img" + img.Key
		c.pdf.RegisterImageOptionsReader(name, c.imageOptions(img), bytes.NewReader(img.Data))
		if err := c.err(); err != nil {
			return errors.Wrap(errors.ErrCodeImageDecode, err, "cannot embed image %s", img.Path)
		}
		c.images[img.Key] = name
	}

	tl := layout.FlipY(r, c.page.Height)
	c.pdf.ImageOptions(name, tl.X, tl.Y, tl.Width, tl.Height, false, c.imageOptions(img), 0, "")
	return c.err()
}

func (c *PDFCanvas) imageOptions(img *cardimage.Image) gofpdf.ImageOptions {
	return gofpdf.ImageOptions{ImageType: string(img.Format)}
}

// SetLineWidth sets the stroke width for subsequent lines.
func (c *PDFCanvas) SetLineWidth(w float64) { c.pdf.SetLineWidth(w) }

// Line strokes a line between two bottom-left based points.
func (c *PDFCanvas) Line(x1, y1, x2, y2 float64) {
	c.pdf.Line(x1, c.page.Height-y1, x2, c.page.Height-y2)
}

// Pages returns the number of pages added so far.
func (c *PDFCanvas) Pages() int { return c.pdf.PageCount() }

// Images returns the number of distinct embedded images.
func (c *PDFCanvas) Images() int { return len(c.images) }

// Output serialises the document to w. The canvas must not be used
// afterwards.
func (c *PDFCanvas) Output(w io.Writer) error {
	if err := c.err(); err != nil {
		return err
	}
	if err := c.pdf.Output(w); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write pdf")
	}
	return nil
}

func (c *PDFCanvas) err() error {
	if c.pdf.Ok() {
		return nil
	}
	return c.pdf.Error()
}
