package raster

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/matzehuels/cardsheet/pkg/errors"
	"github.com/matzehuels/cardsheet/pkg/sink"
)

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"defaults", DefaultOptions(), false},
		{"low dpi", Options{DPI: 10, Quality: 80}, true},
		{"high dpi", Options{DPI: 5000, Quality: 80}, true},
		{"zero quality", Options{DPI: 150, Quality: 0}, true},
		{"quality over 100", Options{DPI: 150, Quality: 101}, true},
		{"bounds", Options{DPI: MinDPI, Quality: 100}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Validate() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestPageSize(t *testing.T) {
	a4 := types.Dim{Width: 595, Height: 842}

	tests := []struct {
		name   string
		dim    types.Dim
		bounds image.Rectangle
		want   gofpdf.SizeType
	}{
		{"portrait", a4, image.Rect(0, 0, 2480, 3508), gofpdf.SizeType{Wd: 595, Ht: 842}},
		{"rotated", a4, image.Rect(0, 0, 3508, 2480), gofpdf.SizeType{Wd: 842, Ht: 595}},
		{"landscape", types.Dim{Width: 842, Height: 595}, image.Rect(0, 0, 3508, 2480), gofpdf.SizeType{Wd: 842, Ht: 595}},
		{"square", types.Dim{Width: 500, Height: 500}, image.Rect(0, 0, 2000, 2001), gofpdf.SizeType{Wd: 500, Ht: 500}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pageSize(tt.dim, tt.bounds); got != tt.want {
				t.Errorf("pageSize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResultRatio(t *testing.T) {
	if got := (Result{InputBytes: 200, OutputBytes: 50}).Ratio(); got != 0.25 {
		t.Errorf("Ratio() = %v, want 0.25", got)
	}
	if got := (Result{}).Ratio(); got != 0 {
		t.Errorf("Ratio() of empty result = %v, want 0", got)
	}
}

// writeSamplePDF writes a two page document: A4 portrait and A5 landscape.
func writeSamplePDF(t *testing.T, path string) {
	t.Helper()
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.AddPage()
	pdf.SetFillColor(200, 30, 30)
	pdf.Rect(50, 50, 300, 200, "F")
	pdf.AddPageFormat("L", gofpdf.SizeType{Wd: 419.53, Ht: 595.28})
	pdf.SetFillColor(30, 30, 200)
	pdf.Rect(20, 20, 100, 100, "F")
	if err := pdf.OutputFileAndClose(path); err != nil {
		t.Fatalf("write sample: %v", err)
	}
}

func TestCompress(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.pdf")
	out := filepath.Join(dir, "out.pdf")
	writeSamplePDF(t, in)

	res, err := Compress(context.Background(), in, out, Options{DPI: 72, Quality: 60, Grayscale: true})
	if err != nil {
		t.Fatalf("Compress() error: %v", err)
	}
	if res.Pages != 2 {
		t.Errorf("Pages = %d, want 2", res.Pages)
	}
	if res.InputBytes == 0 || res.OutputBytes == 0 {
		t.Errorf("sizes not recorded: %+v", res)
	}

	n, err := sink.PageCount(out)
	if err != nil || n != 2 {
		t.Errorf("output PageCount = %d, %v; want 2", n, err)
	}
}

func TestCompressInputErrors(t *testing.T) {
	dir := t.TempDir()
	notPDF := filepath.Join(dir, "notes.pdf")
	if err := os.WriteFile(notPDF, []byte("plain text"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.pdf")

	tests := []struct {
		name string
		in   string
		code errors.Code
	}{
		{"missing", filepath.Join(dir, "nope.pdf"), errors.ErrCodeFileNotFound},
		{"not a pdf", notPDF, errors.ErrCodeInvalidPDF},
		{"directory", dir, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compress(context.Background(), tt.in, out, DefaultOptions())
			if !errors.Is(err, tt.code) {
				t.Errorf("Compress() error = %v, want %s", err, tt.code)
			}
			if _, err := os.Stat(out); !os.IsNotExist(err) {
				t.Error("failed Compress must not create the output")
			}
		})
	}
}

func TestCompressCancelled(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.pdf")
	writeSamplePDF(t, in)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out := filepath.Join(dir, "out.pdf")
	if _, err := Compress(ctx, in, out, DefaultOptions()); err != context.Canceled {
		t.Errorf("Compress() error = %v, want context.Canceled", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("cancelled Compress must not create the output")
	}
}
