// Package cardimage loads card images and prepares them for the PDF writer.
//
// The writer embeds JPEG data as is, but only understands 8-bit,
// non-interlaced PNG. [Loader.Load] therefore passes JPEG files through
// untouched and normalises every PNG to 8-bit NRGBA before handing it on.
// The file format is taken from the content, not the extension: a PNG named
// "card.jpg" loads fine, a text file named "card.png" is an IMAGE_DECODE
// error.
//
// [Loader.Probe] only reads the image header. The sheet pipeline probes every
// image before it opens the output, so a corrupt file aborts the run before
// anything is written.
package cardimage

import (
	"bytes"
	"context"
	"image"
	_ "image/jpeg" // register decoder for image.DecodeConfig
	"image/png"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"

	"github.com/matzehuels/cardsheet/pkg/cache"
	"github.com/matzehuels/cardsheet/pkg/errors"
	"github.com/matzehuels/cardsheet/pkg/observability"
)

// Format is the payload type as named by the PDF writer.
type Format string

const (
	JPEG Format = "JPG"
	PNG  Format = "PNG"
)

// sniffLen is how much of a file is read for content detection.
const sniffLen = 3072

// Info describes an image without its pixel data.
type Info struct {
	Path   string
	Format Format
	Width  int
	Height int
}

// Image is a card image ready to embed.
type Image struct {
	Path   string
	Key    string // SHA-256 of the source file; equal files share a key
	Format Format
	Data   []byte
	Width  int
	Height int
}

// Loader probes and loads card images. Loaded images are memoised per path
// for the lifetime of the loader; prepared PNG payloads are also stored in
// Cache so that later runs skip the re-encode.
type Loader struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	mu     sync.Mutex
	loaded map[string]*Image
}

// NewLoader creates a loader. A nil cache disables payload caching and a
// nil logger discards log output.
func NewLoader(c cache.Cache, logger *log.Logger) *Loader {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Loader{
		Cache:  c,
		Keyer:  cache.NewScopedKeyer(cache.NewDefaultKeyer(), "v1:"),
		Logger: logger,
		loaded: make(map[string]*Image),
	}
}

// Probe reads the header of the image at path.
func (l *Loader) Probe(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, errors.Wrap(errors.ErrCodeImageDecode, err, "cannot open image %s", path)
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return Info{}, errors.Wrap(errors.ErrCodeImageDecode, err, "cannot read image %s", path)
	}
	format, err := detect(path, head[:n])
	if err != nil {
		return Info{}, err
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return Info{}, errors.Wrap(errors.ErrCodeImageDecode, err, "cannot read image %s", path)
	}
	w, h, err := dimensions(path, f)
	if err != nil {
		return Info{}, err
	}
	return Info{Path: path, Format: format, Width: w, Height: h}, nil
}

// Load reads the image at path and prepares its payload.
func (l *Loader) Load(ctx context.Context, path string) (*Image, error) {
	l.mu.Lock()
	if img, ok := l.loaded[path]; ok {
		l.mu.Unlock()
		return img, nil
	}
	l.mu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeImageDecode, err, "cannot read image %s", path)
	}
	format, err := detect(path, data)
	if err != nil {
		return nil, err
	}

	img := &Image{Path: path, Key: cache.Hash(data), Format: format}
	switch format {
	case JPEG:
		img.Data = data
	case PNG:
		if img.Data, err = l.preparePNG(ctx, path, img.Key, data); err != nil {
			return nil, err
		}
	}

	if img.Width, img.Height, err = dimensions(path, bytes.NewReader(img.Data)); err != nil {
		return nil, err
	}

	l.Logger.Debug("loaded image", "path", path, "format", img.Format, "width", img.Width, "height", img.Height, "bytes", len(img.Data))

	l.mu.Lock()
	l.loaded[path] = img
	l.mu.Unlock()
	return img, nil
}

// preparePNG re-encodes a PNG as 8-bit, non-interlaced NRGBA.
func (l *Loader) preparePNG(ctx context.Context, path, hash string, data []byte) ([]byte, error) {
	key := l.Keyer.ImageKey(hash, cache.ImageKeyOpts{Format: string(PNG)})
	if cached, ok, err := l.Cache.Get(ctx, key); err == nil && ok {
		observability.Cache().OnCacheHit(ctx, "image")
		return cached, nil
	} else if err != nil {
		l.Logger.Warn("cache read failed", "path", path, "error", err)
	}
	observability.Cache().OnCacheMiss(ctx, "image")

	src, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeImageDecode, err, "cannot decode image %s", path)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, imaging.Clone(src), imaging.PNG, imaging.PNGCompressionLevel(png.BestSpeed)); err != nil {
		return nil, errors.Wrap(errors.ErrCodeImageDecode, err, "cannot re-encode image %s", path)
	}
	out := buf.Bytes()

	if err := l.Cache.Set(ctx, key, out, cache.TTLImage); err != nil {
		l.Logger.Warn("cache write failed", "path", path, "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "image", len(out))
	}
	return out, nil
}

func detect(path string, head []byte) (Format, error) {
	switch mt := mimetype.Detect(head); {
	case mt.Is("image/jpeg"):
		return JPEG, nil
	case mt.Is("image/png"):
		return PNG, nil
	default:
		return "", errors.New(errors.ErrCodeImageDecode, "%s is not a JPEG or PNG image (detected %s)", path, mt.String())
	}
}

func dimensions(path string, r io.Reader) (int, int, error) {
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeImageDecode, err, "cannot decode image %s", path)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, 0, errors.New(errors.ErrCodeImageDecode, "image %s has no pixels", path)
	}
	return cfg.Width, cfg.Height, nil
}
