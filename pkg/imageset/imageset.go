// Package imageset finds card images on disk and pairs fronts with backs.
//
// [ListImages] returns the JPEG and PNG files of a directory in natural
// order ("2" before "10"). [MatchPairs] turns two such lists into the ordered
// front/back pairs that the compositor lays out, either by identical filename
// stem or by position.
package imageset

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/cardsheet/pkg/errors"
)

// AcceptedExtensions lists the lower-case file extensions treated as card
// images.
var AcceptedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// ImageRef identifies one image file.
type ImageRef struct {
	Path string // full path as found on disk
	Name string // base name, e.g. "card10.png"
	Stem string // base name without extension, e.g. "card10"
}

// NewImageRef builds an ImageRef for path.
func NewImageRef(path string) ImageRef {
	name := filepath.Base(path)
	return ImageRef{
		Path: path,
		Name: name,
		Stem: strings.TrimSuffix(name, filepath.Ext(name)),
	}
}

// Pair is one physical card: the image printed on its front and on its back.
type Pair struct {
	Front ImageRef
	Back  ImageRef
}

// String returns "front.png/back.png".
func (p Pair) String() string { return p.Front.Name + "/" + p.Back.Name }

// IsImage reports whether name has an accepted image extension.
func IsImage(name string) bool {
	return AcceptedExtensions[strings.ToLower(filepath.Ext(name))]
}

// ListImages returns the image files in dir in natural order.
//
// Only regular files (or symlinks to regular files) with an accepted
// extension are returned; subdirectories are not searched. A directory with
// no images yields an empty slice, not an error.
func ListImages(dir string) ([]ImageRef, error) {
	if err := errors.ValidateDirectory(dir, "image"); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDirectoryNotFound, err, "cannot read directory %s", dir)
	}

	var refs []ImageRef
	for _, e := range entries {
		if !IsImage(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if !isRegular(e, path) {
			continue
		}
		refs = append(refs, NewImageRef(path))
	}

	SortImages(refs)
	return refs, nil
}

func isRegular(e os.DirEntry, path string) bool {
	if e.Type().IsRegular() {
		return true
	}
	if e.Type()&os.ModeSymlink != 0 {
		info, err := os.Stat(path)
		return err == nil && info.Mode().IsRegular()
	}
	return false
}

// SortImages orders refs naturally by stem. Ties (stems equal up to case
// and leading zeros) are broken by the lower-cased file name and then the
// raw file name, which makes the order total.
func SortImages(refs []ImageRef) {
	slices.SortStableFunc(refs, compareRefs)
}

func compareRefs(a, b ImageRef) int {
	if c := NaturalCompare(a.Stem, b.Stem); c != 0 {
		return c
	}
	if c := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
		return c
	}
	return strings.Compare(a.Name, b.Name)
}

// Resolve lists both directories, rejects empty sides and pairs the images.
func Resolve(frontsDir, backsDir string, mode MatchMode) ([]Pair, error) {
	if err := errors.ValidateDirectory(frontsDir, "fronts"); err != nil {
		return nil, err
	}
	if err := errors.ValidateDirectory(backsDir, "backs"); err != nil {
		return nil, err
	}

	fronts, err := ListImages(frontsDir)
	if err != nil {
		return nil, fmt.Errorf("list fronts: %w", err)
	}
	backs, err := ListImages(backsDir)
	if err != nil {
		return nil, fmt.Errorf("list backs: %w", err)
	}
	if len(fronts) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyImageSet, "no front images found in %s", frontsDir)
	}
	if len(backs) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyImageSet, "no back images found in %s", backsDir)
	}

	return MatchPairs(fronts, backs, mode)
}
