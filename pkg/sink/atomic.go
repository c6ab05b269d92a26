package sink

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// WriteFileAtomic writes path through write. Output goes to a uniquely named
// temporary file in the same directory, which is renamed over path only when
// write and all flushing succeeded. On failure the temporary file is removed
// and an existing file at path is left untouched.
func WriteFileAtomic(path string, write func(io.Writer) error) error {
	return writeAtomic(path, write, nil)
}

// WritePDF writes the PDF produced by write to path atomically. With optimize
// set, the temporary file is optimised before the rename, so a failed
// optimisation leaves path exactly as it was.
func WritePDF(path string, write func(io.Writer) error, optimize bool) error {
	var finish func(tmp string) error
	if optimize {
		finish = func(tmp string) error { return optimizeFile(tmp, path) }
	}
	return writeAtomic(path, write, finish)
}

// writeAtomic is WriteFileAtomic with an optional step run on the closed
// temporary file before it is renamed over path.
func writeAtomic(path string, write func(io.Writer) error, finish func(tmp string) error) (err error) {
	tmp := tempName(path)
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}

	closed := false
	defer func() {
		if err != nil {
			if !closed {
				f.Close()
			}
			os.Remove(tmp)
		}
	}()

	bw := bufio.NewWriter(f)
	if err = write(bw); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return err
	}
	if err = f.Sync(); err != nil {
		return err
	}
	closed = true
	if err = f.Close(); err != nil {
		return err
	}
	if finish != nil {
		if err = finish(tmp); err != nil {
			return err
		}
	}
	return os.Rename(tmp, path)
}

// tempName returns a hidden sibling of path that no other run will pick.
func tempName(path string) string {
	return filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
}
