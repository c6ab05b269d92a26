package sink

import (
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/matzehuels/cardsheet/pkg/errors"
)

func pdfcpuConfig() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// Optimize rewrites the PDF at path in place, dropping duplicate objects and
// unused resources. The original is replaced only if optimisation succeeds.
func Optimize(path string) error {
	return optimizeFile(path, path)
}

// optimizeFile optimises the PDF at path in place; name is used in errors.
func optimizeFile(path, name string) error {
	tmp := tempName(path)
	if err := api.OptimizeFile(path, tmp, pdfcpuConfig()); err != nil {
		os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeInvalidPDF, err, "cannot optimise %s", name)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// PageCount returns the number of pages of the PDF at path.
func PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidPDF, err, "cannot read %s", path)
	}
	return n, nil
}
