package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func init() {
	// keep pdfcpu from creating a config directory under $HOME
	api.DisableConfigDir()
}

// MergePDFs concatenates the PDFs at paths, in order, into one document.
func MergePDFs(paths []string) ([]byte, error) {
	if len(paths) == 0 {
		return nil, errors.New("merge: no input files")
	}

	readers := make([]io.ReadSeeker, 0, len(paths))
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return nil, fmt.Errorf("merge: open %s: %w", p, err)
		}
		defer f.Close()
		readers = append(readers, f)
	}

	var out bytes.Buffer
	if err := api.MergeRaw(readers, &out, false, model.NewDefaultConfiguration()); err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	return out.Bytes(), nil
}
