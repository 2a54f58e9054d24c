package util

import (
	"archive/zip"
	"bytes"
	"fmt"

	"github.com/shortlist-hq/shortlist-api/internal/model"
)

// ZipFiles builds an in-memory zip of generated files, each nested under
// the root directory name.
func ZipFiles(root string, files []model.GeneratedFile) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, file := range files {
		w, err := zw.Create(root + "/" + file.Path)
		if err != nil {
			return nil, fmt.Errorf("add %s to archive: %w", file.Path, err)
		}
		if _, err := w.Write([]byte(file.Content)); err != nil {
			return nil, fmt.Errorf("write %s to archive: %w", file.Path, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
