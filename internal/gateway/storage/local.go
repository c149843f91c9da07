package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// LocalGateway reads exports from a directory on the local filesystem.
// Directory layout mirrors the S3 gateway: <baseDir>/exports/ holds
// inputs and <baseDir>/reports/ receives annotated output.
type LocalGateway struct {
	fs      afero.Fs
	baseDir string
}

// NewLocalGateway creates a filesystem-backed gateway rooted at baseDir.
func NewLocalGateway(fs afero.Fs, baseDir string) *LocalGateway {
	return &LocalGateway{fs: fs, baseDir: baseDir}
}

// ListExports lists regular files under <baseDir>/exports.
func (g *LocalGateway) ListExports(ctx context.Context) ([]ExportInfo, error) {
	dir := filepath.Join(g.baseDir, "exports")
	entries, err := afero.ReadDir(g.fs, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	var exports []ExportInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		exports = append(exports, ExportInfo{
			Key:          filepath.Join("exports", e.Name()),
			Size:         e.Size(),
			LastModified: e.ModTime(),
		})
	}
	return exports, nil
}

// FetchExport reads one export file by its key relative to baseDir.
func (g *LocalGateway) FetchExport(ctx context.Context, key string) ([]byte, error) {
	data, err := afero.ReadFile(g.fs, filepath.Join(g.baseDir, key))
	if err != nil {
		return nil, fmt.Errorf("read export %s: %w", key, err)
	}
	return data, nil
}

// StoreReport writes an annotated workbook under <baseDir>/reports.
func (g *LocalGateway) StoreReport(ctx context.Context, key string, data []byte, contentType string) error {
	dir := filepath.Join(g.baseDir, "reports")
	if err := g.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	dst := filepath.Join(dir, key)
	if err := afero.WriteFile(g.fs, dst, data, 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", dst, err)
	}
	return nil
}

var _ Gateway = (*LocalGateway)(nil)
var _ Gateway = (*S3Gateway)(nil)
