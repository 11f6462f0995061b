package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/govpulse/govpulse/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

type fileLoader func(ctx context.Context, path string) ([]*model.ServiceRecord, error)

var fileLoaders = map[string]fileLoader{
	".xlsx": loadXLSXFile,
	".csv":  loadCSVFile,
	".yaml": loadYAMLFile,
	".yml":  loadYAMLFile,
}

// File reads workflows from a spreadsheet, CSV or YAML file, or from every
// supported file of a directory in lexical order.
type File struct {
	path string
}

// NewFile creates a file provider
func NewFile(path string) *File {
	return &File{path: filepath.Clean(path)}
}

// Name returns the provider name
func (f *File) Name() string {
	return "file:" + f.path
}

// Path returns the watched file or directory
func (f *File) Path() string {
	return f.path
}

// Load reads all records from the path
func (f *File) Load(ctx context.Context) ([]*model.ServiceRecord, error) {
	info, err := os.Stat(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(model.ErrCatalogDataNotFound, "data path not found",
				goerr.V("path", f.path))
		}
		return nil, goerr.Wrap(err, "failed to stat data path", goerr.V("path", f.path))
	}

	if !info.IsDir() {
		return loadFile(ctx, f.path)
	}
	return loadDir(ctx, f.path)
}

func loadDir(ctx context.Context, dir string) ([]*model.ServiceRecord, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read data directory", goerr.V("path", dir))
	}

	logger := ctxlog.From(ctx)
	var records []*model.ServiceRecord
	for _, entry := range entries {
		if entry.IsDir() || !IsSupportedFile(entry.Name()) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		loaded, err := loadFile(ctx, path)
		if err != nil {
			logger.Warn("Skipping unreadable workflow file", "path", path, "error", err)
			continue
		}
		records = append(records, loaded...)
	}

	return records, nil
}

func loadFile(ctx context.Context, path string) ([]*model.ServiceRecord, error) {
	loader, ok := fileLoaders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, goerr.New("unsupported workflow file type", goerr.V("path", path))
	}
	return loader(ctx, path)
}

// IsSupportedFile reports whether name has a readable workflow file
// extension. Hidden files and office lock files are excluded.
func IsSupportedFile(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") || strings.HasPrefix(base, "~$") {
		return false
	}
	_, ok := fileLoaders[strings.ToLower(filepath.Ext(base))]
	return ok
}
