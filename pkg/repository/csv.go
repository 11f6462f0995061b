package repository

import (
	"context"
	"encoding/csv"
	"io"
	"os"

	"github.com/govpulse/govpulse/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

func loadCSVFile(ctx context.Context, path string) ([]*model.ServiceRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open CSV file", goerr.V("path", path))
	}
	defer f.Close()

	return parseCSV(ctx, path, f)
}

func parseCSV(ctx context.Context, source string, r io.Reader) ([]*model.ServiceRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse CSV", goerr.V("source", source))
	}

	return parseTable(ctx, source, rows)
}
