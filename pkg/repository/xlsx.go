package repository

import (
	"context"

	"github.com/govpulse/govpulse/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/xuri/excelize/v2"
)

// loadXLSXFile reads the first sheet of a workbook
func loadXLSXFile(ctx context.Context, path string) ([]*model.ServiceRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open workbook", goerr.V("path", path))
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, goerr.New("workbook has no sheets", goerr.V("path", path))
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read sheet",
			goerr.V("path", path),
			goerr.V("sheet", sheets[0]))
	}

	return parseTable(ctx, path, rows)
}
