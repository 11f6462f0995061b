package repository

import (
	"context"
	"strings"

	"github.com/govpulse/govpulse/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Spreadsheet column headers, compared after lowercasing and trimming
const (
	columnDepartment = "department name"
	columnService    = "service name"
	columnSLA        = "sla"
	columnWorkflow   = "workflow (rural)"
)

// Step separators of the workflow column. The longer token goes first.
var stepSeparators = []string{"->", "→"}

type tableColumns struct {
	department int
	service    int
	sla        int
	workflow   int
}

func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\uFEFF")
	return strings.Join(strings.Fields(strings.ToLower(h)), " ")
}

func findColumns(header []string) (tableColumns, error) {
	cols := tableColumns{department: -1, service: -1, sla: -1, workflow: -1}
	for i, h := range header {
		switch normalizeHeader(h) {
		case columnDepartment:
			cols.department = i
		case columnService:
			cols.service = i
		case columnSLA:
			cols.sla = i
		case columnWorkflow:
			cols.workflow = i
		}
	}

	if cols.department < 0 || cols.service < 0 {
		return cols, goerr.New("required column is missing",
			goerr.V("header", header),
			goerr.V("required", []string{columnDepartment, columnService}))
	}
	return cols, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseTable converts spreadsheet rows (header first) into records. Rows
// without a department or service name are skipped.
func parseTable(ctx context.Context, source string, rows [][]string) ([]*model.ServiceRecord, error) {
	if len(rows) == 0 {
		return nil, goerr.New("table has no header row", goerr.V("source", source))
	}

	cols, err := findColumns(rows[0])
	if err != nil {
		return nil, goerr.Wrap(err, "invalid table header", goerr.V("source", source))
	}

	logger := ctxlog.From(ctx)
	var records []*model.ServiceRecord
	for i, row := range rows[1:] {
		line := i + 2
		department := cell(row, cols.department)
		service := cell(row, cols.service)
		if department == "" || service == "" {
			logger.Debug("Skipping row without department or service name",
				"source", source,
				"line", line,
			)
			continue
		}

		slaText := cell(row, cols.sla)
		days, ok := ParseSLADays(slaText)
		if !ok {
			logger.Warn("SLA text has no leading day count, treating as absent",
				"source", source,
				"line", line,
				"service", service,
				"sla", slaText,
			)
		}

		records = append(records, model.NewServiceRecord(service, department, days,
			SplitSteps(cell(row, cols.workflow))...))
	}

	return records, nil
}

// ParseSLADays reads the leading integer token of an SLA text such as
// "30 days". Empty text yields (nil, true); text without a leading integer
// yields (nil, false).
func ParseSLADays(text string) (*int, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, true
	}

	n := 0
	digits := 0
	for _, r := range fields[0] {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		digits++
		if digits > 6 {
			return nil, false
		}
	}
	if digits == 0 {
		return nil, false
	}
	return model.Days(n), true
}

// SplitSteps splits a workflow chain such as "DA -> VRO -> RI" into roles
func SplitSteps(chain string) []string {
	if strings.TrimSpace(chain) == "" {
		return nil
	}

	parts := []string{chain}
	for _, sep := range stepSeparators {
		var next []string
		for _, p := range parts {
			next = append(next, strings.Split(p, sep)...)
		}
		parts = next
	}

	steps := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			steps = append(steps, p)
		}
	}
	return steps
}
