package usecase_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/govpulse/govpulse/pkg/domain/model"
	"github.com/govpulse/govpulse/pkg/domain/types"
	"github.com/govpulse/govpulse/pkg/repository"
	"github.com/govpulse/govpulse/pkg/usecase"
	"github.com/m-mizutani/gt"
)

// fixedSource serves a fixed catalog
type fixedSource struct {
	catalog *model.Catalog
	found   bool
}

func (s *fixedSource) Catalog() *model.Catalog { return s.catalog }
func (s *fixedSource) DataDirFound() bool      { return s.found }

func newDefaultHolder(t *testing.T) *repository.Holder {
	t.Helper()
	holder := repository.NewHolder(repository.NewChain(repository.NewDefaultStatic()), "")
	gt.NoError(t, holder.Reload(context.Background())).Required()
	return holder
}

func TestReportExplainServices(t *testing.T) {
	ctx := context.Background()

	t.Run("default services in order", func(t *testing.T) {
		report := usecase.NewReport(newDefaultHolder(t), usecase.NewReportConfig())
		results := report.ExplainServices(ctx)
		gt.Equal(t, len(results), 4)

		names := make([]string, 0, len(results))
		for _, r := range results {
			names = append(names, r.ServiceName)
		}
		gt.Equal(t, names, usecase.DefaultServices())

		income := results[0]
		gt.Equal(t, income.Department, "Revenue")
		gt.Equal(t, *income.SLADays, 30)
		gt.Equal(t, income.SLARisk, types.SLARiskMedium)
		gt.Equal(t, income.WorkflowSteps, 5)
		gt.Equal(t, income.WorkflowRisk, types.WorkflowRiskHighDelay)
		gt.Equal(t, income.DelayedRoles, []string{"VRO"})
		gt.True(t, income.IsHighRisk)

		marriage := results[2]
		gt.Equal(t, marriage.SLARisk, types.SLARiskLow)
		gt.Equal(t, marriage.WorkflowSteps, 2)
		gt.Equal(t, marriage.WorkflowRisk, types.WorkflowRiskNormal)
		gt.Equal(t, marriage.DelayedRoles, []string{})
	})

	t.Run("missing services get defaults", func(t *testing.T) {
		report := usecase.NewReport(newDefaultHolder(t),
			usecase.NewReportConfig(usecase.WithServices("Caste Certificate")))
		results := report.ExplainServices(ctx)
		gt.Equal(t, len(results), 1)
		gt.Equal(t, results[0].ServiceName, "Caste Certificate")
		gt.Equal(t, results[0].Department, "Unknown")
		gt.Nil(t, results[0].SLADays)
		gt.Equal(t, results[0].WorkflowSteps, 0)
		gt.Equal(t, results[0].WorkflowRisk, types.WorkflowRiskNormal)
	})

	t.Run("lookup uses normalized names but echoes the configured spelling", func(t *testing.T) {
		report := usecase.NewReport(newDefaultHolder(t),
			usecase.NewReportConfig(usecase.WithServices("  income   CERTIFICATE ")))
		results := report.ExplainServices(ctx)
		gt.Equal(t, results[0].ServiceName, "  income   CERTIFICATE ")
		gt.Equal(t, results[0].Department, "Revenue")
	})

	t.Run("threshold of 5 changes the verdict", func(t *testing.T) {
		policy := model.WorkflowPolicy{HighRiskSteps: 5, BottleneckRole: "RI"}
		catalog := model.NewCatalog("test", []*model.ServiceRecord{
			model.NewServiceRecord("Four Steps", "Revenue", model.Days(20), "DA", "VRO", "RI", "RDO"),
			model.NewServiceRecord("Five Steps", "Revenue", model.Days(20), "DA", "VRO", "RI", "Tahsildar", "RDO"),
		})
		report := usecase.NewReport(&fixedSource{catalog: catalog},
			usecase.NewReportConfig(
				usecase.WithServices("Four Steps", "Five Steps"),
				usecase.WithWorkflowPolicy(policy),
			))

		results := report.ExplainServices(ctx)
		gt.Equal(t, results[0].WorkflowRisk, types.WorkflowRiskNormal)
		gt.Equal(t, results[1].WorkflowRisk, types.WorkflowRiskHighDelay)
		gt.Equal(t, results[1].DelayedRoles, []string{"RI"})
		gt.Equal(t, results[1].Explanation.Details,
			"The workflow has 5 approval steps. The RI stage is a potential bottleneck.")
	})

	t.Run("no catalog loaded yields defaults for every service", func(t *testing.T) {
		report := usecase.NewReport(&fixedSource{}, nil)
		results := report.ExplainServices(ctx)
		gt.Equal(t, len(results), 4)
		for _, r := range results {
			gt.Equal(t, r.Department, "Unknown")
			gt.False(t, r.IsHighRisk)
		}
	})

	t.Run("repeated calls produce identical JSON", func(t *testing.T) {
		report := usecase.NewReport(newDefaultHolder(t), nil)
		first, err := json.Marshal(report.ExplainServices(ctx))
		gt.NoError(t, err).Required()
		second, err := json.Marshal(report.ExplainServices(ctx))
		gt.NoError(t, err).Required()
		gt.True(t, bytes.Equal(first, second))
	})
}

func TestReportListServices(t *testing.T) {
	report := usecase.NewReport(newDefaultHolder(t),
		usecase.NewReportConfig(usecase.WithServices("Pension Application", "Rice Card")))

	results := report.ListServices(context.Background())
	gt.Equal(t, len(results), 2)
	gt.Equal(t, results[0].SLARisk, types.SLARiskHigh)
	gt.Equal(t, results[0].WorkflowRisk, types.WorkflowRiskHighDelay)
	gt.Equal(t, results[1].SLARisk, types.SLARiskLow)
	gt.Equal(t, results[1].WorkflowSteps, 2)
}

func TestReportStatus(t *testing.T) {
	t.Run("reports catalog metadata", func(t *testing.T) {
		holder := newDefaultHolder(t)
		report := usecase.NewReport(holder, nil)

		status := report.Status(context.Background())
		gt.Equal(t, status.Status, usecase.DefaultStatusMessage)
		gt.Equal(t, status.WorkflowsLoaded, holder.Catalog().Len())
		gt.Equal(t, status.CatalogSource, "static")
		gt.Equal(t, status.CatalogRevision, holder.Catalog().Revision())
		gt.False(t, status.DataDirFound)
	})

	t.Run("custom message and empty catalog", func(t *testing.T) {
		report := usecase.NewReport(&fixedSource{found: true},
			usecase.NewReportConfig(usecase.WithStatusMessage("up")))

		status := report.Status(context.Background())
		gt.Equal(t, status.Status, "up")
		gt.Equal(t, status.WorkflowsLoaded, 0)
		gt.True(t, status.DataDirFound)
	})
}
