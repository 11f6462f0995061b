package cli_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/govpulse/govpulse/pkg/cli"
	controller "github.com/govpulse/govpulse/pkg/controller/http"
	"github.com/govpulse/govpulse/pkg/domain/model"
	"github.com/govpulse/govpulse/pkg/domain/types"
	"github.com/govpulse/govpulse/pkg/repository"
	"github.com/govpulse/govpulse/pkg/usecase"
	"github.com/m-mizutani/gt"
)

const workflowCSV = "Department Name,Service Name,SLA,Workflow (Rural),Workflow (Urban)\n" +
	"Revenue,Income Certificate,21 Days,DA -> VRO -> RI -> Tahsildar,DA -> RDO\n" +
	"Civil Supplies,New Rice Card,30 Days,DA -> Tahsildar,DA\n"

func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	return cli.Run(context.Background(), append([]string{"govpulse", "--log-format", "json", "--log-level", "error"}, args...))
}

func readReport(t *testing.T, path string) []model.ServiceExplanation {
	t.Helper()
	data, err := os.ReadFile(path)
	gt.NoError(t, err).Required()

	var result []model.ServiceExplanation
	gt.NoError(t, json.Unmarshal(data, &result)).Required()
	return result
}

func TestExplainBuiltinCatalog(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.json")
	gt.NoError(t, runCLI(t, "explain", "--output", out)).Required()

	result := readReport(t, out)
	gt.Equal(t, len(result), 4)
	gt.Equal(t, result[0].ServiceName, "Income Certificate")
	gt.Equal(t, result[0].WorkflowRisk, types.WorkflowRiskHighDelay)
	gt.Equal(t, result[0].DelayedRoles, []string{"VRO"})
	gt.Equal(t, result[3].ServiceName, "No Property Application Service")
	gt.False(t, result[3].IsHighRisk)
}

func TestExplainOptions(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.json")
	gt.NoError(t, runCLI(t, "explain",
		"--output", out,
		"--service", "Pension Application",
		"--service", "Unknown Service",
		"--high-risk-steps", "6",
	)).Required()

	result := readReport(t, out)
	gt.Equal(t, len(result), 2)
	gt.Equal(t, result[0].WorkflowSteps, 5)
	gt.False(t, result[0].IsHighRisk)
	gt.Equal(t, result[1].Department, model.UnknownDepartment)
	gt.Nil(t, result[1].SLADays)
	gt.Equal(t, result[1].SLARisk, types.SLARiskUnknown)
}

func TestExplainRejectsInvalidThreshold(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.json")
	gt.Error(t, runCLI(t, "explain", "--output", out, "--high-risk-steps", "0"))
}

func TestExplainMatchesHTTPEndpoint(t *testing.T) {
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "workflows.csv")
	gt.NoError(t, os.WriteFile(catalogPath, []byte(workflowCSV), 0o644)).Required()

	out := filepath.Join(dir, "report.json")
	gt.NoError(t, runCLI(t, "explain", "--output", out, "--catalog-path", catalogPath)).Required()
	fromCLI := readReport(t, out)

	ctx := context.Background()
	holder := repository.NewHolder(repository.NewChain(
		repository.NewFile(catalogPath),
		repository.NewDefaultStatic(),
	), catalogPath)
	gt.NoError(t, holder.Reload(ctx)).Required()

	server, err := controller.NewServer(ctx, ":0", usecase.NewReport(holder, nil), nil)
	gt.NoError(t, err).Required()

	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/services/explain", nil))
	gt.Equal(t, rec.Code, http.StatusOK)

	var fromHTTP []model.ServiceExplanation
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fromHTTP)).Required()

	gt.Equal(t, fromCLI, fromHTTP)

	// Income Certificate comes from the file, not the built-in table
	gt.Equal(t, *fromCLI[0].SLADays, 21)
	gt.Equal(t, fromCLI[0].SLARisk, types.SLARiskMedium)
	// Services missing from the file fall back to defaults
	gt.Equal(t, fromCLI[2].Department, model.UnknownDepartment)
}

// gateProvider blocks every load after the first until released
type gateProvider struct {
	loads   atomic.Int32
	entered chan struct{}
	release chan struct{}
}

func (p *gateProvider) Name() string { return "gate" }

func (p *gateProvider) Load(ctx context.Context) ([]*model.ServiceRecord, error) {
	if p.loads.Add(1) > 1 {
		select {
		case p.entered <- struct{}{}:
		default:
		}
		<-p.release
	}
	return []*model.ServiceRecord{
		model.NewServiceRecord("Rice Card", "Civil Supplies", model.Days(15), "DA", "Tahsildar"),
	}, nil
}

func TestWatchCatalogStopWaitsForReload(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "workflows.csv")
	gt.NoError(t, os.WriteFile(path, []byte(workflowCSV), 0o644)).Required()

	provider := &gateProvider{
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	holder := repository.NewHolder(repository.NewChain(provider), path)
	gt.NoError(t, holder.Reload(ctx)).Required()

	stop, err := cli.WatchCatalog(ctx, holder, path, 10*time.Millisecond)
	gt.NoError(t, err).Required()

	time.Sleep(100 * time.Millisecond)
	gt.NoError(t, os.WriteFile(path, []byte(workflowCSV), 0o644)).Required()

	select {
	case <-provider.entered:
	case <-time.After(5 * time.Second):
		t.Fatal("reload was not triggered")
	}

	stopped := make(chan struct{})
	go func() {
		stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("stop returned while a reload was still running")
	case <-time.After(200 * time.Millisecond):
	}

	close(provider.release)
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("stop did not return after the reload finished")
	}
}

func TestWatchCatalogWithoutPath(t *testing.T) {
	holder := repository.NewHolder(repository.NewChain(repository.NewDefaultStatic()), "")
	stop, err := cli.WatchCatalog(context.Background(), holder, "", 0)
	gt.NoError(t, err).Required()
	stop()
}
