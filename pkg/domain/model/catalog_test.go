package model_test

import (
	"testing"

	"github.com/govpulse/govpulse/pkg/domain/model"
	"github.com/govpulse/govpulse/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestCatalogLookup(t *testing.T) {
	catalog := model.NewCatalog("test", []*model.ServiceRecord{
		model.NewServiceRecord("Income Certificate", "Revenue", model.Days(30), "DA", "VRO", "RI", "Tahsildar", "RDO"),
		model.NewServiceRecord("Marriage Certificate", "PR&RD & MAUD", model.Days(15), "DA", "Registrar"),
	})

	t.Run("lookup is case and whitespace insensitive", func(t *testing.T) {
		rec, ok := catalog.Find("  INCOME   certificate ")
		gt.True(t, ok)
		gt.Equal(t, rec.Department, "Revenue")
		gt.Equal(t, rec.WorkflowSteps(), 5)
	})

	t.Run("step count is readable from a lookup result", func(t *testing.T) {
		gt.Equal(t, catalog.Lookup("Marriage Certificate").WorkflowSteps(), 2)
		gt.Equal(t, catalog.Lookup("Unknown Service").WorkflowSteps(), 0)
	})

	t.Run("missing entry yields defaults", func(t *testing.T) {
		rec := catalog.Lookup("Unknown Service")
		gt.Equal(t, rec.Name, "Unknown Service")
		gt.Equal(t, rec.Department, "Unknown")
		gt.Nil(t, rec.SLADays)
		gt.Equal(t, rec.WorkflowSteps(), 0)
	})

	t.Run("lookup returns copies", func(t *testing.T) {
		rec := catalog.Lookup("Income Certificate")
		rec.Steps[1] = "changed"
		*rec.SLADays = 1

		again := catalog.Lookup("Income Certificate")
		gt.Equal(t, again.Steps[1], "VRO")
		gt.Equal(t, *again.SLADays, 30)
	})

	t.Run("metadata", func(t *testing.T) {
		gt.Equal(t, catalog.Len(), 2)
		gt.Equal(t, catalog.Source(), "test")
		gt.NotEqual(t, catalog.Revision(), types.CatalogRevision(""))
		gt.False(t, catalog.LoadedAt().IsZero())
		gt.Equal(t, catalog.Keys(), []types.ServiceKey{"income certificate", "marriage certificate"})
	})
}

func TestNewCatalog(t *testing.T) {
	t.Run("later record replaces earlier one", func(t *testing.T) {
		catalog := model.NewCatalog("test", []*model.ServiceRecord{
			model.NewServiceRecord("Rice Card", "Civil Supplies", model.Days(15)),
			model.NewServiceRecord("RICE CARD", "Civil Supplies", model.Days(21)),
		})
		gt.Equal(t, catalog.Len(), 1)
		gt.Equal(t, *catalog.Lookup("rice card").SLADays, 21)
	})

	t.Run("nil and nameless records are ignored", func(t *testing.T) {
		catalog := model.NewCatalog("test", []*model.ServiceRecord{
			nil,
			{Name: "  ", Department: "Revenue"},
		})
		gt.Equal(t, catalog.Len(), 0)
	})

	t.Run("input records are not retained", func(t *testing.T) {
		rec := model.NewServiceRecord("Rice Card", "Civil Supplies", model.Days(15), "DA")
		catalog := model.NewCatalog("test", []*model.ServiceRecord{rec})
		rec.Department = "changed"
		rec.Steps[0] = "changed"

		got := catalog.Lookup("Rice Card")
		gt.Equal(t, got.Department, "Civil Supplies")
		gt.Equal(t, got.Steps[0], "DA")
	})

	t.Run("nil catalog behaves as empty", func(t *testing.T) {
		var catalog *model.Catalog
		gt.Equal(t, catalog.Len(), 0)
		gt.Equal(t, catalog.Lookup("Rice Card").Department, "Unknown")
		gt.Equal(t, catalog.Source(), "")
	})
}
