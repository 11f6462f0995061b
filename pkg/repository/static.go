package repository

import (
	"context"

	"github.com/govpulse/govpulse/pkg/domain/model"
)

// Static serves a fixed in-process table of workflows. It is the last
// provider of every chain so that a catalog always exists.
type Static struct {
	records []*model.ServiceRecord
}

// NewStatic creates a provider serving the given records
func NewStatic(records []*model.ServiceRecord) *Static {
	return &Static{records: records}
}

// NewDefaultStatic creates a provider serving the built-in workflow table
func NewDefaultStatic() *Static {
	return NewStatic(DefaultWorkflows())
}

// DefaultWorkflows returns the built-in workflow table
func DefaultWorkflows() []*model.ServiceRecord {
	newRiceCard := model.NewServiceRecord("New Rice Card", "Civil Supplies", model.Days(30))
	newRiceCard.StepCount = 2

	marriage := model.NewServiceRecord("Marriage Certificate", "PR&RD & MAUD", model.Days(15))
	marriage.StepCount = 2

	noProperty := model.NewServiceRecord("No Property Application Service", "Revenue", model.Days(15))
	noProperty.StepCount = 3

	return []*model.ServiceRecord{
		model.NewServiceRecord("Income Certificate", "Revenue", model.Days(30),
			"DA", "VRO", "RI", "Tahsildar", "RDO"),
		newRiceCard,
		marriage,
		noProperty,
		model.NewServiceRecord("Rice Card", "Civil Supplies", model.Days(15),
			"DA", "Tahsildar"),
		model.NewServiceRecord("Pension Application", "Social Welfare", model.Days(45),
			"DA", "RI", "Tahsildar", "RDO", "Director"),
	}
}

// Name returns the provider name
func (s *Static) Name() string {
	return "static"
}

// Load returns copies of the static records
func (s *Static) Load(ctx context.Context) ([]*model.ServiceRecord, error) {
	records := make([]*model.ServiceRecord, 0, len(s.records))
	for _, rec := range s.records {
		if rec == nil {
			continue
		}
		c := rec.Copy()
		records = append(records, &c)
	}
	return records, nil
}
