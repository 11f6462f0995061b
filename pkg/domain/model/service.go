package model

import (
	"strings"

	"github.com/govpulse/govpulse/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// UnknownDepartment is reported for services missing from the catalog
const UnknownDepartment = "Unknown"

// ServiceRecord represents one government service workflow in the catalog
type ServiceRecord struct {
	Name       string           `yaml:"service_name" firestore:"service_name"`
	Key        types.ServiceKey `yaml:"-" firestore:"-"`
	Department string           `yaml:"department" firestore:"department"`
	SLADays    *int             `yaml:"sla_days,omitempty" firestore:"sla_days"`
	Steps      []string         `yaml:"steps,omitempty" firestore:"steps"`           // Ordered approval roles
	StepCount  int              `yaml:"step_count,omitempty" firestore:"step_count"` // Used when roles are not known
}

// NewServiceRecord creates a normalized service record with known approval roles
func NewServiceRecord(name, department string, slaDays *int, steps ...string) *ServiceRecord {
	rec := &ServiceRecord{
		Name:       name,
		Department: department,
		SLADays:    slaDays,
		Steps:      steps,
	}
	rec.Normalize()
	return rec
}

// Days returns a pointer to an SLA day count
func Days(n int) *int {
	return &n
}

// DefaultServiceRecord returns the record reported for a service that is not in the catalog
func DefaultServiceRecord(name string) ServiceRecord {
	return ServiceRecord{
		Name:       name,
		Key:        types.NewServiceKey(name),
		Department: UnknownDepartment,
	}
}

// Normalize trims text fields, drops empty steps and derives the lookup key
func (r *ServiceRecord) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Department = strings.TrimSpace(r.Department)
	r.Key = types.NewServiceKey(r.Name)

	if len(r.Steps) == 0 {
		r.Steps = nil
		return
	}
	steps := make([]string, 0, len(r.Steps))
	for _, s := range r.Steps {
		if s = strings.TrimSpace(s); s != "" {
			steps = append(steps, s)
		}
	}
	r.Steps = steps
}

// Validate validates the service record
func (r *ServiceRecord) Validate() error {
	if r.Key == "" {
		return goerr.New("service name is required")
	}
	if r.Department == "" {
		return goerr.New("department is required", goerr.V("service", r.Name))
	}
	if r.SLADays != nil && *r.SLADays < 0 {
		return goerr.New("SLA days must not be negative",
			goerr.V("service", r.Name),
			goerr.V("sla_days", *r.SLADays))
	}
	if r.StepCount < 0 {
		return goerr.New("step count must not be negative",
			goerr.V("service", r.Name),
			goerr.V("step_count", r.StepCount))
	}
	return nil
}

// WorkflowSteps returns the number of approval steps. Known roles take
// precedence over an explicit step count.
func (r ServiceRecord) WorkflowSteps() int {
	if len(r.Steps) > 0 {
		return len(r.Steps)
	}
	return r.StepCount
}

// Copy returns a deep copy of the record
func (r *ServiceRecord) Copy() ServiceRecord {
	c := *r
	if r.SLADays != nil {
		c.SLADays = Days(*r.SLADays)
	}
	if r.Steps != nil {
		c.Steps = append([]string(nil), r.Steps...)
	}
	return c
}
