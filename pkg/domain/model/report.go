package model

import "github.com/govpulse/govpulse/pkg/domain/types"

// ServiceSummary is the risk classification of one in-scope service
type ServiceSummary struct {
	ServiceName   string             `json:"service_name"`
	Department    string             `json:"department"`
	SLADays       *int               `json:"sla_days"`
	SLARisk       types.SLARisk      `json:"sla_risk"`
	WorkflowSteps int                `json:"workflow_steps"`
	WorkflowRisk  types.WorkflowRisk `json:"workflow_risk"`
}

// ServiceExplanation is a ServiceSummary with delay attribution and explanation
type ServiceExplanation struct {
	ServiceSummary
	DelayedRoles []string    `json:"delayed_roles"`
	IsHighRisk   bool        `json:"is_high_risk"`
	Explanation  Explanation `json:"ai_explanation"`
}

// Summarize classifies a catalog record. The display name is taken from the
// caller so the output echoes the requested spelling.
func Summarize(name string, rec ServiceRecord, policy WorkflowPolicy) ServiceSummary {
	steps := rec.WorkflowSteps()
	return ServiceSummary{
		ServiceName:   name,
		Department:    rec.Department,
		SLADays:       rec.SLADays,
		SLARisk:       ClassifySLA(rec.SLADays),
		WorkflowSteps: steps,
		WorkflowRisk:  policy.Classify(steps),
	}
}

// ExplainService classifies a catalog record and attaches its explanation
func ExplainService(name string, rec ServiceRecord, policy WorkflowPolicy) ServiceExplanation {
	summary := Summarize(name, rec, policy)
	roles := policy.DelayedRoles(summary.WorkflowRisk)

	return ServiceExplanation{
		ServiceSummary: summary,
		DelayedRoles:   roles,
		IsHighRisk:     summary.WorkflowRisk.IsHigh(),
		Explanation:    Explain(summary.WorkflowRisk, roles, summary.WorkflowSteps),
	}
}

// Status is the service status reported at the root endpoint
type Status struct {
	Status          string                `json:"status"`
	DataDirFound    bool                  `json:"data_dir_found"`
	WorkflowsLoaded int                   `json:"workflows_loaded"`
	CatalogSource   string                `json:"catalog_source"`
	CatalogRevision types.CatalogRevision `json:"catalog_revision"`
}
