package model

import (
	"github.com/govpulse/govpulse/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

const (
	// LowSLAMaxDays is the largest SLA day count classified as Low
	LowSLAMaxDays = 15
	// MediumSLAMaxDays is the largest SLA day count classified as Medium
	MediumSLAMaxDays = 30

	// DefaultHighRiskSteps is the step count from which a workflow is a high delay risk
	DefaultHighRiskSteps = 4
	// DefaultBottleneckRole is the approval role blamed for high delay risk (Village Revenue Officer)
	DefaultBottleneckRole = "VRO"
)

// ClassifySLA maps an SLA day count to its risk. A nil count is Unknown.
func ClassifySLA(days *int) types.SLARisk {
	switch {
	case days == nil:
		return types.SLARiskUnknown
	case *days <= LowSLAMaxDays:
		return types.SLARiskLow
	case *days <= MediumSLAMaxDays:
		return types.SLARiskMedium
	default:
		return types.SLARiskHigh
	}
}

// WorkflowPolicy holds the knobs of the workflow depth classification
type WorkflowPolicy struct {
	HighRiskSteps  int    // Step count from which a workflow is High Delay Risk
	BottleneckRole string // Role reported as delayed for high risk workflows
}

// DefaultWorkflowPolicy returns the policy used when nothing is configured
func DefaultWorkflowPolicy() WorkflowPolicy {
	return WorkflowPolicy{
		HighRiskSteps:  DefaultHighRiskSteps,
		BottleneckRole: DefaultBottleneckRole,
	}
}

// Validate validates the policy
func (p WorkflowPolicy) Validate() error {
	if p.HighRiskSteps < 1 {
		return goerr.New("high risk step threshold must be at least 1",
			goerr.V("high_risk_steps", p.HighRiskSteps))
	}
	return nil
}

// Classify maps a workflow step count to its risk
func (p WorkflowPolicy) Classify(steps int) types.WorkflowRisk {
	threshold := p.HighRiskSteps
	if threshold < 1 {
		threshold = DefaultHighRiskSteps
	}
	if steps >= threshold {
		return types.WorkflowRiskHighDelay
	}
	return types.WorkflowRiskNormal
}

// DelayedRoles returns the roles implicated in a delay. High delay risk
// always blames the bottleneck role regardless of the workflow content.
func (p WorkflowPolicy) DelayedRoles(risk types.WorkflowRisk) []string {
	if !risk.IsHigh() || p.BottleneckRole == "" {
		return []string{}
	}
	return []string{p.BottleneckRole}
}
