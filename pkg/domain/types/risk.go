package types

// SLARisk represents the risk derived from the SLA day count
type SLARisk string

const (
	SLARiskLow     SLARisk = "Low"
	SLARiskMedium  SLARisk = "Medium"
	SLARiskHigh    SLARisk = "High"
	SLARiskUnknown SLARisk = "Unknown"
)

// String returns the string representation of the risk
func (r SLARisk) String() string {
	return string(r)
}

// IsValid checks if the risk is one of the known values
func (r SLARisk) IsValid() bool {
	switch r {
	case SLARiskLow, SLARiskMedium, SLARiskHigh, SLARiskUnknown:
		return true
	default:
		return false
	}
}

// WorkflowRisk represents the risk derived from the workflow depth
type WorkflowRisk string

const (
	WorkflowRiskNormal    WorkflowRisk = "Normal"
	WorkflowRiskHighDelay WorkflowRisk = "High Delay Risk"
)

// String returns the string representation of the risk
func (r WorkflowRisk) String() string {
	return string(r)
}

// IsValid checks if the risk is one of the known values
func (r WorkflowRisk) IsValid() bool {
	switch r {
	case WorkflowRiskNormal, WorkflowRiskHighDelay:
		return true
	default:
		return false
	}
}

// IsHigh returns true for the high delay verdict
func (r WorkflowRisk) IsHigh() bool {
	return r == WorkflowRiskHighDelay
}
