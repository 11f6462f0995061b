package model

import (
	"fmt"

	"github.com/govpulse/govpulse/pkg/domain/types"
)

// Explanation is the natural-language account of a service's workflow risk
type Explanation struct {
	Summary string `json:"summary"`
	Details string `json:"details"`
	WhatIf  string `json:"what_if"`
}

// Explain builds the explanation for a workflow. The first delayed role, if
// any, is named as the bottleneck. Output depends only on the arguments.
func Explain(risk types.WorkflowRisk, delayedRoles []string, steps int) Explanation {
	details := fmt.Sprintf("The workflow has %d approval steps.", steps)

	if !risk.IsHigh() {
		return Explanation{
			Summary: "Application is within acceptable SLA limits.",
			Details: details,
			WhatIf:  "Current performance is optimal.",
		}
	}

	if len(delayedRoles) == 0 {
		return Explanation{
			Summary: "High delay risk due to multi-level approval workflow.",
			Details: details,
			WhatIf:  "Reducing one approval step can normalize delays.",
		}
	}

	role := delayedRoles[0]
	return Explanation{
		Summary: "High delay risk due to multi-level approval workflow.",
		Details: fmt.Sprintf("%s The %s stage is a potential bottleneck.", details, role),
		WhatIf:  fmt.Sprintf("Reducing one approval step or redistributing %s workload can normalize delays.", role),
	}
}
