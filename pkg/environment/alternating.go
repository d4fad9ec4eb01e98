package environment

import "github.com/boristopalov/enactive/pkg/core"

// Alternating is an environment where an experiment's result depends on
// whether the same experiment was performed on the previous call.
type Alternating struct {
	previous core.Experiment
}

// NewAlternating returns an Alternating environment whose first call
// yields R2 for E1.
func NewAlternating() *Alternating {
	return NewAlternatingFrom(core.E2)
}

func NewAlternatingFrom(previous core.Experiment) *Alternating {
	return &Alternating{previous: previous}
}

func (a *Alternating) Respond(experiment core.Experiment) core.Result {
	result := core.R2
	if experiment == a.previous {
		result = core.R1
	}
	a.previous = experiment
	return result
}
