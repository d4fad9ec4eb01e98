package agent

import (
	"github.com/boristopalov/enactive/pkg/core"
)

// Experiment selects the next experiment to perform
func (a *Agent) Experiment() core.Experiment {
	experiment, _ := a.decide()
	return experiment
}

// decide returns the chosen experiment along with the anticipations
// consulted to choose it, if any.
func (a *Agent) decide() (core.Experiment, []core.Interaction) {
	if !a.hasContext {
		return a.experiments[0], nil
	}
	if anticipations, ok := a.composites[a.context]; ok {
		return a.Select(anticipations), clone(anticipations)
	}
	if a.mood == core.Pleased {
		return a.context.Experiment, nil
	}
	return a.Another([]core.Experiment{a.context.Experiment}, a.context.Experiment), nil
}

// Select picks an experiment from a valence-descending list of
// anticipated interactions. The best anticipation is pursued if its
// valence is positive; otherwise the agent tries something none of the
// anticipations involve.
func (a *Agent) Select(anticipations []core.Interaction) core.Experiment {
	best := anticipations[0]
	if best.Valence > 0 {
		return best.Experiment
	}

	exclude := make([]core.Experiment, 0, len(anticipations))
	for _, anticipated := range anticipations {
		exclude = append(exclude, anticipated.Experiment)
	}
	return a.Another(exclude, best.Experiment)
}

// Another returns the first known experiment not in exclude, or fallback
// if every known experiment is excluded.
func (a *Agent) Another(exclude []core.Experiment, fallback core.Experiment) core.Experiment {
	return another(a.experiments, exclude, fallback)
}

func another(experiments, exclude []core.Experiment, fallback core.Experiment) core.Experiment {
	for _, e := range experiments {
		if !contains(exclude, e) {
			return e
		}
	}
	return fallback
}

func contains(experiments []core.Experiment, e core.Experiment) bool {
	for _, x := range experiments {
		if x == e {
			return true
		}
	}
	return false
}
