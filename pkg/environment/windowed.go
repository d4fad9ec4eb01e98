package environment

import "github.com/boristopalov/enactive/pkg/core"

const (
	DefaultT1 = 8
	DefaultT2 = 15
)

// TimeWindowed behaves like Fixed except during calls (t1, t2], when
// the roles of E1 and E2 are swapped.
type TimeWindowed struct {
	clock int
	t1    int
	t2    int
}

func NewTimeWindowed(t1, t2 int) *TimeWindowed {
	return &TimeWindowed{t1: t1, t2: t2}
}

func (w *TimeWindowed) Respond(experiment core.Experiment) core.Result {
	w.clock++
	if w.clock <= w.t1 || w.clock > w.t2 {
		return fixed(experiment)
	}
	if experiment == core.E2 {
		return core.R1
	}
	return core.R2
}

// Clock returns the number of calls made so far
func (w *TimeWindowed) Clock() int {
	return w.clock
}
