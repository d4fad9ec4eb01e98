package environment

import (
	"fmt"
	"strings"

	"github.com/boristopalov/enactive/pkg/core"
)

// Environment kinds understood by New
const (
	KindFixed       = "fixed"
	KindAlternating = "alternating"
	KindWindowed    = "windowed"
)

var aliases = map[string]string{
	"env10": KindFixed,
	"env30": KindAlternating,
	"env31": KindWindowed,
}

// Kinds returns the canonical environment kinds in a stable order
func Kinds() []string {
	return []string{KindFixed, KindAlternating, KindWindowed}
}

// Params tunes the stateful environments built by New
type Params struct {
	Previous core.Experiment // initial previous experiment for alternating
	T1       int             // end of the first default window for windowed
	T2       int             // end of the swapped window for windowed
}

type Option func(*Params)

func WithPrevious(e core.Experiment) Option {
	return func(p *Params) {
		p.Previous = e
	}
}

func WithWindow(t1, t2 int) Option {
	return func(p *Params) {
		p.T1 = t1
		p.T2 = t2
	}
}

func defaultParams() *Params {
	return &Params{
		Previous: core.E2,
		T1:       DefaultT1,
		T2:       DefaultT2,
	}
}

// New creates a fresh environment of the given kind
func New(kind string, opts ...Option) (core.Environment, error) {
	params := defaultParams()
	for _, opt := range opts {
		opt(params)
	}

	k := strings.ToLower(strings.TrimSpace(kind))
	if canonical, ok := aliases[k]; ok {
		k = canonical
	}

	switch k {
	case KindFixed:
		return Fixed{}, nil
	case KindAlternating:
		return NewAlternatingFrom(params.Previous), nil
	case KindWindowed:
		return NewTimeWindowed(params.T1, params.T2), nil
	}
	return nil, fmt.Errorf("%w: %q", core.ErrUnknownEnvironment, kind)
}

// Fixed is a stateless environment with a fixed relation between
// experiments and results.
type Fixed struct{}

func (Fixed) Respond(experiment core.Experiment) core.Result {
	return fixed(experiment)
}

func fixed(experiment core.Experiment) core.Result {
	if experiment == core.E1 {
		return core.R1
	}
	return core.R2
}
