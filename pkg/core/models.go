package core

import (
	"errors"
	"fmt"
	"time"
)

// Experiment is a symbolic action an agent can perform
type Experiment string

// Result is a symbolic outcome an environment returns for an experiment
type Result string

// Canonical experiments and results
const (
	E1 Experiment = "e1"
	E2 Experiment = "e2"

	R1 Result = "r1"
	R2 Result = "r2"
)

var (
	ErrNoInteractions     = errors.New("no interactions configured")
	ErrUnmodeledResult    = errors.New("unmodeled interaction")
	ErrUnknownEnvironment = errors.New("unknown environment")
)

// Interaction couples an experiment with the result it produced and how
// good that outcome was for the agent. Values are comparable, so two
// interactions are equal iff all three fields are equal.
type Interaction struct {
	Experiment Experiment
	Result     Result
	Valence    int
}

func NewInteraction(experiment Experiment, result Result, valence int) Interaction {
	return Interaction{
		Experiment: experiment,
		Result:     result,
		Valence:    valence,
	}
}

func (i Interaction) String() string {
	return fmt.Sprintf("%s%s,%d", i.Experiment, i.Result, i.Valence)
}

// Mood reflects the valence of the last enacted interaction
type Mood int

const (
	Pleased Mood = iota
	Pained
	// Bored is reserved; no transition produces it.
	Bored
)

func (m Mood) String() string {
	switch m {
	case Pleased:
		return "PLEASED"
	case Pained:
		return "PAINED"
	case Bored:
		return "BORED"
	}
	return fmt.Sprintf("Mood(%d)", int(m))
}

// MoodFor returns the mood that follows enacting an interaction of the given valence
func MoodFor(valence int) Mood {
	if valence >= 0 {
		return Pleased
	}
	return Pained
}

// ExperimentStatus describes the progress of an experiment run
type ExperimentStatus struct {
	Name      string
	Running   bool
	StartTime time.Time
	EndTime   time.Time
	Turns     int
	Errors    []error
}
