package agent

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/boristopalov/enactive/pkg/core"
)

// DefaultTurns is the number of turns Run is usually asked for
const DefaultTurns = 10

type primitiveKey struct {
	experiment core.Experiment
	result     core.Result
}

// Agent is a simple embodied agent. It selects experiments from its
// accumulated experience, learns which interactions follow which, and
// keeps a mood driven by the valence of what it just enacted.
//
// An Agent is not safe for concurrent use.
type Agent struct {
	id     string
	env    core.Environment
	logger *zap.Logger

	experiments []core.Experiment
	keys        []primitiveKey
	primitives  map[primitiveKey]core.Interaction
	composites  map[core.Interaction][]core.Interaction

	context    core.Interaction
	hasContext bool
	mood       core.Mood
	turn       int
}

type AgentParams struct {
	AgentID string
	Logger  *zap.Logger
}

type AgentOption func(*AgentParams)

func WithAgentID(id string) AgentOption {
	return func(p *AgentParams) {
		p.AgentID = id
	}
}

func WithLogger(logger *zap.Logger) AgentOption {
	return func(p *AgentParams) {
		p.Logger = logger
	}
}

func defaultAgentParams() *AgentParams {
	return &AgentParams{
		AgentID: "agent-" + uuid.New().String(),
		Logger:  zap.NewNop(),
	}
}

// New creates an agent that interacts with env through the given set of
// primitive interactions. Experiments are tried in the order they first
// appear in interactions.
func New(env core.Environment, interactions []core.Interaction, opts ...AgentOption) (*Agent, error) {
	if len(interactions) == 0 {
		return nil, fmt.Errorf("failed to create agent: %w", core.ErrNoInteractions)
	}
	if env == nil {
		return nil, fmt.Errorf("failed to create agent: environment is nil")
	}

	params := defaultAgentParams()
	for _, opt := range opts {
		opt(params)
	}
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}

	a := &Agent{
		id:         params.AgentID,
		env:        env,
		logger:     params.Logger.With(zap.String("agent", params.AgentID)),
		primitives: make(map[primitiveKey]core.Interaction, len(interactions)),
		composites: make(map[core.Interaction][]core.Interaction),
		mood:       core.Pleased,
	}

	seen := make(map[core.Experiment]bool)
	for _, i := range interactions {
		if !seen[i.Experiment] {
			seen[i.Experiment] = true
			a.experiments = append(a.experiments, i.Experiment)
		}
		key := primitiveKey{i.Experiment, i.Result}
		if _, ok := a.primitives[key]; !ok {
			a.keys = append(a.keys, key)
		}
		a.primitives[key] = i
	}

	return a, nil
}

func (a *Agent) GetID() string {
	return a.id
}

func (a *Agent) Mood() core.Mood {
	return a.mood
}

// Context returns the most recently enacted interaction. The boolean is
// false before the first turn.
func (a *Agent) Context() (core.Interaction, bool) {
	return a.context, a.hasContext
}

// KnownExperiments returns a copy of the experiments in fallback order
func (a *Agent) KnownExperiments() []core.Experiment {
	experiments := make([]core.Experiment, len(a.experiments))
	copy(experiments, a.experiments)
	return experiments
}

// Primitives returns every interaction the agent can enact, in the
// order their (experiment, result) pairs were first given.
func (a *Agent) Primitives() []core.Interaction {
	primitives := make([]core.Interaction, 0, len(a.keys))
	for _, key := range a.keys {
		primitives = append(primitives, a.primitives[key])
	}
	return primitives
}

// Primitive looks up the interaction enacted when experiment yields result
func (a *Agent) Primitive(experiment core.Experiment, result core.Result) (core.Interaction, bool) {
	i, ok := a.primitives[primitiveKey{experiment, result}]
	return i, ok
}

// Anticipations returns a copy of what the agent expects may follow context
func (a *Agent) Anticipations(context core.Interaction) []core.Interaction {
	return clone(a.composites[context])
}

// Anticipate returns the anticipations for the current context, or nil
// if the agent has none yet.
func (a *Agent) Anticipate() []core.Interaction {
	if !a.hasContext {
		return nil
	}
	return a.Anticipations(a.context)
}

// Composites returns a deep copy of everything the agent has learned
func (a *Agent) Composites() map[core.Interaction][]core.Interaction {
	composites := make(map[core.Interaction][]core.Interaction, len(a.composites))
	for context, anticipated := range a.composites {
		composites[context] = clone(anticipated)
	}
	return composites
}

func clone(interactions []core.Interaction) []core.Interaction {
	if interactions == nil {
		return nil
	}
	out := make([]core.Interaction, len(interactions))
	copy(out, interactions)
	return out
}
