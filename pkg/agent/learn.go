package agent

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/boristopalov/enactive/pkg/core"
)

// Turn records what happened during one Step
type Turn struct {
	Number        int
	Experiment    core.Experiment
	Result        core.Result
	Anticipations []core.Interaction // consulted to pick Experiment, nil if none
	Enacted       core.Interaction
	Learned       bool // a new composite interaction was recorded
	Mood          core.Mood
}

// Learn records the just-enacted interaction as following the previous
// context, then makes it the new context. It reports whether a new
// composite interaction was recorded.
func (a *Agent) Learn(enacted core.Interaction) bool {
	previous, hadContext := a.context, a.hasContext
	a.context = enacted
	a.hasContext = true
	if !hadContext {
		return false
	}

	anticipated := a.composites[previous]
	for _, i := range anticipated {
		if i == enacted {
			return false
		}
	}

	// Build the new list aside and swap it in, so the stored list is
	// always sorted.
	updated := make([]core.Interaction, len(anticipated), len(anticipated)+1)
	copy(updated, anticipated)
	updated = append(updated, enacted)
	sort.SliceStable(updated, func(i, j int) bool {
		return updated[i].Valence > updated[j].Valence
	})
	a.composites[previous] = updated

	a.logger.Debug("learn",
		zap.Stringer("context", previous),
		zap.Stringer("enacted", enacted))
	return true
}

// Step runs a single turn: choose an experiment, ask the environment
// for its result, then learn from and react to the enacted interaction.
func (a *Agent) Step() (Turn, error) {
	experiment, anticipations := a.decide()
	for _, anticipated := range anticipations {
		a.logger.Debug("afforded", zap.Stringer("interaction", anticipated))
	}

	result := a.env.Respond(experiment)
	enacted, ok := a.Primitive(experiment, result)
	if !ok {
		return Turn{}, fmt.Errorf("turn %d: %w: experiment %s produced result %s",
			a.turn, core.ErrUnmodeledResult, experiment, result)
	}

	learned := a.Learn(enacted)
	a.mood = core.MoodFor(enacted.Valence)

	turn := Turn{
		Number:        a.turn,
		Experiment:    experiment,
		Result:        result,
		Anticipations: anticipations,
		Enacted:       enacted,
		Learned:       learned,
		Mood:          a.mood,
	}
	a.turn++

	a.logger.Info("enacted",
		zap.Int("turn", turn.Number),
		zap.Stringer("interaction", enacted),
		zap.Int("anticipations", len(anticipations)),
		zap.Bool("learned", learned),
		zap.Stringer("mood", turn.Mood))
	return turn, nil
}

// Run runs the agent for the given number of turns, stopping at the
// first error.
func (a *Agent) Run(turns int) error {
	for i := 0; i < turns; i++ {
		if _, err := a.Step(); err != nil {
			return err
		}
	}
	return nil
}
