package experiment

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"go.uber.org/zap"

	"github.com/boristopalov/enactive/pkg/agent"
	"github.com/boristopalov/enactive/pkg/core"
)

// Summary aggregates the turns retained in an experiment's history
type Summary struct {
	Turns      int
	Pleased    int
	Pained     int
	Learned    int       // turns that recorded a new composite interaction
	Composites int       // distinct contexts with anticipations
	Mood       core.Mood // mood after the last turn
	// SettledAt is the first turn from which the agent stayed pleased
	// until the end, or -1 if it ended pained.
	SettledAt int
}

func (e *Experiment) Summary() Summary {
	return summarize(e.History(), len(e.agent.Composites()), e.agent.Mood())
}

func summarize(turns []agent.Turn, composites int, mood core.Mood) Summary {
	s := Summary{
		Turns:      len(turns),
		Composites: composites,
		Mood:       mood,
		SettledAt:  -1,
	}
	for _, turn := range turns {
		switch turn.Mood {
		case core.Pleased:
			s.Pleased++
			if s.SettledAt < 0 {
				s.SettledAt = turn.Number
			}
		default:
			s.Pained++
			s.SettledAt = -1
		}
		if turn.Learned {
			s.Learned++
		}
	}
	return s
}

// LogSummary writes the summary as a single structured log entry
func (e *Experiment) LogSummary() {
	s := e.Summary()
	e.logger.Info("experiment statistics",
		zap.Int("turns", s.Turns),
		zap.Int("pleased", s.Pleased),
		zap.Int("pained", s.Pained),
		zap.Int("learned", s.Learned),
		zap.Int("composites", s.Composites),
		zap.Int("settled_at", s.SettledAt),
		zap.Stringer("mood", s.Mood))
}

var csvHeader = []string{"experiment", "turn", "chosen", "result", "enacted", "valence", "anticipations", "learned", "mood"}

// WriteCSV writes one row per retained turn
func (e *Experiment) WriteCSV(w io.Writer, header bool) error {
	cw := csv.NewWriter(w)
	if header {
		if err := cw.Write(csvHeader); err != nil {
			return fmt.Errorf("failed to write stats header: %w", err)
		}
	}
	for _, turn := range e.History() {
		row := []string{
			e.name,
			strconv.Itoa(turn.Number),
			string(turn.Experiment),
			string(turn.Result),
			string(turn.Enacted.Experiment) + string(turn.Enacted.Result),
			strconv.Itoa(turn.Enacted.Valence),
			strconv.Itoa(len(turn.Anticipations)),
			strconv.FormatBool(turn.Learned),
			turn.Mood.String(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write stats row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
