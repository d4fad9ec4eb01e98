package experiment

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/boristopalov/enactive/pkg/agent"
	"github.com/boristopalov/enactive/pkg/core"
	"github.com/boristopalov/enactive/pkg/memory"
	"github.com/boristopalov/enactive/pkg/messaging"
)

const DefaultHistorySize = 100

type Config struct {
	Name        string
	Turns       int
	HistorySize int
}

// Experiment drives a single agent for a fixed number of turns
type Experiment struct {
	name    string
	turns   int
	agent   *agent.Agent
	history *memory.Memory[agent.Turn]
	broker  messaging.Broker
	logger  *zap.Logger
	mu      sync.RWMutex
	status  core.ExperimentStatus
}

type Option func(*Experiment)

// WithBroker publishes every turn to b
func WithBroker(b messaging.Broker) Option {
	return func(e *Experiment) {
		e.broker = b
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(e *Experiment) {
		e.logger = logger
	}
}

func New(cfg Config, a *agent.Agent, opts ...Option) *Experiment {
	if cfg.Turns <= 0 {
		cfg.Turns = agent.DefaultTurns
	}
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = DefaultHistorySize
	}
	if cfg.Name == "" {
		cfg.Name = a.GetID()
	}

	e := &Experiment{
		name:    cfg.Name,
		turns:   cfg.Turns,
		agent:   a,
		history: memory.New[agent.Turn](cfg.HistorySize),
		logger:  zap.NewNop(),
		status: core.ExperimentStatus{
			Name: cfg.Name,
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With(zap.String("experiment", e.name))
	return e
}

func (e *Experiment) Name() string {
	return e.name
}

func (e *Experiment) Agent() *agent.Agent {
	return e.agent
}

func (e *Experiment) Run(ctx context.Context) error {
	e.mu.Lock()
	if e.status.Running {
		e.mu.Unlock()
		return fmt.Errorf("experiment %s is already running", e.name)
	}
	e.status.Running = true
	e.status.StartTime = time.Now()
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.status.Running = false
		e.status.EndTime = time.Now()
		e.mu.Unlock()
	}()

	e.logger.Info("starting experiment", zap.Int("turns", e.turns))
	err := e.runLoop(ctx)
	if err != nil {
		e.mu.Lock()
		e.status.Errors = append(e.status.Errors, err)
		e.mu.Unlock()
		e.logger.Error("experiment failed", zap.Error(err))
		return err
	}
	e.logger.Info("experiment finished", zap.Stringer("mood", e.agent.Mood()))
	return nil
}

func (e *Experiment) runLoop(ctx context.Context) error {
	for i := 0; i < e.turns; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		turn, err := e.agent.Step()
		if err != nil {
			return fmt.Errorf("experiment %s: %w", e.name, err)
		}
		e.history.Store(turn)

		e.mu.Lock()
		e.status.Turns++
		e.mu.Unlock()

		if e.broker != nil {
			msg := messaging.Message{
				From:      e.agent.GetID(),
				Content:   turn,
				Timestamp: time.Now(),
			}
			if err := e.broker.Publish(msg); err != nil {
				e.logger.Warn("failed to publish turn", zap.Int("turn", turn.Number), zap.Error(err))
			}
		}
	}
	return nil
}

func (e *Experiment) Status() core.ExperimentStatus {
	e.mu.RLock()
	defer e.mu.RUnlock()
	status := e.status
	status.Errors = append([]error(nil), e.status.Errors...)
	return status
}

// History returns the most recent turns, oldest first
func (e *Experiment) History() []agent.Turn {
	return e.history.All()
}

// RunAll runs experiments concurrently and returns the first error.
// Each experiment must own its agent and environment.
func RunAll(ctx context.Context, experiments ...*Experiment) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, e := range experiments {
		g.Go(func() error {
			return e.Run(gctx)
		})
	}
	return g.Wait()
}
