package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/boristopalov/enactive/pkg/agent"
	"github.com/boristopalov/enactive/pkg/environment"
	"github.com/boristopalov/enactive/pkg/experiment"
	"github.com/boristopalov/enactive/pkg/messaging"
)

const (
	allEnvironments = "all"
	printerID       = "printer"

	// printerBuffer bounds the printer channel. The printer subscribes
	// blocking, so a slow terminal holds experiments back instead of
	// losing turns.
	printerBuffer = 64
)

func runExperiments(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	kinds := []string{cfg.Environment.Kind}
	if opts.env == allEnvironments {
		kinds = environment.Kinds()
	}

	broker := messaging.NewBroker()
	defer broker.Reset()

	// One agent per environment; agents are never shared between runs.
	exps := make([]*experiment.Experiment, 0, len(kinds))
	for _, kind := range kinds {
		env, err := cfg.NewEnvironmentOf(kind)
		if err != nil {
			return err
		}
		name := kind
		if len(kinds) == 1 && cfg.Name != "" {
			name = cfg.Name
		}
		a, err := agent.New(env, cfg.CoreInteractions(),
			agent.WithAgentID(name),
			agent.WithLogger(logger))
		if err != nil {
			return fmt.Errorf("failed to create agent: %w", err)
		}
		logger.Debug("created agent", zap.String("agent", a.GetID()), zap.String("environment", kind))

		exps = append(exps, experiment.New(experiment.Config{
			Name:        name,
			Turns:       cfg.Turns,
			HistorySize: cfg.HistorySize,
		}, a, experiment.WithBroker(broker), experiment.WithLogger(logger)))
	}

	printed := make(chan messaging.Message, printerBuffer)
	if err := broker.SubscribeBlocking(printerID, printed); err != nil {
		return err
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		messaging.Consume(context.Background(), printed, func(msg messaging.Message) {
			printTurn(cmd.OutOrStdout(), msg)
		})
	}()

	runErr := experiment.RunAll(ctx, exps...)

	_ = broker.Unsubscribe(printerID)
	close(printed)
	<-done

	for _, exp := range exps {
		exp.LogSummary()
	}
	if opts.csvPath != "" {
		if err := writeCSV(opts.csvPath, exps); err != nil {
			return err
		}
	}
	return runErr
}

func printTurn(w io.Writer, msg messaging.Message) {
	turn, ok := msg.Content.(agent.Turn)
	if !ok {
		return
	}
	var afforded []string
	for _, a := range turn.Anticipations {
		afforded = append(afforded, a.String())
	}
	line := fmt.Sprintf("[%s] %d: %s %s", msg.From, turn.Number, turn.Enacted, turn.Mood)
	if len(afforded) > 0 {
		line += " afforded " + strings.Join(afforded, " ")
	}
	if turn.Learned {
		line += " (learned)"
	}
	fmt.Fprintln(w, line)
}

func writeCSV(path string, exps []*experiment.Experiment) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create stats file: %w", err)
	}
	defer f.Close()

	for i, exp := range exps {
		if err := exp.WriteCSV(f, i == 0); err != nil {
			return err
		}
	}
	return f.Close()
}
