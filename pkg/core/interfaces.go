package core

// Environment supplies the ground truth an agent reacts to
type Environment interface {
	// Respond returns the result of performing the given experiment.
	// Implementations may keep state between calls.
	Respond(experiment Experiment) Result
}

// EnvironmentFunc adapts a plain function to the Environment interface
type EnvironmentFunc func(experiment Experiment) Result

func (f EnvironmentFunc) Respond(experiment Experiment) Result {
	return f(experiment)
}
