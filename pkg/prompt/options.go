package prompt

import "go.uber.org/zap"

// Option configures a Runner.
type Option func(*Runner)

// WithPromptDriver overrides the prompt driver used by the runner.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithLogger sets the structured logger. Runners log nothing by default.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithPrefill seeds answers, keyed by field id, used as prompt defaults.
func WithPrefill(values map[string]any) Option {
	return func(r *Runner) {
		r.prefill = values
	}
}
