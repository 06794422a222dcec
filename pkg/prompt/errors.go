package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g. Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrNoDriver is returned when a Runner has no prompt driver.
	ErrNoDriver = errors.New("prompt: prompt driver is nil")
	// ErrNoOptions is returned for a required choice field with no options.
	ErrNoOptions = errors.New("prompt: required choice field has no options")
)
