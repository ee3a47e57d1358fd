package orchestrator

import "github.com/hashicorp/go-multierror"

// ConfigurationErrors aggregates per-target configuration errors encountered while
// iterating a target graph (D6, §7): resolution failures are not immediately fatal, so
// the orchestrator can report every skipped target in one diagnostic instead of
// aborting on the first.
type ConfigurationErrors struct {
	errs *multierror.Error
}

// Add records a configuration error for the named target.
func (c *ConfigurationErrors) Add(target string, err error) {
	c.errs = multierror.Append(c.errs, &targetError{target: target, err: err})
}

// Len reports how many targets failed to resolve.
func (c *ConfigurationErrors) Len() int {
	if c.errs == nil {
		return 0
	}
	return len(c.errs.Errors)
}

// ErrorOrNil returns the aggregated error, or nil if no target failed.
func (c *ConfigurationErrors) ErrorOrNil() error {
	if c.errs == nil {
		return nil
	}
	return c.errs.ErrorOrNil()
}

type targetError struct {
	target string
	err    error
}

func (e *targetError) Error() string {
	return "target " + e.target + ": " + e.err.Error()
}

func (e *targetError) Unwrap() error {
	return e.err
}
