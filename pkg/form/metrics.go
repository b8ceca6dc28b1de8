package form

import "time"

// Metrics receives async validation lifecycle signals.
// Implementations must be safe for concurrent use; they are called while the
// form holds its lock and must not call back into the form.
type Metrics interface {
	CheckScheduled(validatorID string)
	CheckSuperseded(validatorID string)
	CheckApplied(validatorID string, failed bool, d time.Duration)
	ValidatorFault(validatorID string)
}

type noopMetrics struct{}

func (noopMetrics) CheckScheduled(string)                    {}
func (noopMetrics) CheckSuperseded(string)                   {}
func (noopMetrics) CheckApplied(string, bool, time.Duration) {}
func (noopMetrics) ValidatorFault(string)                    {}
