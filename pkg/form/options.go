package form

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

type controlOptions struct {
	validators  []validator.Validator
	async       []validator.AsyncValidator
	warnings    []validator.WarningRule
	disabled    bool
	nonNullable bool
}

// ControlOption configures a Field, Group or Array at construction.
type ControlOption func(*controlOptions)

// WithValidators attaches synchronous validators.
func WithValidators(vs ...validator.Validator) ControlOption {
	return func(o *controlOptions) {
		o.validators = append(o.validators, vs...)
	}
}

// WithAsyncValidators attaches debounced asynchronous validators.
func WithAsyncValidators(vs ...validator.AsyncValidator) ControlOption {
	return func(o *controlOptions) {
		o.async = append(o.async, vs...)
	}
}

// WithWarnings attaches warning rules. Warnings never affect validity.
func WithWarnings(rules ...validator.WarningRule) ControlOption {
	return func(o *controlOptions) {
		o.warnings = append(o.warnings, rules...)
	}
}

// WithDisabled creates the control disabled.
func WithDisabled() ControlOption {
	return func(o *controlOptions) {
		o.disabled = true
	}
}

// WithNonNullable makes Reset without a value restore the initial value
// instead of clearing the field. It only applies to fields.
func WithNonNullable() ControlOption {
	return func(o *controlOptions) {
		o.nonNullable = true
	}
}

type formOptions struct {
	ctx     context.Context
	logger  *slog.Logger
	metrics Metrics
}

// Option configures a Form.
type Option func(*formOptions)

// WithLogger sets the logger used for validator faults and async check failures.
func WithLogger(l *slog.Logger) Option {
	return func(o *formOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics sets the sink for async validation metrics.
func WithMetrics(m Metrics) Option {
	return func(o *formOptions) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithContext ties the form lifetime to ctx: when ctx ends the form is closed.
func WithContext(ctx context.Context) Option {
	return func(o *formOptions) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}
