package logger

import (
	"log/slog"
	"time"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// FormID records the form instance identifier under the key "form_id".
func FormID(id string) slog.Attr {
	return slog.String("form_id", id)
}

// Path records a control path such as "root.period.fromDate" under the key "path".
func Path(p string) slog.Attr {
	return slog.String("path", p)
}

// ValidatorID records the validator identity under the key "validator_id".
func ValidatorID(id string) slog.Attr {
	return slog.String("validator_id", id)
}

// Status records a control status under the key "status".
func Status(s string) slog.Attr {
	return slog.String("status", s)
}

// Candidate records the value sent to a remote uniqueness check under the key "candidate".
func Candidate(v string) slog.Attr {
	return slog.String("candidate", v)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
