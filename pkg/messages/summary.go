package messages

import (
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/report"
)

// Summary is the display-ready state of a control tree.
type Summary struct {
	Status   string              `json:"status"`
	Valid    bool                `json:"valid"`
	Messages []string            `json:"messages"`
	Warnings []string            `json:"warnings"`
	Errors   map[string][]string `json:"errors"`
}

// Summarize collects root's status, rendered messages, warnings and the
// error codes of every control that has any.
func (c *Catalog) Summarize(root form.Control) Summary {
	r := report.Collect(root)
	s := Summary{
		Status:   root.Status().String(),
		Valid:    root.Valid(),
		Messages: c.Render(r),
		Warnings: report.CollectWarnings(root),
		Errors:   make(map[string][]string),
	}
	if s.Messages == nil {
		s.Messages = []string{}
	}
	if s.Warnings == nil {
		s.Warnings = []string{}
	}
	for _, e := range r.Entries {
		for _, o := range e.Outcomes {
			s.Errors[e.Path] = append(s.Errors[e.Path], o.Codes()...)
		}
	}
	return s
}
