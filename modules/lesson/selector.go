package lesson

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrymomot/formkit/pkg/backend"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// CodeUnknownTitle marks a title that is not one of the selector options.
const CodeUnknownTitle = "unknownTitle"

// TitleSelector picks the lesson title from a fixed option list. Attached
// to the title field it is the field's value accessor: picks become field
// values, and a title written from elsewhere that is not an option fails
// with CodeUnknownTitle.
type TitleSelector struct {
	options []string

	mu       sync.Mutex
	selected string
	disabled bool
	onChange func(any)
}

// NewTitleSelector offers options, or Titles when none are given.
func NewTitleSelector(options ...string) *TitleSelector {
	if len(options) == 0 {
		options = Titles
	}
	return &TitleSelector{options: slices.Clone(options)}
}

func (s *TitleSelector) Options() []string { return slices.Clone(s.options) }

// Selected returns the title currently shown, "" when none.
func (s *TitleSelector) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Search returns the options containing term, ignoring case, without the
// current selection. An empty term matches every option.
func (s *TitleSelector) Search(term string) []string {
	selected := s.Selected()
	needle := backend.Fold(strings.TrimSpace(term))
	var out []string
	for _, o := range s.options {
		if o != selected && strings.Contains(backend.Fold(o), needle) {
			out = append(out, o)
		}
	}
	return out
}

// Select picks title as a user would. "" clears the selection.
func (s *TitleSelector) Select(title string) error {
	if err := s.check(title); err != nil {
		return err
	}
	s.mu.Lock()
	if s.disabled {
		s.mu.Unlock()
		return ErrSelectorDisabled
	}
	s.selected = title
	fn := s.onChange
	s.mu.Unlock()

	if fn != nil {
		fn(title)
	}
	return nil
}

// Clear drops the selection.
func (s *TitleSelector) Clear() error { return s.Select("") }

func (s *TitleSelector) check(title string) error {
	if title != "" && !slices.Contains(s.options, title) {
		return fmt.Errorf("%w: %q", ErrUnknownTitle, title)
	}
	return nil
}

// WriteValue shows v. Non-string values clear the selection.
func (s *TitleSelector) WriteValue(v any) {
	title, _ := v.(string)
	s.mu.Lock()
	s.selected = title
	s.mu.Unlock()
}

func (s *TitleSelector) RegisterOnChange(fn func(any)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// SetDisabledState makes the selector read-only while the field is disabled.
func (s *TitleSelector) SetDisabledState(disabled bool) {
	s.mu.Lock()
	s.disabled = disabled
	s.mu.Unlock()
}

// Validate flags a field value that is not one of the options. Emptiness
// is left to the required validator.
func (s *TitleSelector) Validate(c validator.Control) validator.Outcome {
	title, _ := c.Value().(string)
	if s.check(title) == nil {
		return nil
	}
	return validator.Fail(CodeUnknownTitle, map[string]any{"options": slices.Clone(s.options)})
}
