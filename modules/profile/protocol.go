package profile

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/formkit/pkg/backend"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/messages"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Control names of the protocol form.
const (
	FieldPrefix  = "prefix"
	FieldCounter = "counter"
	FieldSuffix  = "suffix"
)

// DefaultPrefix is the prefix a protocol starts with and resets to.
const DefaultPrefix = "PRE"

// Protocol is a document number made of a fixed prefix, a counter minted
// by the backend and an optional suffix.
type Protocol struct {
	form   *form.Form
	reader backend.Reader

	Prefix  *form.Field
	Counter *form.Field
	Suffix  *form.Field
}

// NewProtocol fetches a fresh counter and builds the form around it.
func NewProtocol(ctx context.Context, r backend.Reader, opts ...form.Option) (*Protocol, error) {
	c, err := r.FetchFreshCounter(ctx)
	if err != nil {
		return nil, fmt.Errorf("init protocol form: %w", err)
	}
	p := &Protocol{
		reader:  r,
		Prefix:  form.NewField(FieldPrefix, DefaultPrefix, form.WithNonNullable(), form.WithValidators(validator.Required())),
		Counter: form.NewField(FieldCounter, c.Counter, form.WithNonNullable(), form.WithValidators(validator.Required())),
		Suffix:  form.NewField(FieldSuffix, nil),
	}
	p.form = form.New(form.NewGroup(form.RootPath, []form.Control{p.Prefix, p.Counter, p.Suffix}), opts...)
	return p, nil
}

// Reset starts a new protocol: the prefix returns to DefaultPrefix, the
// suffix is cleared and the counter takes a freshly minted value. On a
// failed fetch the form is left as it was.
func (p *Protocol) Reset(ctx context.Context) error {
	c, err := p.reader.FetchFreshCounter(ctx)
	if err != nil {
		return fmt.Errorf("reset protocol form: %w", err)
	}
	return p.form.Root().Reset(map[string]any{FieldCounter: c.Counter})
}

// Form returns the underlying form.
func (p *Protocol) Form() *form.Form { return p.form }

// Summary returns the form status and its rendered errors.
func (p *Protocol) Summary() messages.Summary { return Catalog.Summarize(p.form.Root()) }

func (p *Protocol) Close() { p.form.Close() }
