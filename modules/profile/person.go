package profile

import (
	"context"
	"embed"
	"fmt"
	"slices"

	"github.com/dmitrymomot/formkit/pkg/backend"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/messages"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

//go:embed messages.yaml
var catalogFS embed.FS

// Catalog holds the display text of person and protocol errors.
var Catalog = messages.MustLoad(catalogFS, "messages.yaml")

// Control names of the person form.
const (
	FieldTitle     = "title"
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldNickname  = "nickname"
)

// Person is a personal data form whose title is seeded from the backend.
type Person struct {
	form    *form.Form
	options []string

	Title     *form.Field
	FirstName *form.Field
	LastName  *form.Field
	Nickname  *form.Field
}

// NewPerson fetches the initial config and builds the form around it.
// No form exists when the fetch fails.
func NewPerson(ctx context.Context, r backend.Reader, opts ...form.Option) (*Person, error) {
	cfg, err := r.FetchInitialConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("init person form: %w", err)
	}
	p := &Person{
		options:   slices.Clone(cfg.Options),
		Title:     form.NewField(FieldTitle, cfg.DefaultValue, form.WithNonNullable(), form.WithValidators(validator.Required())),
		FirstName: form.NewField(FieldFirstName, "", form.WithValidators(validator.Required())),
		LastName:  form.NewField(FieldLastName, "", form.WithValidators(validator.Required())),
		Nickname:  form.NewField(FieldNickname, ""),
	}
	p.form = form.New(form.NewGroup(form.RootPath, []form.Control{
		p.Title, p.FirstName, p.LastName, p.Nickname,
	}), opts...)
	return p, nil
}

// Form returns the underlying form.
func (p *Person) Form() *form.Form { return p.form }

// Options returns the titles offered by the backend.
func (p *Person) Options() []string { return slices.Clone(p.options) }

// Summary returns the form status and its rendered errors.
func (p *Person) Summary() messages.Summary { return Catalog.Summarize(p.form.Root()) }

func (p *Person) Close() { p.form.Close() }
