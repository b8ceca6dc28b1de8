package address

import (
	"embed"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/messages"
	"github.com/dmitrymomot/formkit/pkg/report"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

//go:embed messages.yaml editor_messages.yaml
var catalogFS embed.FS

var (
	// Catalog holds the display text of the outer form errors.
	Catalog = messages.MustLoad(catalogFS, "messages.yaml")
	// EditorCatalog holds the display text of the editor's inner fields.
	EditorCatalog = messages.MustLoad(catalogFS, "editor_messages.yaml")
)

// Control names of the outer form.
const (
	FieldAddress  = "address"
	FieldUsername = "username"
)

// Composer is a form whose address field is edited through an Editor.
type Composer struct {
	form *form.Form

	Address  *form.Field
	Username *form.Field
	Editor   *Editor
}

// New builds the outer form and attaches a fresh editor to its address
// field. opts are applied to both forms.
func New(opts ...form.Option) *Composer {
	c := &Composer{
		Address:  form.NewField(FieldAddress, nil, form.WithValidators(Required(), NoMainStreet())),
		Username: form.NewField(FieldUsername, "", form.WithValidators(validator.Required())),
		Editor:   NewEditor(opts...),
	}
	c.form = form.New(form.NewGroup(form.RootPath, []form.Control{c.Address, c.Username}), opts...)
	c.Address.Attach(c.Editor)
	return c
}

// Form returns the outer form.
func (c *Composer) Form() *form.Form { return c.form }

// Messages renders the outer errors followed by the editor's own.
func (c *Composer) Messages() []string {
	out := Catalog.Render(report.Collect(c.form.Root()))
	return append(out, EditorCatalog.Render(c.Editor.Errors())...)
}

// Summary returns the outer form's status, messages and error codes.
func (c *Composer) Summary() messages.Summary {
	s := Catalog.Summarize(c.form.Root())
	if msgs := c.Messages(); len(msgs) > 0 {
		s.Messages = msgs
	}
	return s
}

// Close closes the outer form first so no value reaches the editor after
// it is gone.
func (c *Composer) Close() {
	c.form.Close()
	c.Editor.Close()
}
