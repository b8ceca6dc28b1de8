package lesson

import (
	"embed"
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/formkit/pkg/backend"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/messages"
	"github.com/dmitrymomot/formkit/pkg/report"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

//go:embed messages.yaml
var catalogFS embed.FS

// Catalog holds the display text of every lesson error.
var Catalog = messages.MustLoad(catalogFS, "messages.yaml")

// Titles are the suggested lesson titles.
var Titles = []string{"Lesson 1", "Lesson 2", "Lesson 3", "Lesson 4"}

// Control names.
const (
	FieldTitle     = "title"
	FieldCompleted = "completed"
	FieldPeriod    = "period"
	FieldFromDate  = "fromDate"
	FieldToDate    = "toDate"
	FieldNickname  = "nickname"
	FieldUsername  = "username"
)

// UsernameMinLength is the length below which a username gets a warning.
const UsernameMinLength = 8

// UsernameTooShort is the warning shown for short usernames.
const UsernameTooShort = "Username should be at least 8 characters long"

// DefaultSettle is how long the lesson waits after the last keystroke
// before checking a nickname or username.
const DefaultSettle = 100 * time.Millisecond

// Config wires the lesson to its uniqueness backend.
type Config struct {
	Reader backend.Reader
	Settle time.Duration
	// ManualPeriod starts the lesson with the period left alone when the
	// completed flag changes; see SetAutomatic.
	ManualPeriod bool
}

// Lesson is the lesson form: a required title, a completed flag that
// enables the period, and nickname and username checked for uniqueness.
type Lesson struct {
	form *form.Form

	Title     *form.Field
	Completed *form.Field
	Period    *form.Group
	FromDate  *form.Field
	ToDate    *form.Field
	Nickname  *form.Field
	Username  *form.Field

	// Selector is the title field's value accessor.
	Selector *TitleSelector

	automatic   atomic.Bool
	unsubscribe func()
}

// New builds the form. The period starts disabled and, unless
// cfg.ManualPeriod is set, follows the completed flag.
func New(cfg Config, opts ...form.Option) *Lesson {
	if cfg.Settle <= 0 {
		cfg.Settle = DefaultSettle
	}
	unique := backend.UniquenessFunc(cfg.Reader)

	l := &Lesson{
		Title:     form.NewField(FieldTitle, "", form.WithValidators(validator.Required())),
		Completed: form.NewField(FieldCompleted, false, form.WithNonNullable(), form.WithValidators(validator.Required())),
		FromDate:  form.NewField(FieldFromDate, nil, form.WithValidators(validator.Required())),
		ToDate:    form.NewField(FieldToDate, nil, form.WithValidators(validator.Required())),
		Nickname: form.NewField(FieldNickname, "",
			form.WithValidators(validator.Required()),
			form.WithAsyncValidators(validator.Uniqueness(FieldNickname, unique, cfg.Settle)),
		),
		Username: form.NewField(FieldUsername, "",
			form.WithValidators(validator.Required()),
			form.WithAsyncValidators(validator.Uniqueness(FieldUsername, unique, cfg.Settle)),
			form.WithWarnings(validator.MinLengthWarning(UsernameMinLength, UsernameTooShort)),
		),
	}
	l.Period = form.NewGroup(FieldPeriod, []form.Control{l.FromDate, l.ToDate},
		form.WithValidators(validator.DateOrder(FieldFromDate, FieldToDate)),
		form.WithDisabled(),
	)
	root := form.NewGroup(form.RootPath, []form.Control{
		l.Title, l.Completed, l.Period, l.Nickname, l.Username,
	})

	l.form = form.New(root, opts...)
	l.Selector = NewTitleSelector()
	l.Title.Attach(l.Selector)
	l.automatic.Store(!cfg.ManualPeriod)
	l.unsubscribe = l.Completed.OnChange(l.followCompleted)
	return l
}

// SetAutomatic turns following the completed flag on or off. Turning it
// on leaves the period as it is until completed changes again.
func (l *Lesson) SetAutomatic(on bool) { l.automatic.Store(on) }

func (l *Lesson) Automatic() bool { return l.automatic.Load() }

// TogglePeriod enables a disabled period and disables an enabled one.
func (l *Lesson) TogglePeriod() {
	if l.Period.Enabled() {
		l.Period.Disable()
	} else {
		l.Period.Enable()
	}
}

func (l *Lesson) followCompleted(ev form.Event) {
	if ev.Kind != form.EventValueChanged || !l.automatic.Load() {
		return
	}
	completed, _ := ev.Value.(bool)
	if completed == l.Period.Enabled() {
		return
	}
	if completed {
		l.Period.Enable()
	} else {
		l.Period.Disable()
	}
}

// Form returns the underlying form.
func (l *Lesson) Form() *form.Form { return l.form }

// Messages renders the current errors in display order.
func (l *Lesson) Messages() []string {
	return Catalog.Render(report.Collect(l.form.Root()))
}

// Warnings returns the non-blocking hints, such as a short username.
func (l *Lesson) Warnings() []string {
	return report.CollectWarnings(l.form.Root())
}

// Summary returns status, messages, warnings and error codes together.
func (l *Lesson) Summary() messages.Summary {
	return Catalog.Summarize(l.form.Root())
}

// Close stops following the completed flag and closes the form.
func (l *Lesson) Close() {
	l.unsubscribe()
	l.form.Close()
}
