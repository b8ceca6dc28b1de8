package messages_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/messages"
	"github.com/dmitrymomot/formkit/pkg/report"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

const catalogYAML = `
messages:
  - path: root.username
    code: required
    text: Username is required
  - path: root.username
    code: usernameAlreadyExists
    text: "Username already exists. You could use: %{suggestions}"
  - path: root.period
    code: toDateIsPreviousThanFromDate
    text: To Date must be after From Date
  - path: root.address
    code: required
    text: "Address is required. You should complete: %{items}"
`

func TestParseAndRender(t *testing.T) {
	t.Parallel()

	c, err := messages.Parse([]byte(catalogYAML))
	require.NoError(t, err)
	require.Len(t, c.Messages(), 4)

	r := report.Report{Entries: []report.Entry{
		{Path: "root", Outcomes: []validator.Outcome{}},
		{Path: "root.period", Outcomes: []validator.Outcome{{"toDateIsPreviousThanFromDate": true}}},
		{Path: "root.username", Outcomes: []validator.Outcome{{
			"usernameAlreadyExists": map[string]any{"suggestions": []string{"pippo123", "pippo_bis"}},
			"somethingUnknown":      true,
		}}},
		{Path: "root.address", Outcomes: []validator.Outcome{{"required": []string{"street"}}}},
	}}

	assert.Equal(t, []string{
		"To Date must be after From Date",
		"Username already exists. You could use: pippo123, pippo_bis",
		"Address is required. You should complete: street",
	}, c.Render(r))
}

func TestText(t *testing.T) {
	t.Parallel()

	c, err := messages.Parse([]byte(catalogYAML))
	require.NoError(t, err)

	text, ok := c.Text("root.username", "required", true)
	require.True(t, ok)
	assert.Equal(t, "Username is required", text)

	_, ok = c.Text("root.username", "unknown", true)
	assert.False(t, ok)
}

func TestFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a, b and %{missing}", messages.Format("%{items} and %{missing}", map[string]any{"items": []string{"a", "b"}}))
	assert.Equal(t, "count 3", messages.Format("count %{n}", map[string]any{"n": 3}))
	assert.Equal(t, "x, 1", messages.Format("%{v}", map[string]any{"v": []any{"x", 1}}))
}

func TestInvalidCatalog(t *testing.T) {
	t.Parallel()

	_, err := messages.Parse([]byte("messages: [oops"))
	assert.ErrorIs(t, err, messages.ErrFailedToParseYAML)

	_, err = messages.New(messages.Message{Path: "root.a", Code: "required"})
	assert.ErrorIs(t, err, messages.ErrInvalidCatalog)

	dup := messages.Message{Path: "root.a", Code: "required", Text: "A is required"}
	_, err = messages.New(dup, dup)
	assert.ErrorIs(t, err, messages.ErrInvalidCatalog)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{"messages.yaml": {Data: []byte(catalogYAML)}}
	c, err := messages.Load(fsys, "messages.yaml")
	require.NoError(t, err)
	assert.Len(t, c.Messages(), 4)

	_, err = messages.Load(fsys, "missing.yaml")
	assert.ErrorIs(t, err, messages.ErrLoadingCatalog)
	assert.Panics(t, func() { messages.MustLoad(fsys, "missing.yaml") })
}

func TestSummarize(t *testing.T) {
	t.Parallel()
	c, err := messages.Parse([]byte(catalogYAML))
	require.NoError(t, err)

	username := form.NewField("username", "",
		form.WithValidators(validator.Required()),
		form.WithWarnings(validator.MinLengthWarning(8, "Username should be at least 8 characters long")),
	)
	root := form.NewGroup("root", []form.Control{username, form.NewField("nickname", "")})

	s := c.Summarize(root)
	assert.Equal(t, messages.Summary{
		Status:   "invalid",
		Valid:    false,
		Messages: []string{"Username is required"},
		Warnings: []string{},
		Errors:   map[string][]string{"root.username": {"required"}},
	}, s)

	require.NoError(t, username.SetValue("pippo"))
	s = c.Summarize(root)
	assert.Equal(t, messages.Summary{
		Status:   "valid",
		Valid:    true,
		Messages: []string{},
		Warnings: []string{"Username should be at least 8 characters long"},
		Errors:   map[string][]string{},
	}, s)
}
