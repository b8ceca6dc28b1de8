package report_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/report"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

func lessonTree() *form.Group {
	return form.NewGroup("lesson", []form.Control{
		form.NewField("title", "", form.WithValidators(validator.Required())),
		form.NewGroup("period", []form.Control{
			form.NewField("fromDate", time.Date(2024, 9, 25, 0, 0, 0, 0, time.UTC), form.WithValidators(validator.Required())),
			form.NewField("toDate", time.Date(2021, 9, 1, 0, 0, 0, 0, time.UTC), form.WithValidators(validator.Required())),
		}, form.WithValidators(validator.DateOrder("fromDate", "toDate"))),
		form.NewField("username", "mario",
			form.WithValidators(validator.Required()),
			form.WithWarnings(validator.MinLengthWarning(8, "Username should be at least 8 characters long")),
		),
		form.NewArray("tags", []form.Control{form.NewField("tag", "go")}),
	})
}

func TestCollect(t *testing.T) {
	t.Parallel()

	r := report.Collect(lessonTree())

	want := report.Report{Entries: []report.Entry{
		{Path: "root", Outcomes: []validator.Outcome{}},
		{Path: "root.title", Outcomes: []validator.Outcome{{"required": true}}},
		{Path: "root.period", Outcomes: []validator.Outcome{{"toDateIsPreviousThanFromDate": true}}},
		{Path: "root.period.fromDate", Outcomes: []validator.Outcome{}},
		{Path: "root.period.toDate", Outcomes: []validator.Outcome{}},
		{Path: "root.username", Outcomes: []validator.Outcome{}},
		{Path: "root.tags", Outcomes: []validator.Outcome{}},
		{Path: "root.tags.0", Outcomes: []validator.Outcome{}},
	}}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("Collect() mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, r.HasErrors())
}

func TestCollectEmptyTreeKeepsInventory(t *testing.T) {
	t.Parallel()

	r := report.Collect(form.NewGroup("root", []form.Control{
		form.NewField("a", "x"),
		form.NewGroup("g", []form.Control{form.NewField("b", 1)}),
	}))

	assert.Equal(t, []string{"root", "root.a", "root.g", "root.g.b"}, r.Paths())
	assert.False(t, r.HasErrors())
	for path, outs := range r.Map() {
		assert.NotNil(t, outs, path)
		assert.Empty(t, outs, path)
	}
}

func TestReportGet(t *testing.T) {
	t.Parallel()

	r := report.Collect(lessonTree())

	outs, err := r.Get("root.title")
	require.NoError(t, err)
	require.Len(t, outs, 1)
	assert.True(t, outs[0].Has(validator.CodeRequired))

	_, err = r.Get("root.missing")
	assert.ErrorIs(t, err, report.ErrPathNotFound)
}

func TestValidationErrors(t *testing.T) {
	t.Parallel()

	errs := report.ValidationErrors(report.Collect(lessonTree()))
	assert.Equal(t, []string{"root.title", "root.period"}, errs.Fields())
	assert.Equal(t, "toDateIsPreviousThanFromDate", errs[1].TranslationKey)
}

func TestCollectWarnings(t *testing.T) {
	t.Parallel()

	root := lessonTree()
	assert.Equal(t, []string{"Username should be at least 8 characters long"}, report.CollectWarnings(root))

	root.Control("username").Disable()
	assert.Empty(t, report.CollectWarnings(root))
}
