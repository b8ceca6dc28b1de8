package form_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

func date(s string) time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return d
}

func newPeriod(opts ...form.ControlOption) *form.Group {
	opts = append(opts, form.WithValidators(validator.DateOrder("fromDate", "toDate")))
	return form.NewGroup("period", []form.Control{
		form.NewField("fromDate", nil, form.WithValidators(validator.Required())),
		form.NewField("toDate", nil, form.WithValidators(validator.Required())),
	}, opts...)
}

func TestGroupDateOrder(t *testing.T) {
	t.Parallel()

	t.Run("to date before from date", func(t *testing.T) {
		period := newPeriod()
		require.NoError(t, period.Patch(map[string]any{
			"fromDate": date("2024-09-25"),
			"toDate":   date("2021-09-01"),
		}))

		assert.Equal(t, form.StatusInvalid, period.Status())
		assert.True(t, period.HasError(validator.CodeToDateBeforeFromDate))
		assert.False(t, period.HasErrorAt(validator.CodeRequired, "fromDate"))
		assert.False(t, period.HasErrorAt(validator.CodeRequired, "toDate"))
	})

	t.Run("ordered dates pass", func(t *testing.T) {
		period := newPeriod()
		require.NoError(t, period.Patch(map[string]any{
			"fromDate": date("2021-09-01"),
			"toDate":   date("2024-09-25"),
		}))
		assert.True(t, period.Valid())
		assert.Nil(t, period.Errors())
	})

	t.Run("missing from date fails", func(t *testing.T) {
		period := newPeriod()
		require.NoError(t, period.Patch(map[string]any{"toDate": date("2024-09-25")}))
		assert.True(t, period.HasError(validator.CodeToDateBeforeFromDate))
		assert.True(t, period.HasErrorAt(validator.CodeRequired, "fromDate"))
	})
}

func TestGroupAggregatesChildren(t *testing.T) {
	t.Parallel()

	title := form.NewField("title", "", form.WithValidators(validator.Required()))
	root := form.NewGroup("lesson", []form.Control{title, form.NewField("notes", "")})
	assert.Equal(t, form.StatusInvalid, root.Status())
	assert.Nil(t, root.Errors(), "a group's own errors exclude its children")

	require.NoError(t, title.SetValue("Reactive forms"))
	assert.Equal(t, form.StatusValid, root.Status())
	assert.True(t, root.Dirty())
	assert.Equal(t, "title", title.Path())
	assert.Empty(t, root.Path())
}

func TestGroupPaths(t *testing.T) {
	t.Parallel()

	root := form.NewGroup("lesson", []form.Control{newPeriod()})

	c, err := root.Get("period.fromDate")
	require.NoError(t, err)
	assert.Equal(t, "fromDate", c.Name())
	assert.Equal(t, "period.fromDate", c.Path())

	_, err = root.Get("period.missing")
	assert.ErrorIs(t, err, form.ErrPathNotFound)
	_, err = root.Get("")
	assert.ErrorIs(t, err, form.ErrPathNotFound)

	assert.Panics(t, func() { root.Control("nope") })
	assert.Panics(t, func() { root.HasErrorAt(validator.CodeRequired, "period.nope") })
}

func TestNewGroupContractViolations(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		form.NewGroup("root", []form.Control{form.NewField("a", 1), form.NewField("a", 2)})
	})

	child := form.NewField("a", 1)
	form.NewGroup("first", []form.Control{child})
	assert.Panics(t, func() { form.NewGroup("second", []form.Control{child}) })
}

func TestGroupDisabledChildren(t *testing.T) {
	t.Parallel()

	period := newPeriod(form.WithDisabled())
	root := form.NewGroup("lesson", []form.Control{
		form.NewField("title", "Forms"),
		period,
	})

	assert.Equal(t, form.StatusDisabled, period.Status())
	assert.True(t, root.Valid(), "disabled children never make the parent invalid")
	assert.Equal(t, map[string]any{"title": "Forms"}, root.Value())
	assert.Contains(t, root.RawValue(), "period")

	period.Enable()
	assert.Equal(t, form.StatusInvalid, root.Status())
	assert.True(t, root.HasErrorAt(validator.CodeRequired, "period.fromDate"))
	assert.Contains(t, root.Value(), "period")

	period.Disable()
	assert.True(t, root.Valid())
	assert.False(t, root.HasErrorAt(validator.CodeRequired, "period.fromDate"))
}

func TestGroupResetAndPatch(t *testing.T) {
	t.Parallel()

	root := form.NewGroup("protocol", []form.Control{
		form.NewField("prefix", "PRE", form.WithNonNullable()),
		form.NewField("counter", ""),
		form.NewField("suffix", ""),
	})

	require.NoError(t, root.Patch(map[string]any{"prefix": "ABC", "suffix": "Z"}))
	assert.Equal(t, map[string]any{"prefix": "ABC", "counter": "", "suffix": "Z"}, root.Value())
	assert.True(t, root.Dirty())

	require.NoError(t, root.Reset(map[string]any{"counter": "42"}))
	assert.Equal(t, map[string]any{"prefix": "PRE", "counter": "42", "suffix": nil}, root.Value())
	assert.False(t, root.Dirty())

	err := root.Patch(map[string]any{"missing": 1})
	assert.ErrorIs(t, err, form.ErrPathNotFound)
}

func TestGroupAddRemove(t *testing.T) {
	t.Parallel()

	root := form.NewGroup("root", []form.Control{form.NewField("a", "x")})
	b := form.NewField("b", "", form.WithValidators(validator.Required()))

	require.NoError(t, root.Add(b))
	assert.Equal(t, form.StatusInvalid, root.Status())
	assert.Equal(t, "b", b.Path())
	assert.ErrorIs(t, root.Add(form.NewField("a", "dup")), form.ErrDuplicateChild)
	assert.ErrorIs(t, root.Add(b), form.ErrAlreadyAttached)

	require.NoError(t, root.Remove("b"))
	assert.True(t, root.Valid())
	assert.Empty(t, b.Path())
	assert.True(t, b.HasError(validator.CodeRequired), "a removed control keeps validating on its own")
	assert.ErrorIs(t, root.Remove("b"), form.ErrPathNotFound)
}

func TestArray(t *testing.T) {
	t.Parallel()

	lesson := func(title string) form.Control {
		return form.NewGroup("lesson", []form.Control{
			form.NewField("title", title, form.WithValidators(validator.Required())),
		})
	}
	items := form.NewArray("lessons", []form.Control{lesson("one"), lesson("two")})
	root := form.NewGroup("course", []form.Control{items})

	assert.Equal(t, 2, items.Len())
	assert.True(t, root.Valid())
	c, err := root.Get("lessons.1.title")
	require.NoError(t, err)
	assert.Equal(t, "two", c.Value())
	assert.Equal(t, "lessons.1.title", c.Path())

	require.NoError(t, items.Push(lesson("")))
	assert.Equal(t, form.StatusInvalid, root.Status())
	assert.True(t, root.HasErrorAt(validator.CodeRequired, "lessons.2.title"))

	require.NoError(t, items.RemoveAt(0))
	assert.Equal(t, 2, items.Len())
	first, err := items.At(0)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"title": "two"}, first.Value())
	assert.Equal(t, "lessons.1", root.Control("lessons.1").Path())
	_, err = root.Get("lessons.2")
	assert.ErrorIs(t, err, form.ErrPathNotFound)

	assert.ErrorIs(t, items.RemoveAt(5), form.ErrIndexOutOfRange)
	_, err = items.At(-1)
	assert.ErrorIs(t, err, form.ErrIndexOutOfRange)
	assert.Equal(t, []any{map[string]any{"title": "two"}, map[string]any{"title": ""}}, items.Value())
}
