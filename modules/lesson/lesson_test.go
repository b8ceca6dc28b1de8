package lesson_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dmitrymomot/formkit/modules/lesson"
	"github.com/dmitrymomot/formkit/pkg/backend"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func config() lesson.Config {
	return lesson.Config{
		Reader: backend.NewMemory(backend.WithDelays(0, 0, 0)),
		Settle: 5 * time.Millisecond,
	}
}

func newLesson(t *testing.T) *lesson.Lesson {
	t.Helper()
	l := lesson.New(config())
	t.Cleanup(l.Close)
	return l
}

func settle(t *testing.T, l *lesson.Lesson) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, l.Form().WaitIdle(ctx))
}

func date(s string) time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestNew(t *testing.T) {
	t.Parallel()
	l := newLesson(t)

	assert.Equal(t, form.StatusInvalid, l.Form().Status())
	assert.False(t, l.Period.Enabled())
	assert.Equal(t, []string{
		"Title is required",
		"Nickname is required",
		"Username is required",
	}, l.Messages())
	assert.Empty(t, l.Warnings())
	assert.NotContains(t, l.Form().Root().Value(), lesson.FieldPeriod)
}

func TestCompletedTogglesPeriod(t *testing.T) {
	t.Parallel()
	l := newLesson(t)

	require.NoError(t, l.Completed.SetValue(true))
	assert.True(t, l.Period.Enabled())
	assert.Contains(t, l.Messages(), "From Date is required")
	assert.Contains(t, l.Messages(), "To Date is required")
	assert.Contains(t, l.Form().Root().Value(), lesson.FieldPeriod)

	require.NoError(t, l.Completed.SetValue(false))
	assert.False(t, l.Period.Enabled())
	assert.Equal(t, form.StatusDisabled, l.Period.Status())
	assert.Empty(t, l.Period.Errors())
	assert.NotContains(t, l.Messages(), "From Date is required")
}

func TestAutomaticPeriod(t *testing.T) {
	t.Parallel()

	t.Run("manual toggle", func(t *testing.T) {
		t.Parallel()
		cfg := config()
		cfg.ManualPeriod = true
		l := lesson.New(cfg)
		t.Cleanup(l.Close)
		assert.False(t, l.Automatic())

		require.NoError(t, l.Completed.SetValue(true))
		settle(t, l)
		assert.False(t, l.Period.Enabled(), "completed is ignored while manual")

		l.TogglePeriod()
		assert.True(t, l.Period.Enabled())
		assert.Contains(t, l.Messages(), "From Date is required")
		l.TogglePeriod()
		assert.False(t, l.Period.Enabled())
	})

	t.Run("switching automatic on waits for the next change", func(t *testing.T) {
		t.Parallel()
		cfg := config()
		cfg.ManualPeriod = true
		l := lesson.New(cfg)
		t.Cleanup(l.Close)

		require.NoError(t, l.Completed.SetValue(true))
		l.SetAutomatic(true)
		assert.False(t, l.Period.Enabled())

		require.NoError(t, l.Completed.SetValue(false))
		require.NoError(t, l.Completed.SetValue(true))
		settle(t, l)
		assert.True(t, l.Period.Enabled())
	})

	t.Run("switching automatic off keeps the period", func(t *testing.T) {
		t.Parallel()
		l := newLesson(t)
		assert.True(t, l.Automatic())

		require.NoError(t, l.Completed.SetValue(true))
		l.SetAutomatic(false)
		require.NoError(t, l.Completed.SetValue(false))
		settle(t, l)
		assert.True(t, l.Period.Enabled())
	})
}

func TestPeriodDateOrder(t *testing.T) {
	t.Parallel()
	l := newLesson(t)
	require.NoError(t, l.Completed.SetValue(true))

	require.NoError(t, l.FromDate.SetValue(date("2024-09-25")))
	require.NoError(t, l.ToDate.SetValue(date("2021-09-01")))

	assert.Equal(t, form.StatusInvalid, l.Period.Status())
	assert.True(t, l.Period.HasError(validator.CodeToDateBeforeFromDate))
	assert.False(t, l.FromDate.HasError(validator.CodeRequired))
	assert.False(t, l.ToDate.HasError(validator.CodeRequired))
	assert.Contains(t, l.Messages(), "To Date must be after From Date")

	require.NoError(t, l.ToDate.SetValue(date("2024-09-26")))
	assert.Equal(t, form.StatusValid, l.Period.Status())
}

func TestUniqueness(t *testing.T) {
	t.Parallel()

	t.Run("taken nickname", func(t *testing.T) {
		t.Parallel()
		l := newLesson(t)
		require.NoError(t, l.Nickname.SetValue("pippo"))
		assert.Equal(t, form.StatusPending, l.Nickname.Status())
		settle(t, l)

		assert.Equal(t, map[string]any{"suggestions": []string{"pippo123", "pippo_bis"}},
			l.Nickname.GetError(validator.UniquenessCode(lesson.FieldNickname)))
		assert.Contains(t, l.Messages(), "Nickname already exists. You could use: pippo123, pippo_bis")
	})

	t.Run("free nickname", func(t *testing.T) {
		t.Parallel()
		l := newLesson(t)
		require.NoError(t, l.Nickname.SetValue("pippo123"))
		settle(t, l)
		assert.Equal(t, form.StatusValid, l.Nickname.Status())
	})

	t.Run("taken username case insensitive", func(t *testing.T) {
		t.Parallel()
		l := newLesson(t)
		require.NoError(t, l.Username.SetValue("Pluto"))
		settle(t, l)
		assert.Contains(t, l.Messages(), "Username already exists. You could use: Pluto123, Pluto_bis")
		assert.Equal(t, []string{lesson.UsernameTooShort}, l.Warnings())
	})
}

func TestUsernameWarning(t *testing.T) {
	t.Parallel()
	l := newLesson(t)

	require.NoError(t, l.Username.SetValue("minnie"))
	assert.Equal(t, []string{lesson.UsernameTooShort}, l.Warnings())

	require.NoError(t, l.Username.SetValue("minnie_mouse"))
	assert.Empty(t, l.Warnings())

	require.NoError(t, l.Username.SetValue("ab"))
	require.NoError(t, l.Username.SetValue(""))
	assert.Empty(t, l.Warnings(), "cleared when the username becomes empty")
	settle(t, l)
}

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("valid input submits", func(t *testing.T) {
		t.Parallel()
		l := newLesson(t)
		require.NoError(t, l.Apply(lesson.Input{
			Title:     "Lesson 1",
			Completed: true,
			FromDate:  "2024-09-01",
			ToDate:    "2024-09-25",
			Nickname:  "topolino",
			Username:  "minnie_mouse",
		}))
		settle(t, l)

		require.NoError(t, l.Form().Submit())
		assert.Empty(t, l.Messages())
		assert.Equal(t, map[string]any{
			lesson.FieldTitle:     "Lesson 1",
			lesson.FieldCompleted: true,
			lesson.FieldPeriod: map[string]any{
				lesson.FieldFromDate: date("2024-09-01"),
				lesson.FieldToDate:   date("2024-09-25"),
			},
			lesson.FieldNickname: "topolino",
			lesson.FieldUsername: "minnie_mouse",
		}, l.Form().Root().Value())
	})

	t.Run("invalid date leaves form untouched", func(t *testing.T) {
		t.Parallel()
		l := newLesson(t)
		err := l.Apply(lesson.Input{Title: "Lesson 2", Completed: true, FromDate: "25/09/2024"})
		assert.ErrorIs(t, err, lesson.ErrInvalidDate)
		assert.Equal(t, "", l.Title.Value())
		assert.False(t, l.Period.Enabled())
	})

	t.Run("submit lists errors by path", func(t *testing.T) {
		t.Parallel()
		l := newLesson(t)
		require.NoError(t, l.Apply(lesson.Input{Completed: true, FromDate: "2024-09-25", ToDate: "2021-09-01", Nickname: "pippo", Username: "minnie_mouse"}))
		settle(t, l)

		verrs := validator.ExtractValidationErrors(l.Form().Submit())
		require.NotNil(t, verrs)
		assert.Equal(t, []string{"root.title", "root.period", "root.nickname"}, verrs.Fields())
	})

	t.Run("unknown title leaves form untouched", func(t *testing.T) {
		t.Parallel()
		l := newLesson(t)
		err := l.Apply(lesson.Input{Title: "Lesson 9", Completed: true, Nickname: "topolino"})
		assert.ErrorIs(t, err, lesson.ErrUnknownTitle)
		assert.Equal(t, "", l.Title.Value())
		assert.Equal(t, "", l.Nickname.Value())
		assert.False(t, l.Period.Enabled())
	})
}

func TestCloseStopsChecks(t *testing.T) {
	t.Parallel()
	l := lesson.New(lesson.Config{
		Reader: backend.NewMemory(backend.WithDelays(0, 0, time.Second)),
		Settle: time.Millisecond,
	})
	require.NoError(t, l.Nickname.SetValue("pippo"))
	l.Close()

	assert.ErrorIs(t, l.Nickname.SetValue("pluto"), form.ErrClosed)
	assert.False(t, l.Nickname.HasError(validator.UniquenessCode(lesson.FieldNickname)))
}
