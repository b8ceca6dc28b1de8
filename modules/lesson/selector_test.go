package lesson_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/modules/lesson"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

func TestTitleSelector(t *testing.T) {
	t.Parallel()

	t.Run("selection becomes the field value", func(t *testing.T) {
		t.Parallel()
		l := newLesson(t)

		require.NoError(t, l.Selector.Select("Lesson 3"))
		assert.Equal(t, "Lesson 3", l.Title.Value())
		assert.True(t, l.Title.Dirty())
		assert.NotContains(t, l.Messages(), "Title is required")

		require.NoError(t, l.Selector.Clear())
		assert.Equal(t, "", l.Title.Value())
		assert.Contains(t, l.Messages(), "Title is required")
	})

	t.Run("field writes show in the selector", func(t *testing.T) {
		t.Parallel()
		l := newLesson(t)

		require.NoError(t, l.Title.SetValue("Lesson 2"))
		assert.Equal(t, "Lesson 2", l.Selector.Selected())
		require.NoError(t, l.Title.Reset())
		assert.Equal(t, "", l.Selector.Selected())
	})

	t.Run("unknown titles", func(t *testing.T) {
		t.Parallel()
		l := newLesson(t)

		assert.ErrorIs(t, l.Selector.Select("Lesson 9"), lesson.ErrUnknownTitle)
		assert.Equal(t, "", l.Title.Value())

		require.NoError(t, l.Title.SetValue("Lesson 9"))
		assert.True(t, l.Title.HasValidator(form.AccessorValidatorID))
		assert.Equal(t, map[string]any{"options": lesson.Titles}, l.Title.GetError(lesson.CodeUnknownTitle))
		assert.Contains(t, l.Messages(), "Title must be one of: Lesson 1, Lesson 2, Lesson 3, Lesson 4")
	})

	t.Run("read only while the field is disabled", func(t *testing.T) {
		t.Parallel()
		l := newLesson(t)

		l.Title.Disable()
		assert.ErrorIs(t, l.Selector.Select("Lesson 1"), lesson.ErrSelectorDisabled)
		l.Title.Enable()
		require.NoError(t, l.Selector.Select("Lesson 1"))
		assert.Equal(t, "Lesson 1", l.Title.Value())
	})

	t.Run("search", func(t *testing.T) {
		t.Parallel()
		s := lesson.NewTitleSelector("Go basics", "Go concurrency", "SQL")

		assert.Equal(t, []string{"Go basics", "Go concurrency", "SQL"}, s.Search(""))
		assert.Equal(t, []string{"Go basics", "Go concurrency"}, s.Search(" GO "))

		s.WriteValue("Go basics")
		assert.Equal(t, []string{"Go concurrency"}, s.Search("go"), "the current pick is not offered again")
		assert.Empty(t, s.Search("rust"))
	})

	t.Run("standalone validate", func(t *testing.T) {
		t.Parallel()
		s := lesson.NewTitleSelector()
		assert.Nil(t, s.Validate(validator.Leaf("title", "")))
		assert.Nil(t, s.Validate(validator.Leaf("title", "Lesson 4")))
		assert.True(t, s.Validate(validator.Leaf("title", "lesson 4")).Has(lesson.CodeUnknownTitle))
	})
}
