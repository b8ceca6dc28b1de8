package profile_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dmitrymomot/formkit/modules/profile"
	"github.com/dmitrymomot/formkit/pkg/backend"
	"github.com/dmitrymomot/formkit/pkg/form"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var errDown = errors.New("backend down")

type downReader struct{}

func (downReader) FetchInitialConfig(context.Context) (backend.InitialConfig, error) {
	return backend.InitialConfig{}, errors.Join(backend.ErrFetchConfig, errDown)
}

func (downReader) FetchFreshCounter(context.Context) (backend.Counter, error) {
	return backend.Counter{}, errors.Join(backend.ErrFetchCounter, errDown)
}

func (downReader) CheckUniqueness(context.Context, string) (backend.Uniqueness, error) {
	return backend.Uniqueness{}, errors.Join(backend.ErrCheckUniqueness, errDown)
}

// flakyReader serves counters from its memory reader until fail is set.
type flakyReader struct {
	*backend.Memory
	fail bool
}

func (r *flakyReader) FetchFreshCounter(ctx context.Context) (backend.Counter, error) {
	if r.fail {
		return downReader{}.FetchFreshCounter(ctx)
	}
	return r.Memory.FetchFreshCounter(ctx)
}

func memory() *backend.Memory {
	return backend.NewMemory(backend.WithDelays(0, 0, 0))
}

func TestNewPerson(t *testing.T) {
	t.Parallel()

	t.Run("seeded from config", func(t *testing.T) {
		t.Parallel()
		p, err := profile.NewPerson(context.Background(), memory())
		require.NoError(t, err)
		t.Cleanup(p.Close)

		assert.Equal(t, "Mr.", p.Title.Value())
		assert.Equal(t, []string{"Mr.", "Mrs.", "Dr.", "Ms."}, p.Options())
		assert.Equal(t, []string{"First name is required", "Last name is required"}, p.Summary().Messages)

		require.NoError(t, p.Title.SetValue("Dr."))
		require.NoError(t, p.Form().Root().Reset(nil))
		assert.Equal(t, "Mr.", p.Title.Value(), "non-nullable title resets to the served default")
	})

	t.Run("custom config", func(t *testing.T) {
		t.Parallel()
		r := backend.NewMemory(backend.WithDelays(0, 0, 0), backend.WithInitialConfig(backend.InitialConfig{
			DefaultValue: "Prof.",
			Options:      []string{"Prof."},
		}))
		p, err := profile.NewPerson(context.Background(), r)
		require.NoError(t, err)
		t.Cleanup(p.Close)
		assert.Equal(t, "Prof.", p.Title.Value())
	})

	t.Run("fetch failure builds nothing", func(t *testing.T) {
		t.Parallel()
		p, err := profile.NewPerson(context.Background(), downReader{})
		assert.Nil(t, p)
		assert.ErrorIs(t, err, backend.ErrFetchConfig)
		assert.ErrorIs(t, err, errDown)
	})

	t.Run("cancelled while waiting", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		_, err := profile.NewPerson(ctx, backend.NewMemory(backend.WithDelays(time.Second, 0, 0)))
		assert.ErrorIs(t, err, backend.ErrFetchConfig)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestProtocol(t *testing.T) {
	t.Parallel()

	t.Run("reset mints a new counter", func(t *testing.T) {
		t.Parallel()
		p, err := profile.NewProtocol(context.Background(), memory())
		require.NoError(t, err)
		t.Cleanup(p.Close)

		assert.Equal(t, map[string]any{"prefix": "PRE", "counter": "1", "suffix": nil}, p.Form().Root().Value())
		assert.Equal(t, form.StatusValid, p.Form().Status())

		require.NoError(t, p.Prefix.SetValue("DOC"))
		require.NoError(t, p.Suffix.SetValue("A"))
		require.NoError(t, p.Reset(context.Background()))

		assert.Equal(t, map[string]any{"prefix": "PRE", "counter": "2", "suffix": nil}, p.Form().Root().Value())
		assert.False(t, p.Form().Root().Dirty())
	})

	t.Run("cleared prefix is required", func(t *testing.T) {
		t.Parallel()
		p, err := profile.NewProtocol(context.Background(), memory())
		require.NoError(t, err)
		t.Cleanup(p.Close)

		require.NoError(t, p.Prefix.SetValue(""))
		assert.Equal(t, []string{"Prefix is required"}, p.Summary().Messages)
	})

	t.Run("failed reset keeps the form", func(t *testing.T) {
		t.Parallel()
		r := &flakyReader{Memory: memory()}
		p, err := profile.NewProtocol(context.Background(), r)
		require.NoError(t, err)
		t.Cleanup(p.Close)
		require.NoError(t, p.Suffix.SetValue("B"))

		r.fail = true
		err = p.Reset(context.Background())
		assert.ErrorIs(t, err, backend.ErrFetchCounter)
		assert.Equal(t, "1", p.Counter.Value())
		assert.Equal(t, "B", p.Suffix.Value())
	})

	t.Run("fetch failure builds nothing", func(t *testing.T) {
		t.Parallel()
		p, err := profile.NewProtocol(context.Background(), downReader{})
		assert.Nil(t, p)
		assert.ErrorIs(t, err, backend.ErrFetchCounter)
	})
}
