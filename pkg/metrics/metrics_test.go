package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/metrics"
)

func TestCollector(t *testing.T) {
	t.Parallel()
	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	require.NoError(t, err)

	m.CheckScheduled("uniqueness")
	m.CheckScheduled("uniqueness")
	m.CheckSuperseded("uniqueness")
	m.CheckApplied("uniqueness", true, 250*time.Millisecond)
	m.ValidatorFault("pattern")

	expected := `
# HELP formkit_async_checks_applied_total Async validator results applied to a control.
# TYPE formkit_async_checks_applied_total counter
formkit_async_checks_applied_total{failed="true",validator="uniqueness"} 1
# HELP formkit_async_checks_scheduled_total Async validator checks scheduled.
# TYPE formkit_async_checks_scheduled_total counter
formkit_async_checks_scheduled_total{validator="uniqueness"} 2
# HELP formkit_async_checks_superseded_total Async validator checks dropped before their result was applied.
# TYPE formkit_async_checks_superseded_total counter
formkit_async_checks_superseded_total{validator="uniqueness"} 1
# HELP formkit_validator_faults_total Validators that panicked or async checks that errored.
# TYPE formkit_validator_faults_total counter
formkit_validator_faults_total{validator="pattern"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"formkit_async_checks_applied_total",
		"formkit_async_checks_scheduled_total",
		"formkit_async_checks_superseded_total",
		"formkit_validator_faults_total",
	))
	n, err := testutil.GatherAndCount(reg, "formkit_async_check_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNewRegistersOnce(t *testing.T) {
	t.Parallel()
	reg := prometheus.NewRegistry()
	_, err := metrics.New(reg)
	require.NoError(t, err)
	_, err = metrics.New(reg)
	assert.Error(t, err)
}

func TestHandler(t *testing.T) {
	t.Parallel()
	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	require.NoError(t, err)
	m.CheckScheduled("uniqueness")

	rec := httptest.NewRecorder()
	metrics.Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `formkit_async_checks_scheduled_total{validator="uniqueness"} 1`)
}
