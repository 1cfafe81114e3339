package metrics

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertMetricLine checks that the Prometheus output contains a metric
// matching the given name, partial label pattern, and value. Uses regex to
// handle extra OTel scope labels injected by the Prometheus exporter.
func assertMetricLine(t *testing.T, output, name, labels, value string) {
	t.Helper()
	pattern := name + `\{[^}]*` + labels + `[^}]*\} ` + value
	assert.Regexp(t, pattern, output)
}

func scrape(t *testing.T, provider *Provider) string {
	t.Helper()

	recorder := httptest.NewRecorder()
	provider.Handler().ServeHTTP(recorder, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, recorder.Code)
	return recorder.Body.String()
}

func TestNewBusinessMetrics(t *testing.T) {
	provider, err := NewProvider("tokenvault")
	require.NoError(t, err)

	businessMetrics, err := NewBusinessMetrics(provider.MeterProvider(), "tokenvault")
	require.NoError(t, err)
	assert.NotNil(t, businessMetrics)
}

func TestBusinessMetrics_RecordOperation(t *testing.T) {
	provider, err := NewProvider("tokenvault")
	require.NoError(t, err)

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "tokenvault")
	require.NoError(t, err)

	bm.RecordOperation(context.Background(), "tokens", "token_store", "success")
	bm.RecordOperation(context.Background(), "tokens", "token_store", "success")
	bm.RecordOperation(context.Background(), "tokens", "token_get", "error")

	output := scrape(t, provider)
	assertMetricLine(t, output, "tokenvault_operations_total",
		`operation="token_store"`, "2")
	assertMetricLine(t, output, "tokenvault_operations_total",
		`operation="token_get"`, "1")
}

func TestBusinessMetrics_RecordDuration(t *testing.T) {
	provider, err := NewProvider("tokenvault")
	require.NoError(t, err)

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "tokenvault")
	require.NoError(t, err)

	bm.RecordDuration(context.Background(), "tokens", "token_migrate", 150*time.Millisecond, "success")

	output := scrape(t, provider)
	assert.Contains(t, output, "tokenvault_operation_duration_seconds")
}

func TestNoOpBusinessMetrics(t *testing.T) {
	bm := NewNoOpBusinessMetrics()

	// Must not panic.
	bm.RecordOperation(context.Background(), "tokens", "token_store", "success")
	bm.RecordDuration(context.Background(), "tokens", "token_store", time.Second, "error")
}
