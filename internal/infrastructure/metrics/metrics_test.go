package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"ecofin-advisor/internal/domain/entity"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveGeneration(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveGeneration("stub", entity.OutcomeOK, 150*time.Millisecond)
	m.ObserveGeneration("stub", entity.OutcomeOK, 50*time.Millisecond)
	m.ObserveGeneration("stub", entity.OutcomeMalformed, time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.GenerationsTotal.WithLabelValues("stub", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GenerationsTotal.WithLabelValues("stub", "malformed")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.GenerationDurationSeconds))
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveHTTP("/generate", "POST", 200)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `ecofin_advisor_http_requests_total{code="200",method="POST",route="/generate"} 1`)
}
