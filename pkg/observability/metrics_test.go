package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aretw0/synthaser/internal/logging"
	"github.com/aretw0/synthaser/pkg/domain"
	"github.com/aretw0/synthaser/pkg/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Hooks(t *testing.T) {
	m := observability.NewMetrics()
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnResolved(ctx, &domain.ResolveEvent{SequenceID: "a", Hits: 12, Domains: 3, Duration: time.Millisecond})
	hooks.OnClassified(ctx, &domain.ClassifyEvent{SequenceID: "a", Paths: []domain.LabelPath{
		{"PKS", "Type I PKS", "HR-PKS"},
		{"PKS", "Type I PKS", "PR-PKS"},
	}})
	hooks.OnClassified(ctx, &domain.ClassifyEvent{SequenceID: "b"})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Resolved))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Labels.WithLabelValues("PKS")), "once per sequence")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Labels.WithLabelValues("HR-PKS")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Unclassified))
}

func TestMetrics_Handler(t *testing.T) {
	m := observability.NewMetrics()
	m.Hooks().OnResolved(context.Background(), &domain.ResolveEvent{Hits: 1, Domains: 1})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "synthaser_sequences_resolved_total 1")
}

func TestCombine(t *testing.T) {
	var buf bytes.Buffer
	m := observability.NewMetrics()
	hooks := observability.Combine(
		m.Hooks(),
		observability.LogHooks(logging.NewWithFormat(&buf, "text", slog.LevelDebug)),
		domain.LifecycleHooks{},
	)

	hooks.OnResolved(context.Background(), &domain.ResolveEvent{SequenceID: "q7", Hits: 4, Domains: 2})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Resolved))
	assert.Contains(t, buf.String(), "sequence_id=q7")
	assert.Nil(t, observability.Combine().OnResolved)
}
