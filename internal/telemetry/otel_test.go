package telemetry

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap/zaptest"
)

func TestInit_Disabled(t *testing.T) {
	shutdown, err := Init(context.Background(), DefaultConfig(), "test", nil)
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestInit_StdoutExporter(t *testing.T) {
	t.Cleanup(func() { otel.SetTracerProvider(noop.NewTracerProvider()) })

	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Writer = &buf

	shutdown, err := Init(context.Background(), cfg, "v1.2.3", zaptest.NewLogger(t))
	require.NoError(t, err)

	_, span := otel.Tracer("openmind/test").Start(context.Background(), "journey.StartJourney")
	span.End()
	require.NoError(t, shutdown(context.Background()))

	assert.Contains(t, buf.String(), "journey.StartJourney")
	assert.Contains(t, buf.String(), "v1.2.3")
}

func TestParseHeaders(t *testing.T) {
	got := ParseHeaders(" api-key = abc ,broken, =x,team=core")
	want := map[string]string{"api-key": "abc", "team": "core"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseHeaders() mismatch (-want +got):\n%s", diff)
	}
	assert.Nil(t, ParseHeaders(""))
}

func TestClampRatio(t *testing.T) {
	assert.Equal(t, 0.0, clampRatio(-1))
	assert.Equal(t, 0.25, clampRatio(0.25))
	assert.Equal(t, 1.0, clampRatio(3))
}
