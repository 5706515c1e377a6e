package instrumentation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/davidleathers/placeholder-numbers/internal/infrastructure/kv"
	"github.com/davidleathers/placeholder-numbers/internal/testutil"
)

func newRecorder(t *testing.T) (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return recorder, tp
}

func attrs(span sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	out := make(map[attribute.Key]attribute.Value)
	for _, a := range span.Attributes() {
		out[a.Key] = a.Value
	}
	return out
}

func TestTracedStore_Operations(t *testing.T) {
	recorder, tp := newRecorder(t)
	ctx := context.Background()
	store := NewTracedStore(kv.NewMemoryStore(), "memory", tp.Tracer("test"))

	_, err := store.Get(ctx, "pandaAI_theme")
	require.True(t, kv.IsNotFound(err))

	require.NoError(t, store.Set(ctx, "pandaAI_theme", "dark"))

	value, err := store.Get(ctx, "pandaAI_theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", value)

	require.NoError(t, store.Remove(ctx, "pandaAI_theme"))
	require.NoError(t, store.Close())

	spans := recorder.Ended()
	require.Len(t, spans, 4)

	names := []string{spans[0].Name(), spans[1].Name(), spans[2].Name(), spans[3].Name()}
	assert.Equal(t, []string{"kv.Get", "kv.Set", "kv.Get", "kv.Remove"}, names)

	miss := attrs(spans[0])
	assert.Equal(t, "memory", miss["kv.backend"].AsString())
	assert.Equal(t, "pandaAI_theme", miss["kv.key"].AsString())
	assert.False(t, miss["kv.found"].AsBool())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)

	hit := attrs(spans[2])
	assert.True(t, hit["kv.found"].AsBool())
	assert.Equal(t, int64(4), hit["kv.value_bytes"].AsInt64())
}

func TestTracedStore_Failures(t *testing.T) {
	recorder, tp := newRecorder(t)
	ctx := context.Background()
	store := NewTracedStore(testutil.FailingStore{Err: errors.New("connection reset")}, "redis", tp.Tracer("test"))

	_, err := store.Get(ctx, "k")
	assert.Error(t, err)
	assert.Error(t, store.Set(ctx, "k", "v"))
	assert.Error(t, store.Remove(ctx, "k"))

	for _, span := range recorder.Ended() {
		assert.Equal(t, codes.Error, span.Status().Code, span.Name())
		assert.Equal(t, "connection reset", span.Status().Description)
	}
	assert.Len(t, recorder.Ended(), 3)
}
