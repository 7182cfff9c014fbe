package dlog_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"

	"github.com/ceyewan/stardyn/clog"
	"github.com/ceyewan/stardyn/dlog"
	"github.com/ceyewan/stardyn/testkit"
)

// newTimedApp 时钟每次读取前进 10ms，因此每次计时恰好是 10.00ms
func newTimedApp(t *testing.T, opts ...dlog.Option) (*dlog.Facade, *clog.Recorder) {
	t.Helper()
	return newApp(t, append([]dlog.Option{dlog.WithClock(testkit.NewStepClock(testkit.Epoch, 10*time.Millisecond))}, opts...)...)
}

func TestMeasure(t *testing.T) {
	f, rec := newTimedApp(t)

	got := dlog.Measure(f, "sum", func() int { return 1 + 2 })
	assert.Equal(t, 3, got)
	assert.Equal(t, []string{prefix + "Performance [sum]: 10.00ms"}, rec.Messages(clog.DebugChannel))
}

func TestMeasurePanicPropagates(t *testing.T) {
	f, rec := newTimedApp(t)

	assert.PanicsWithValue(t, "boom", func() {
		dlog.Measure(f, "explode", func() int { panic("boom") })
	})
	assert.Zero(t, rec.Len(), "panic 时不输出耗时")
}

func TestMeasureDisabled(t *testing.T) {
	f, rec := newTimedApp(t)
	f.Configure(dlog.Patch{DebugMode: dlog.Ptr(false)})

	ran := false
	f.Time("op", func() { ran = true })
	assert.True(t, ran)
	assert.Zero(t, rec.Len())

	v, err := dlog.MeasureAsync(context.Background(), f, "op", func(context.Context) (string, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Zero(t, rec.Len())
}

func TestMeasureDisabledFailures(t *testing.T) {
	f, rec := newTimedApp(t)
	f.Configure(dlog.Patch{DebugMode: dlog.Ptr(false)})
	sentinel := errors.New("offline")

	err := f.TimeAsync(context.Background(), "sync", func(context.Context) error { return sentinel })
	assert.Same(t, sentinel, err)

	assert.PanicsWithValue(t, "async boom", func() {
		_ = f.TimeAsync(context.Background(), "sync", func(context.Context) error { panic("async boom") })
	})
	assert.PanicsWithValue(t, "sync boom", func() {
		f.Time("render", func() { panic("sync boom") })
	})

	assert.Zero(t, rec.Len(), "关闭时失败也不输出耗时")
}

func TestMeasureAsync(t *testing.T) {
	f, rec := newTimedApp(t)

	v, err := dlog.MeasureAsync(context.Background(), f, "fetch", func(context.Context) ([]int, error) {
		return []int{1}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, v)
	assert.Equal(t, []string{prefix + "Performance [fetch]: 10.00ms"}, rec.Messages(clog.DebugChannel))
}

func TestMeasureAsyncError(t *testing.T) {
	f, rec := newTimedApp(t)
	sentinel := errors.New("timeout")

	err := f.TimeAsync(context.Background(), "fetch", func(context.Context) error { return sentinel })
	assert.Same(t, sentinel, err, "返回同一个错误值，不包装")
	assert.Equal(t, []string{prefix + "Performance [fetch (failed)]: 10.00ms"}, rec.Messages(clog.DebugChannel))
}

func TestMeasureAsyncPanic(t *testing.T) {
	f, rec := newTimedApp(t)

	assert.PanicsWithValue(t, "boom", func() {
		_ = f.TimeAsync(context.Background(), "crash", func(context.Context) error { panic("boom") })
	})
	assert.Equal(t, []string{prefix + "Performance [crash (failed)]: 10.00ms"}, rec.Messages(clog.DebugChannel))
}

func TestMeasureAsyncPassesContext(t *testing.T) {
	f, _ := newTimedApp(t)
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")

	err := f.TimeAsync(ctx, "ctx", func(ctx context.Context) error {
		assert.Equal(t, "v", ctx.Value(key{}))
		return nil
	})
	assert.NoError(t, err)
}

func TestTimingMetrics(t *testing.T) {
	meter, reg := testkit.NewRecordingMeter(t)
	f, _ := newTimedApp(t, dlog.WithMeter(meter))

	f.Time("load", func() {})
	_ = f.TimeAsync(context.Background(), "save", func(context.Context) error { return errors.New("x") })

	family := findFamily(t, reg, dlog.MetricOperationDuration)
	require.Equal(t, dto.MetricType_HISTOGRAM, family.GetType())

	outcomes := map[string]string{}
	for _, m := range family.GetMetric() {
		outcomes[label(m, "operation")] = label(m, "outcome")
		assert.Equal(t, "StardynApp", label(m, "scope"))
		assert.Equal(t, uint64(1), m.GetHistogram().GetSampleCount())
		assert.InDelta(t, 10, m.GetHistogram().GetSampleSum(), 0.001)
	}
	assert.Equal(t, map[string]string{"load": "success", "save": "error"}, outcomes)
}

func TestTimingTracer(t *testing.T) {
	tracer, spans := testkit.NewTracer(t)
	f, _ := newTimedApp(t, dlog.WithTracer(tracer))

	require.NoError(t, f.TimeAsync(context.Background(), "ok", func(context.Context) error { return nil }))
	_ = f.TimeAsync(context.Background(), "bad", func(context.Context) error { return errors.New("denied") })
	assert.Panics(t, func() {
		_ = f.TimeAsync(context.Background(), "panic", func(context.Context) error { panic("boom") })
	})

	ended := spans.Ended()
	require.Len(t, ended, 3)

	assert.Equal(t, "ok", ended[0].Name())
	assert.Equal(t, codes.Unset, ended[0].Status().Code)
	require.NotEmpty(t, ended[0].Attributes())
	assert.Equal(t, "appName", string(ended[0].Attributes()[0].Key))
	assert.Equal(t, "StardynApp", ended[0].Attributes()[0].Value.AsString())

	assert.Equal(t, codes.Error, ended[1].Status().Code)
	assert.Equal(t, "denied", ended[1].Status().Description)

	assert.Equal(t, codes.Error, ended[2].Status().Code)
	assert.Equal(t, "panic: boom", ended[2].Status().Description)
}

func findFamily(t *testing.T, reg *prometheus.Registry, prefix string) *dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		// 导出器保留 UTF-8 名称，这里统一按下划线比较
		if strings.HasPrefix(strings.ReplaceAll(f.GetName(), ".", "_"), prefix) {
			return f
		}
	}
	t.Fatalf("metric family %q not found", prefix)
	return nil
}

func label(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}
