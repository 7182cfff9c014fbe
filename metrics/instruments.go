package metrics

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type counter struct {
	c metric.Float64Counter
}

func (c counter) Inc(ctx context.Context, labels ...Label) {
	c.Add(ctx, 1, labels...)
}

func (c counter) Add(ctx context.Context, val float64, labels ...Label) {
	c.c.Add(ctx, val, metric.WithAttributeSet(attributeSet(labels)))
}

type histogram struct {
	h metric.Float64Histogram
}

func (h histogram) Record(ctx context.Context, val float64, labels ...Label) {
	h.h.Record(ctx, val, metric.WithAttributeSet(attributeSet(labels)))
}

// gauge 在内存中保存每组标签的当前值，采集时通过回调上报
type gauge struct {
	mu     sync.Mutex
	points map[attribute.Distinct]gaugePoint
}

type gaugePoint struct {
	set attribute.Set
	val float64
}

func (g *gauge) Set(_ context.Context, val float64, labels ...Label) {
	g.update(labels, func(float64) float64 { return val })
}

func (g *gauge) Inc(_ context.Context, labels ...Label) {
	g.update(labels, func(cur float64) float64 { return cur + 1 })
}

func (g *gauge) Dec(_ context.Context, labels ...Label) {
	g.update(labels, func(cur float64) float64 { return cur - 1 })
}

func (g *gauge) update(labels []Label, next func(float64) float64) {
	set := attributeSet(labels)
	key := set.Equivalent()

	g.mu.Lock()
	p := g.points[key]
	p.set = set
	p.val = next(p.val)
	g.points[key] = p
	g.mu.Unlock()
}

func (g *gauge) observe(_ context.Context, o metric.Float64Observer) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, p := range g.points {
		o.Observe(p.val, metric.WithAttributeSet(p.set))
	}
	return nil
}

func attributeSet(labels []Label) attribute.Set {
	if len(labels) == 0 {
		return *attribute.EmptySet()
	}
	kvs := make([]attribute.KeyValue, len(labels))
	for i, l := range labels {
		kvs[i] = attribute.String(l.Key, l.Value)
	}
	return attribute.NewSet(kvs...)
}

// noopMeter Config.Enabled 为 false 时使用
type noopMeter struct{}

// Discard 返回一个所有操作都为空的 Meter
func Discard() Meter {
	return noopMeter{}
}

func (noopMeter) Counter(string, string, ...MetricOption) (Counter, error)     { return noopInstrument{}, nil }
func (noopMeter) Gauge(string, string, ...MetricOption) (Gauge, error)         { return noopInstrument{}, nil }
func (noopMeter) Histogram(string, string, ...MetricOption) (Histogram, error) { return noopInstrument{}, nil }
func (noopMeter) Shutdown(context.Context) error                               { return nil }

// noopInstrument 同时实现 Counter、Gauge、Histogram
type noopInstrument struct{}

func (noopInstrument) Inc(context.Context, ...Label)              {}
func (noopInstrument) Dec(context.Context, ...Label)              {}
func (noopInstrument) Add(context.Context, float64, ...Label)    {}
func (noopInstrument) Set(context.Context, float64, ...Label)    {}
func (noopInstrument) Record(context.Context, float64, ...Label) {}
