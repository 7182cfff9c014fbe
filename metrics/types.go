// Package metrics 基于 OpenTelemetry 的指标收集，内置 Prometheus 暴露。
//
// dlog 门面在配置了 Meter 时，把每次计时操作的耗时记录到
// dlog_operation_duration_ms 直方图中，标签为 scope、operation、outcome。
//
// 快速开始：
//
//	meter, err := metrics.New(metrics.NewDevDefaultConfig("shop"))
//	if err != nil {
//	    return err
//	}
//	defer meter.Shutdown(ctx)
//
//	hist, _ := meter.Histogram("load_duration_ms", "加载耗时", metrics.WithUnit("ms"))
//	hist.Record(ctx, 12.5, metrics.L(metrics.LabelOperation, "load"))
//
// Config.Enabled 为 false 时 New 返回 Discard()，所有操作都是空操作。
package metrics

import "context"

// Counter 只增不减的累计值
type Counter interface {
	// Inc 增加 1
	Inc(ctx context.Context, labels ...Label)
	// Add 增加 val，负数会被大部分后端忽略
	Add(ctx context.Context, val float64, labels ...Label)
}

// Gauge 可以任意增减的瞬时值
type Gauge interface {
	Set(ctx context.Context, val float64, labels ...Label)
	Inc(ctx context.Context, labels ...Label)
	Dec(ctx context.Context, labels ...Label)
}

// Histogram 记录值的分布，例如操作耗时
type Histogram interface {
	Record(ctx context.Context, val float64, labels ...Label)
}

// Meter 指标工厂
//
// 创建出的指标可以在多个 goroutine 中并发使用。
type Meter interface {
	Counter(name string, desc string, opts ...MetricOption) (Counter, error)
	Gauge(name string, desc string, opts ...MetricOption) (Gauge, error)
	Histogram(name string, desc string, opts ...MetricOption) (Histogram, error)

	// Shutdown 刷新指标并关闭 HTTP 服务器，通常在进程退出前调用
	Shutdown(ctx context.Context) error
}

// MetricOption 创建指标时的附加选项
type MetricOption func(*MetricOptions)

// MetricOptions 指标选项
type MetricOptions struct {
	// Unit UCUM 单位代码，例如 "ms"、"By"
	Unit string
}

func collectOptions(opts []MetricOption) MetricOptions {
	var mo MetricOptions
	for _, opt := range opts {
		opt(&mo)
	}
	return mo
}

// WithUnit 设置指标单位
func WithUnit(unit string) MetricOption {
	return func(o *MetricOptions) {
		o.Unit = unit
	}
}
