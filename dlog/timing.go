package dlog

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/ceyewan/stardyn/metrics"
	"github.com/ceyewan/stardyn/trace"
)

const (
	// MetricOperationDuration 计时操作耗时直方图（毫秒）
	MetricOperationDuration = "dlog_operation_duration_ms"

	// failedSuffix 失败操作在性能日志中的后缀
	failedSuffix = " (failed)"
)

// Measure 执行 op 并在 debug 通道输出耗时，返回 op 的结果
//
// 调试开关关闭时直接执行 op，不计时。op panic 时原样向上传播，
// 不输出该次调用的耗时。
func Measure[T any](f *Facade, name string, op func() T) T {
	if !f.IsDebugEnabled() {
		return op()
	}

	start := f.clock.Now()
	result := op()
	f.observe(context.Background(), name, start, false)
	return result
}

// MeasureAsync 执行可能失败的异步操作并输出耗时
//
// 与 Measure 不同，失败会被拦截：op 返回错误或 panic 时，先输出带 " (failed)" 后缀的
// 耗时，再原样返回同一个错误值或以同一个值重新 panic，不包装也不吞掉。
// 配置了 Tracer 时，每次调用对应一个以 name 命名的 Span。
// ctx 原样传给 op，门面本身不会中断操作。
func MeasureAsync[T any](ctx context.Context, f *Facade, name string, op func(context.Context) (T, error)) (result T, err error) {
	if !f.IsDebugEnabled() {
		return op(ctx)
	}

	var span oteltrace.Span
	if f.tracer != nil {
		ctx, span = f.tracer.Start(ctx, name,
			oteltrace.WithAttributes(attribute.String(f.scope.Field, f.Config().ScopeName)))
		defer span.End()
	}

	start := f.clock.Now()
	completed := false
	defer func() {
		if completed {
			return
		}
		r := recover()
		f.observe(ctx, name, start, true)
		if r != nil {
			trace.MarkError(span, fmt.Errorf("panic: %v", r))
			panic(r)
		}
	}()

	result, err = op(ctx)
	completed = true

	f.observe(ctx, name, start, err != nil)
	trace.MarkError(span, err)
	return result, err
}

// Time 计时执行无返回值的同步操作
func (f *Facade) Time(name string, op func()) {
	Measure(f, name, func() struct{} {
		op()
		return struct{}{}
	})
}

// TimeAsync 计时执行只返回错误的异步操作，失败语义同 MeasureAsync
func (f *Facade) TimeAsync(ctx context.Context, name string, op func(context.Context) error) error {
	_, err := MeasureAsync(ctx, f, name, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}

// observe 输出耗时日志并记录指标
func (f *Facade) observe(ctx context.Context, name string, start time.Time, failed bool) {
	elapsed := float64(f.clock.Now().Sub(start)) / float64(time.Millisecond)

	outcome := metrics.OutcomeSuccess
	label := name
	if failed {
		outcome = metrics.OutcomeError
		label += failedSuffix
	}

	f.LogPerformance(label, elapsed)

	if f.duration != nil {
		f.duration.Record(ctx, elapsed,
			metrics.L(metrics.LabelScope, f.Config().ScopeName),
			metrics.L(metrics.LabelOperation, name),
			metrics.L(metrics.LabelOutcome, outcome),
		)
	}
}
