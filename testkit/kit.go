// Package testkit 提供门面测试的公共依赖：记录型控制台、可控时钟、
// 隔离的指标注册表和内存 Span 记录器。
package testkit

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/ceyewan/stardyn/clog"
	"github.com/ceyewan/stardyn/metrics"
)

// Epoch 测试时钟的默认起点
var Epoch = time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)

// Kit 包含通用的测试依赖
type Kit struct {
	Ctx     context.Context
	Console *clog.Recorder
	Clock   *StepClock
	Meter   metrics.Meter
}

// NewKit 返回一个包含默认依赖的测试工具包
//
// 时钟从 Epoch 开始，每次读取前进 10ms；Meter 为空实现。
func NewKit(t *testing.T) *Kit {
	t.Helper()
	ctx, cancel := NewContext(t, 10*time.Second)
	t.Cleanup(cancel)
	return &Kit{
		Ctx:     ctx,
		Console: clog.NewRecorder(),
		Clock:   NewStepClock(Epoch, 10*time.Millisecond),
		Meter:   NewMeter(),
	}
}

// StepClock 每次 Now 都前进固定步长的时钟，step 为 0 时时间静止
type StepClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// NewStepClock 创建从 start 开始的时钟
func NewStepClock(start time.Time, step time.Duration) *StepClock {
	return &StepClock{now: start, step: step}
}

// Now 返回当前时刻，随后前进一个步长
func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now
	c.now = c.now.Add(c.step)
	return now
}

// Advance 额外前进 d
func (c *StepClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// NewMeter 返回空实现的 Meter
func NewMeter() metrics.Meter {
	return metrics.Discard()
}

// NewRecordingMeter 返回写入独立注册表的 Meter，测试结束时自动关闭
func NewRecordingMeter(t *testing.T) (metrics.Meter, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	meter, err := metrics.New(&metrics.Config{Enabled: true, ServiceName: "test-" + NewID()}, metrics.WithRegistry(reg))
	if err != nil {
		t.Fatalf("create meter: %v", err)
	}
	t.Cleanup(func() { _ = meter.Shutdown(context.Background()) })
	return meter, reg
}

// NewTracer 返回把 Span 记录在内存中的 Tracer，不影响全局 TracerProvider
func NewTracer(t *testing.T) (oteltrace.Tracer, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return tp.Tracer("testkit"), recorder
}

// NewContext 返回一个带有超时的测试上下文
func NewContext(t *testing.T, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// NewID 返回一个唯一的测试 ID (UUID v4 前 8 位)
func NewID() string {
	return uuid.New().String()[0:8]
}

// WriteFile 在临时目录中写入文件并返回目录
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return dir
}
