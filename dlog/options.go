package dlog

import (
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/ceyewan/stardyn/clog"
	"github.com/ceyewan/stardyn/metrics"
)

// Clock 时间来源
//
// 计时使用两次 Now 的差值，时间戳前缀使用 Now 的 UTC 时刻。
// time.Now 自带单调时钟读数，默认实现即可满足计时需要。
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Option 函数式选项，用于配置门面实例
type Option func(*options)

// options 内部选项结构
type options struct {
	config  *Config
	console clog.Console
	clock   Clock
	meter   metrics.Meter
	tracer  oteltrace.Tracer
}

// WithConfig 设置初始配置，整体替换作用域默认值；nil 被忽略
func WithConfig(cfg *Config) Option {
	return func(o *options) {
		if cfg != nil {
			c := *cfg
			o.config = &c
		}
	}
}

// WithConsole 注入宿主控制台，默认输出到 stdout；nil 被忽略
func WithConsole(console clog.Console) Option {
	return func(o *options) {
		if console != nil {
			o.console = console
		}
	}
}

// WithClock 注入时间来源，主要用于测试；nil 被忽略
func WithClock(clock Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithMeter 启用计时指标
//
// 每次计时操作都会记录到 dlog_operation_duration_ms 直方图，
// 标签为 scope、operation、outcome，调试开关关闭时不记录。
// WatchConfig 另外记录 dlog_config_reloads 与 dlog_config_watchers。
func WithMeter(meter metrics.Meter) Option {
	return func(o *options) {
		o.meter = meter
	}
}

// WithTracer 启用链路追踪，TimeAsync 会为每次操作开启一个 Span
func WithTracer(tracer oteltrace.Tracer) Option {
	return func(o *options) {
		o.tracer = tracer
	}
}

func applyOptions(opts ...Option) *options {
	o := &options{
		clock: systemClock{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
