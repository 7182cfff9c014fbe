package dlog

import (
	"fmt"
	"sync"

	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/ceyewan/stardyn/clog"
	"github.com/ceyewan/stardyn/metrics"
	"github.com/ceyewan/stardyn/xerrors"
)

// Facade 日志门面
//
// 持有一份独占的 Config。配置读写由读写锁保护，
// 计时的开始/结束时刻保存在每次调用的局部变量中，因此可以被多个 goroutine 并发使用；
// 输出的交错顺序由控制台实现决定。
type Facade struct {
	scope   Scope
	console clog.Console
	clock   Clock

	mu  sync.RWMutex
	cfg Config

	duration metrics.Histogram
	reloads  metrics.Counter
	watchers metrics.Gauge
	tracer   oteltrace.Tracer
}

// New 创建指定作用域的门面实例
//
// 未注入控制台时使用默认配置输出到 stdout。
func New(scope Scope, opts ...Option) (*Facade, error) {
	if scope.Field == "" {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "scope field is required")
	}

	o := applyOptions(opts...)

	cfg := scope.DefaultConfig()
	if o.config != nil {
		cfg = *o.config
	}

	console := o.console
	if console == nil {
		c, err := clog.New(clog.NewDefaultConfig())
		if err != nil {
			return nil, xerrors.Wrap(err, "create console")
		}
		console = c
	}

	f := &Facade{
		scope:   scope,
		console: console,
		clock:   o.clock,
		cfg:     cfg,
		tracer:  o.tracer,
	}

	if o.meter != nil {
		if err := f.initMetrics(o.meter); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func (f *Facade) initMetrics(meter metrics.Meter) error {
	var err error
	f.duration, err = meter.Histogram(MetricOperationDuration, "Duration of operations timed by the logging facade",
		metrics.WithUnit("ms"))
	if err != nil {
		return xerrors.Wrapf(err, "create histogram %s", MetricOperationDuration)
	}
	f.reloads, err = meter.Counter(MetricConfigReloads, "Configuration reloads triggered by WatchConfig")
	if err != nil {
		return xerrors.Wrapf(err, "create counter %s", MetricConfigReloads)
	}
	f.watchers, err = meter.Gauge(MetricConfigWatchers, "Running WatchConfig goroutines")
	if err != nil {
		return xerrors.Wrapf(err, "create gauge %s", MetricConfigWatchers)
	}
	return nil
}

// NewApp 创建应用作用域的门面
func NewApp(opts ...Option) (*Facade, error) {
	return New(AppScope, opts...)
}

// MustNewApp 类似 NewApp，但出错时 panic，仅用于初始化阶段
func MustNewApp(opts ...Option) *Facade {
	return xerrors.Must(NewApp(opts...))
}

// Scope 返回实例的作用域
func (f *Facade) Scope() Scope {
	return f.scope
}

// Configure 合并 p 中的非 nil 字段，不做任何校验
func (f *Facade) Configure(p Patch) {
	f.mu.Lock()
	p.apply(&f.cfg)
	f.mu.Unlock()
}

// Config 返回当前配置的副本
func (f *Facade) Config() Config {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.cfg
}

// IsDebugEnabled 返回调试开关状态
func (f *Facade) IsDebugEnabled() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.cfg.DebugEnabled
}

// EnableDebug 打开调试开关，随后输出一条通知
func (f *Facade) EnableDebug() {
	f.setDebug(true)
	f.Info("Debug mode enabled")
}

// DisableDebug 先输出通知再关闭调试开关，否则通知本身会被闸门拦下
func (f *Facade) DisableDebug() {
	f.Info("Debug mode disabled")
	f.setDebug(false)
}

func (f *Facade) setDebug(enabled bool) {
	f.mu.Lock()
	f.cfg.DebugEnabled = enabled
	f.mu.Unlock()
}

// Log 输出到 log 通道
func (f *Facade) Log(args ...any) {
	if !f.IsDebugEnabled() {
		return
	}
	f.console.Log(f.FormatMessage(args...))
}

// Info 输出到 info 通道
func (f *Facade) Info(args ...any) {
	if !f.IsDebugEnabled() {
		return
	}
	f.console.Info(f.FormatMessage(args...))
}

// Warn 输出到 warn 通道
func (f *Facade) Warn(args ...any) {
	if !f.IsDebugEnabled() {
		return
	}
	f.console.Warn(f.FormatMessage(args...))
}

// Error 输出到 error 通道
func (f *Facade) Error(args ...any) {
	if !f.IsDebugEnabled() {
		return
	}
	f.console.Error(f.FormatMessage(args...))
}

// Debug 输出到 debug 通道
func (f *Facade) Debug(args ...any) {
	if !f.IsDebugEnabled() {
		return
	}
	f.console.Debug(f.FormatMessage(args...))
}

// String 便于在调试输出中识别实例
func (f *Facade) String() string {
	cfg := f.Config()
	return fmt.Sprintf("dlog.Facade(%s=%s v%s)", f.scope.Field, cfg.ScopeName, cfg.Version)
}
