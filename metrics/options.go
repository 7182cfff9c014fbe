package metrics

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option 配置 Meter 实例的选项函数类型
type Option func(*options)

// options 内部选项结构，存储 Meter 的配置信息
type options struct {
	// logger 记录指标系统的内部事件，未设置时使用 slog.Default()
	logger *slog.Logger

	// registry 指标注册表，未设置时使用 Prometheus 默认注册表
	registry *prometheus.Registry
}

func applyOptions(opts ...Option) *options {
	o := &options{logger: slog.Default().With("component", "metrics")}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger 注入日志记录器，nil 被忽略
//
// 组件会自动为 logger 添加 component=metrics 字段。
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger.With("component", "metrics")
		}
	}
}

// WithRegistry 使用独立的 Prometheus 注册表，HTTP 服务器也只暴露该注册表中的指标
//
// 主要用于测试或同一进程内需要隔离的多个 Meter。
func WithRegistry(registry *prometheus.Registry) Option {
	return func(o *options) {
		o.registry = registry
	}
}
