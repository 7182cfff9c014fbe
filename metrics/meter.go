package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.20.0"

	"github.com/ceyewan/stardyn/xerrors"
)

// instrumentationName 所有指标共用的 instrumentation scope
const instrumentationName = "github.com/ceyewan/stardyn"

// New 创建 Meter
//
// cfg.Enabled 为 false 时返回 Discard()。Port 大于 0 时同步绑定端口，
// 端口被占用会直接返回错误，而不是在后台 goroutine 中失败。
func New(cfg *Config, opts ...Option) (Meter, error) {
	if cfg == nil {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "config is required")
	}
	if !cfg.Enabled {
		return Discard(), nil
	}

	o := applyOptions(opts...)

	provider, err := newProvider(cfg, o)
	if err != nil {
		return nil, err
	}

	m := &meter{
		provider: provider,
		meter:    provider.Meter(instrumentationName),
		logger:   o.logger,
	}

	if cfg.Runtime {
		if err := runtime.Start(runtime.WithMeterProvider(provider)); err != nil {
			_ = provider.Shutdown(context.Background())
			return nil, xerrors.Wrap(err, "start runtime metrics")
		}
	}

	if cfg.Port > 0 && cfg.Path != "" {
		if err := m.serve(cfg, o); err != nil {
			_ = provider.Shutdown(context.Background())
			return nil, err
		}
	}

	return m, nil
}

// Must 类似 New，但出错时 panic，仅用于初始化阶段
func Must(cfg *Config, opts ...Option) Meter {
	m, err := New(cfg, opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to create metrics: %v", err))
	}
	return m
}

// newProvider 创建以 Prometheus 为 Reader 的 MeterProvider
//
// 使用默认注册表时同时设为全局 MeterProvider。
func newProvider(cfg *Config, o *options) (*sdkmetric.MeterProvider, error) {
	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.ServiceName),
			semconv.ServiceVersionKey.String(cfg.Version),
		),
	)
	if err != nil {
		return nil, xerrors.Wrap(err, "create resource")
	}

	var exporterOpts []otelprom.Option
	if o.registry != nil {
		exporterOpts = append(exporterOpts, otelprom.WithRegisterer(o.registry))
	}
	exporter, err := otelprom.New(exporterOpts...)
	if err != nil {
		return nil, xerrors.Wrap(err, "create prometheus exporter")
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(res),
	)
	if o.registry == nil {
		otel.SetMeterProvider(provider)
	}
	return provider, nil
}

// meter 基于 OpenTelemetry SDK 的 Meter
type meter struct {
	provider *sdkmetric.MeterProvider
	meter    metric.Meter
	server   *http.Server
	logger   *slog.Logger
}

// serve 在 cfg.Port 上暴露 cfg.Path
func (m *meter) serve(cfg *Config, o *options) error {
	handler := promhttp.Handler()
	if o.registry != nil {
		handler = promhttp.HandlerFor(o.registry, promhttp.HandlerOpts{})
	}

	mux := http.NewServeMux()
	mux.Handle(cfg.Path, handler)

	addr := net.JoinHostPort("", strconv.Itoa(cfg.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return xerrors.Wrapf(err, "listen metrics on %s", addr)
	}

	m.server = &http.Server{Handler: mux}
	m.logger.Info("serving prometheus metrics", "addr", ln.Addr().String(), "path", cfg.Path)
	go func() {
		if err := m.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			m.logger.Error("prometheus server stopped", "error", err)
		}
	}()
	return nil
}

func (m *meter) Counter(name, desc string, opts ...MetricOption) (Counter, error) {
	mo := collectOptions(opts)
	c, err := m.meter.Float64Counter(name, metric.WithDescription(desc), metric.WithUnit(mo.Unit))
	if err != nil {
		return nil, xerrors.Wrapf(err, "create counter %s", name)
	}
	return counter{c: c}, nil
}

func (m *meter) Gauge(name, desc string, opts ...MetricOption) (Gauge, error) {
	mo := collectOptions(opts)
	g := &gauge{points: make(map[attribute.Distinct]gaugePoint)}
	_, err := m.meter.Float64ObservableGauge(name,
		metric.WithDescription(desc),
		metric.WithUnit(mo.Unit),
		metric.WithFloat64Callback(g.observe),
	)
	if err != nil {
		return nil, xerrors.Wrapf(err, "create gauge %s", name)
	}
	return g, nil
}

func (m *meter) Histogram(name, desc string, opts ...MetricOption) (Histogram, error) {
	mo := collectOptions(opts)
	h, err := m.meter.Float64Histogram(name, metric.WithDescription(desc), metric.WithUnit(mo.Unit))
	if err != nil {
		return nil, xerrors.Wrapf(err, "create histogram %s", name)
	}
	return histogram{h: h}, nil
}

// Shutdown 先停止 HTTP 服务器，再刷新并关闭 MeterProvider
func (m *meter) Shutdown(ctx context.Context) error {
	var serverErr error
	if m.server != nil {
		serverErr = m.server.Shutdown(ctx)
	}
	return xerrors.Combine(serverErr, m.provider.Shutdown(ctx))
}
