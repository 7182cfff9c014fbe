package metrics

// Config 指标系统配置
//
// 可以直接从配置文件的 metrics 段解码：
//
//	metrics:
//	  enabled: true
//	  service_name: "shop"
//	  version: "v1.2.3"
//	  port: 9090
//	  path: "/metrics"
//	  runtime: true
type Config struct {
	// Enabled 为 false 时 New 返回 Discard()
	Enabled bool `mapstructure:"enabled"`

	// ServiceName 写入 Resource 的 service.name，通常与门面的作用域名一致
	ServiceName string `mapstructure:"service_name"`

	// Version 写入 Resource 的 service.version
	Version string `mapstructure:"version"`

	// Port 大于 0 时启动 Prometheus HTTP 服务器
	Port int `mapstructure:"port"`

	// Path 指标暴露路径，以 "/" 开头
	Path string `mapstructure:"path"`

	// Runtime 同时采集 Go 运行时指标（GC、goroutine、内存）
	Runtime bool `mapstructure:"runtime"`
}

// NewDevDefaultConfig 开发环境默认配置
func NewDevDefaultConfig(serviceName string) *Config {
	return &Config{
		Enabled:     true,
		ServiceName: serviceName,
		Version:     "dev",
		Port:        9090,
		Path:        "/metrics",
	}
}

// NewProdDefaultConfig 生产环境默认配置
func NewProdDefaultConfig(serviceName, version string) *Config {
	return &Config{
		Enabled:     true,
		ServiceName: serviceName,
		Version:     version,
		Port:        9090,
		Path:        "/metrics",
	}
}
