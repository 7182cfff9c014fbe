package trace

// Config 链路追踪配置
//
//	trace:
//	  service_name: "shop"
//	  endpoint: "localhost:4317"
//	  sampler: 1.0
//	  batcher: "batch"
//	  insecure: true
type Config struct {
	ServiceName string `mapstructure:"service_name"`
	// Endpoint OTLP gRPC 收集端地址，如 Tempo 或 Jaeger
	Endpoint string `mapstructure:"endpoint"`
	// Sampler 采样率，取值 [0, 1]
	Sampler float64 `mapstructure:"sampler"`
	// Batcher "batch"（默认）或 "simple"
	Batcher  string `mapstructure:"batcher"`
	Insecure bool   `mapstructure:"insecure"`
}

// DefaultConfig 返回本地开发使用的默认配置
func DefaultConfig(serviceName string) *Config {
	return &Config{
		ServiceName: serviceName,
		Endpoint:    "localhost:4317",
		Sampler:     1.0,
		Batcher:     "batch",
		Insecure:    true,
	}
}
