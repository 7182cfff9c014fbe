package clog

import (
	"fmt"
	"strings"
)

const TimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Config 控制台配置结构，定义输出格式与目标
//
// 支持的配置项：
//
//	Format: 输出格式 (console|text|json)，console 只输出消息本身
//	Output: 输出目标 (stdout|stderr|文件路径)
//	ErrorOutput: warn/error 通道的输出目标，为空时与 Output 相同
//	EnableColor: 是否按通道着色（仅 console 格式）
//	Level: 最低输出通道 (debug|log|info|warn|error)，默认 debug
//
// 示例：
//
//	config := &clog.Config{
//	    Format:      "console",
//	    Output:      "stdout",
//	    ErrorOutput: "stderr",
//	    EnableColor: true,
//	}
type Config struct {
	Format      string `json:"format" yaml:"format" mapstructure:"format"`
	Output      string `json:"output" yaml:"output" mapstructure:"output"`
	ErrorOutput string `json:"errorOutput" yaml:"errorOutput" mapstructure:"errorOutput"`
	EnableColor bool   `json:"enableColor" yaml:"enableColor" mapstructure:"enableColor"`
	Level       string `json:"level" yaml:"level" mapstructure:"level"`
}

// NewDefaultConfig 返回默认配置：纯消息格式、输出到 stdout
func NewDefaultConfig() *Config {
	return &Config{
		Format: "console",
		Output: "stdout",
	}
}

// NewDevDefaultConfig 返回开发环境配置：彩色输出，warn/error 写到 stderr
func NewDevDefaultConfig() *Config {
	return &Config{
		Format:      "console",
		Output:      "stdout",
		ErrorOutput: "stderr",
		EnableColor: true,
	}
}

// validate 验证配置的有效性（内部使用）
//
// 为空值设置默认值，检查 Format 与 Level 是否在有效范围内。
func (c *Config) validate() error {
	if c.Format == "" {
		c.Format = "console"
	}
	if c.Output == "" {
		c.Output = "stdout"
	}
	if c.Level == "" {
		c.Level = DebugChannel.String()
	}
	if _, err := ParseChannel(c.Level); err != nil {
		return fmt.Errorf("invalid level: %w", err)
	}

	switch strings.ToLower(c.Format) {
	case "console", "text", "json":
	default:
		return fmt.Errorf("invalid format: %s, must be console, text or json", c.Format)
	}
	// Output 字段可以是 stdout, stderr 或文件路径，不做严格校验
	return nil
}
