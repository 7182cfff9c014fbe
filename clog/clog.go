package clog

import "fmt"

// New 创建一个新的 Console 实例
//
// config - 控制台配置，如果为 nil 会使用默认配置
// opts   - 函数式选项列表
//
// Console - 控制台实例
func New(config *Config, opts ...Option) (Console, error) {
	if config == nil {
		config = NewDefaultConfig()
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	options := applyOptions(opts...)

	return newConsole(config, options)
}

// Must 类似 New，但出错时 panic，仅用于初始化阶段
func Must(config *Config, opts ...Option) Console {
	c, err := New(config, opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to create console: %v", err))
	}
	return c
}
