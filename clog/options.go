package clog

import "bytes"

// Option 函数式选项，用于配置 Console 实例
type Option func(*options)

// options 内部选项结构
type options struct {
	buffer *bytes.Buffer // 测试用缓冲区，Output 为 buffer 时生效
}

// applyOptions 应用所有选项并返回配置（内部使用）
func applyOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
