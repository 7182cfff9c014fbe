package clog

import (
	"bytes"
)

// withBuffer 是一个测试专用选项，用于将输出写入指定的缓冲区
//
// 此选项仅用于测试，需要配合 Output: "buffer" 使用。
func withBuffer(buf *bytes.Buffer) Option {
	return func(o *options) {
		o.buffer = buf
	}
}
