package clog

import (
	"fmt"
	"log/slog"
	"strings"
)

// Channel 控制台输出通道
//
// 五个通道按严重程度递增：
//
//	DebugChannel: 调试输出
//	LogChannel:   普通输出，介于 debug 与 info 之间
//	InfoChannel:  一般信息
//	WarnChannel:  警告
//	ErrorChannel: 错误
type Channel int

const (
	DebugChannel Channel = iota
	LogChannel
	InfoChannel
	WarnChannel
	ErrorChannel
)

// LevelLog 是 log 通道在 slog 中对应的级别，slog 没有预置该常量
const LevelLog = slog.Level(-2)

// String 返回通道名称
//
// 示例：
//
//	clog.LogChannel.String()   // "log"
//	clog.WarnChannel.String()  // "warn"
func (c Channel) String() string {
	switch c {
	case DebugChannel:
		return "debug"
	case LogChannel:
		return "log"
	case InfoChannel:
		return "info"
	case WarnChannel:
		return "warn"
	case ErrorChannel:
		return "error"
	default:
		return fmt.Sprintf("channel(%d)", int(c))
	}
}

// ParseChannel 将字符串（不区分大小写）解析为 Channel
func ParseChannel(s string) (Channel, error) {
	switch strings.ToLower(s) {
	case "debug":
		return DebugChannel, nil
	case "log":
		return LogChannel, nil
	case "info":
		return InfoChannel, nil
	case "warn":
		return WarnChannel, nil
	case "error":
		return ErrorChannel, nil
	default:
		return LogChannel, fmt.Errorf("unknown channel: %s", s)
	}
}

// slogLevel 将通道映射为 slog.Level
func (c Channel) slogLevel() slog.Level {
	switch c {
	case DebugChannel:
		return slog.LevelDebug
	case LogChannel:
		return LevelLog
	case InfoChannel:
		return slog.LevelInfo
	case WarnChannel:
		return slog.LevelWarn
	case ErrorChannel:
		return slog.LevelError
	default:
		return LevelLog
	}
}

// isError 判断通道是否路由到 ErrorOutput
func (c Channel) isError() bool {
	return c == WarnChannel || c == ErrorChannel
}
