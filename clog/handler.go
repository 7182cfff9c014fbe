package clog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

const (
	// GroupKey 是 text/json 格式中分组路径的字段名，形如 "checkout/payment"
	GroupKey = "group"

	// depthKey 仅用于把分组深度传给 plainHandler，不会出现在输出中
	depthKey = "clog_depth"
)

// newHandler 根据格式创建 slog.Handler（内部使用）。
//
// minLevel 以下的通道被丢弃，默认为 debug，即全部输出。
func newHandler(format string, enableColor bool, minLevel Channel, w io.Writer, mu *sync.Mutex) slog.Handler {
	opts := &slog.HandlerOptions{
		Level:       minLevel.slogLevel(),
		ReplaceAttr: replaceAttr,
	}

	switch strings.ToLower(format) {
	case "json":
		return slog.NewJSONHandler(w, opts)
	case "text":
		return slog.NewTextHandler(w, opts)
	default:
		return &plainHandler{writer: w, color: enableColor, min: minLevel.slogLevel(), mu: mu}
	}
}

// resolveWriter 根据输出目标创建 writer。
//
// 只有文件目标返回非 nil 的 io.Closer，由 Console.Close 负责关闭。
func resolveWriter(output string, options *options) (io.Writer, io.Closer, error) {
	switch strings.ToLower(output) {
	case "stdout":
		return os.Stdout, nil, nil
	case "stderr":
		return os.Stderr, nil, nil
	case "buffer":
		if options.buffer != nil {
			return options.buffer, nil, nil
		}
		return nil, nil, fmt.Errorf("buffer output requires options.buffer to be set")
	default:
		f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, nil, err
		}
		return f, f, nil
	}
}

// replaceAttr 统一处理 Level/Time 字段，并去掉内部使用的深度字段。
func replaceAttr(groups []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case slog.LevelKey:
		level := a.Value.Any().(slog.Level)
		var levelStr string
		switch {
		case level <= slog.LevelDebug:
			levelStr = "DEBUG"
		case level <= LevelLog:
			levelStr = "LOG"
		case level <= slog.LevelInfo:
			levelStr = "INFO"
		case level <= slog.LevelWarn:
			levelStr = "WARN"
		default:
			levelStr = "ERROR"
		}
		a.Value = slog.StringValue(levelStr)
	case slog.TimeKey:
		if a.Value.Kind() == slog.KindTime {
			a.Value = slog.StringValue(a.Value.Time().Format(TimeFormat))
		}
	case depthKey:
		return slog.Attr{}
	}
	return a
}

// ANSI 颜色常量
const (
	ansiReset   = "\033[0m"
	ansiBold    = "\033[1m"
	ansiRed     = "\033[31m"
	ansiGreen   = "\033[32m"
	ansiYellow  = "\033[33m"
	ansiMagenta = "\033[35m"
)

// plainHandler 只输出消息本身，行为与浏览器控制台一致。
//
// 分组深度通过 depthKey 属性传入，每层缩进两个空格，多行消息逐行缩进。
type plainHandler struct {
	writer io.Writer
	color  bool
	min    slog.Level
	mu     *sync.Mutex
}

func (h *plainHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.min
}

func (h *plainHandler) Handle(_ context.Context, r slog.Record) error {
	depth := 0
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == depthKey {
			depth = int(a.Value.Int64())
			return false
		}
		return true
	})

	indent := strings.Repeat("  ", depth)
	var sb strings.Builder
	for _, line := range strings.Split(r.Message, "\n") {
		sb.WriteString(indent)
		if color := levelColor(r.Level); h.color && color != "" {
			sb.WriteString(color)
			sb.WriteString(line)
			sb.WriteString(ansiReset)
		} else {
			sb.WriteString(line)
		}
		sb.WriteByte('\n')
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.writer, sb.String())
	return err
}

// WithAttrs 返回自身，plainHandler 不输出属性
func (h *plainHandler) WithAttrs([]slog.Attr) slog.Handler {
	return h
}

// WithGroup 返回自身，分组由 Console 自行管理
func (h *plainHandler) WithGroup(string) slog.Handler {
	return h
}

// levelColor 根据级别返回对应的颜色代码。
func levelColor(level slog.Level) string {
	switch {
	case level <= slog.LevelDebug:
		return ansiMagenta
	case level <= LevelLog:
		return "" // log 通道保持终端默认色
	case level <= slog.LevelInfo:
		return ansiGreen
	case level <= slog.LevelWarn:
		return ansiYellow
	default:
		return ansiBold + ansiRed
	}
}
