package clog

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/ceyewan/stardyn/xerrors"
)

// consoleImpl 是 Console 接口基于 slog 的实现
type consoleImpl struct {
	out    slog.Handler
	errOut slog.Handler

	mu     sync.Mutex
	groups []string

	closers   []io.Closer
	closeOnce sync.Once
	closeErr  error
}

// newConsole 创建 Console 实例（内部使用）
func newConsole(config *Config, options *options) (Console, error) {
	// validate 已经检查过 Level
	minLevel, _ := ParseChannel(config.Level)

	c := &consoleImpl{}
	w, closer, err := resolveWriter(config.Output, options)
	if err != nil {
		return nil, err
	}
	c.track(closer)
	c.out = newHandler(config.Format, config.EnableColor, minLevel, w, &sync.Mutex{})

	c.errOut = c.out
	if config.ErrorOutput != "" && !strings.EqualFold(config.ErrorOutput, config.Output) {
		ew, closer, err := resolveWriter(config.ErrorOutput, options)
		if err != nil {
			_ = c.Close()
			return nil, err
		}
		c.track(closer)
		c.errOut = newHandler(config.Format, config.EnableColor, minLevel, ew, &sync.Mutex{})
	}

	return c, nil
}

func (c *consoleImpl) track(closer io.Closer) {
	if closer != nil {
		c.closers = append(c.closers, closer)
	}
}

// Close 关闭打开的文件，stdout/stderr 保持打开；重复调用返回第一次的结果
func (c *consoleImpl) Close() error {
	c.closeOnce.Do(func() {
		errs := make([]error, 0, len(c.closers))
		for _, closer := range c.closers {
			errs = append(errs, closer.Close())
		}
		c.closeErr = xerrors.Combine(errs...)
	})
	return c.closeErr
}

func (c *consoleImpl) Log(msg string)   { c.emit(LogChannel, msg) }
func (c *consoleImpl) Info(msg string)  { c.emit(InfoChannel, msg) }
func (c *consoleImpl) Warn(msg string)  { c.emit(WarnChannel, msg) }
func (c *consoleImpl) Error(msg string) { c.emit(ErrorChannel, msg) }
func (c *consoleImpl) Debug(msg string) { c.emit(DebugChannel, msg) }

// Group 在当前深度输出标题，然后进入新的分组
func (c *consoleImpl) Group(label string) {
	c.emit(LogChannel, label)

	c.mu.Lock()
	c.groups = append(c.groups, label)
	c.mu.Unlock()
}

func (c *consoleImpl) GroupEnd() {
	c.mu.Lock()
	if n := len(c.groups); n > 0 {
		c.groups = c.groups[:n-1]
	}
	c.mu.Unlock()
}

// emit 构造 slog.Record 并交给对应通道的 handler
func (c *consoleImpl) emit(ch Channel, msg string) {
	c.mu.Lock()
	depth := len(c.groups)
	path := strings.Join(c.groups, "/")
	c.mu.Unlock()

	h := c.out
	if ch.isError() {
		h = c.errOut
	}

	level := ch.slogLevel()
	ctx := context.Background()
	if !h.Enabled(ctx, level) {
		return
	}

	record := slog.NewRecord(time.Now(), level, msg, 0)
	if depth > 0 {
		record.AddAttrs(slog.String(GroupKey, path), slog.Int(depthKey, depth))
	}

	// 写入失败不属于门面的职责，这里直接忽略
	_ = h.Handle(ctx, record)
}
