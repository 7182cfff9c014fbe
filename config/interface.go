// Package config 加载 stardyn 的配置文件，并在文件变化时通知订阅者。
//
// 来源优先级（高到低）：环境变量 > .env 文件 > 叠加层 config.<env>.yaml > config.yaml。
// 环境变量按 <前缀>_<路径> 命名，路径中的点换成下划线，例如
// STARDYN_DLOG_DEBUGMODE 覆盖 dlog.debugMode。环境变量只作用于叶子键，
// 因此读取时应使用 Get/IsSet 逐个字段读取，UnmarshalKey 只看到文件内容。
//
// 日志门面的典型用法：
//
//	loader := config.MustLoad(config.WithPaths("./config"))
//	app := dlog.MustNewApp()
//	_ = app.ApplyConfig(loader, "dlog")
//	_ = app.WatchConfig(ctx, loader, "dlog")
package config

import (
	"context"
	"time"
)

// Loader 配置加载器
type Loader interface {
	// Load 读取所有来源并开始监听文件变化
	Load(ctx context.Context) error

	// Get 返回 key 的值（环境变量优先），不存在时返回 nil
	Get(key string) any

	// IsSet 判断 key 是否在任一来源中出现
	IsSet(key string) bool

	// UnmarshalKey 将文件中 key 段解码到 v
	UnmarshalKey(key string, v any) error

	// Watch 订阅 key 的变化，ctx 结束后通道关闭
	Watch(ctx context.Context, key string) (<-chan Event, error)
}

// Event 一次配置变化
type Event struct {
	Key       string
	Value     any
	OldValue  any
	Timestamp time.Time
}
