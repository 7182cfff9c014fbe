// Package clog 为 stardyn 日志门面提供宿主控制台能力。
//
// 控制台拥有五个相互独立的输出通道（log、info、warn、error、debug），
// 以及可嵌套的分组（Group/GroupEnd）。门面只依赖 Console 接口，
// 因此测试中可以注入 Recorder 捕获所有输出。
//
// 特性：
//   - 基于 slog 的实现，支持 console/text/json 三种格式
//   - warn/error 可以单独路由到 stderr
//   - 分组在 console 格式下按两个空格缩进，在 text/json 格式下输出 group 字段
//   - Recorder 测试替身与 Discard 静默实现
//
// 基本使用：
//
//	console, _ := clog.New(&clog.Config{
//	    Format:      "console",
//	    Output:      "stdout",
//	    ErrorOutput: "stderr",
//	})
//	defer console.Close()
//	console.Info("[Shop v2.1.0] ready")
//
//	console.Group("[Shop v2.1.0] checkout")
//	console.Debug("[Shop v2.1.0] step 1")
//	console.GroupEnd()
package clog

// Console 宿主控制台接口
//
// 五个通道彼此独立：warn 与 error 在支持区分的宿主上必须与 info 可区分。
// 写入失败由实现自行吞掉，不向调用方传播。
type Console interface {
	Log(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string)
	Debug(msg string)

	// Group 以 label 为标题开启一个分组，后续输出位于该分组内，可嵌套
	Group(label string)

	// GroupEnd 关闭最近开启的分组；没有打开的分组时为空操作
	GroupEnd()

	// Close 释放输出目标打开的文件，之后不应再写入
	Close() error
}
