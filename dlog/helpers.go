package dlog

import (
	"fmt"
	"strings"
)

// lifecycleSeparator 生命周期横幅的分隔线
var lifecycleSeparator = strings.Repeat("═", 30)

// LogPerformance 在 debug 通道输出操作耗时，保留两位小数
func (f *Facade) LogPerformance(operation string, durationMs float64) {
	if !f.IsDebugEnabled() {
		return
	}
	f.Debug(fmt.Sprintf("Performance [%s]: %.2fms", operation, durationMs))
}

// LogLifecycle 在 log 通道输出三行横幅
//
//	══════════════════════════════
//	    LIFECYCLE: <name>
//	══════════════════════════════
func (f *Facade) LogLifecycle(name string) {
	if !f.IsDebugEnabled() {
		return
	}
	f.Log(lifecycleSeparator + "\n    LIFECYCLE: " + name + "\n" + lifecycleSeparator)
}

// LogAPICall 在 debug 通道输出 API 调用摘要
//
// status 为 0 时省略状态段，responseTimeMs 为 0 时省略耗时段。
func (f *Facade) LogAPICall(method, url string, status int, responseTimeMs float64) {
	if !f.IsDebugEnabled() {
		return
	}

	msg := "API " + strings.ToUpper(method) + " " + url
	if status != 0 {
		msg += fmt.Sprintf(" [%d]", status)
	}
	if responseTimeMs != 0 {
		msg += fmt.Sprintf(" (%.2fms)", responseTimeMs)
	}
	f.Debug(msg)
}

// LogStateChange 在 debug 通道输出组件状态变化
//
// 是否附带新值由参数个数决定：传了 value（哪怕是 0、false 或 nil）就输出 " = <value>"。
// 结构化值一律显示为 [Object]，不展开。
func (f *Facade) LogStateChange(component, state string, value ...any) {
	if !f.IsDebugEnabled() {
		return
	}

	msg := "[" + component + "] State Change: " + state
	if len(value) > 0 {
		v := value[0]
		if isStructured(v) {
			msg += " = [Object]"
		} else {
			msg += " = " + Stringify(v)
		}
	}
	f.Debug(msg)
}

// LogError 在 error 通道输出错误摘要，只包含 err 的消息文本，不含堆栈
func (f *Facade) LogError(message string, err error) {
	if !f.IsDebugEnabled() {
		return
	}
	if err != nil {
		f.Error(message + ": " + err.Error())
		return
	}
	f.Error(message)
}

// LogUserAction 在 debug 通道输出用户操作，details 为空时省略
func (f *Facade) LogUserAction(action, details string) {
	if !f.IsDebugEnabled() {
		return
	}
	msg := "USER ACTION: " + action
	if details != "" {
		msg += " - " + details
	}
	f.Debug(msg)
}

// LogNavigation 在 debug 通道输出页面导航
func (f *Facade) LogNavigation(from, to string) {
	if !f.IsDebugEnabled() {
		return
	}
	f.Debug("NAVIGATION: " + from + " → " + to)
}

// Group 开启以 name 为标题的控制台分组并执行 fn
//
// 调试开关关闭时 fn 不会执行：分组内容被视为仅调试用的工作。
// fn 中可以继续调用门面方法，嵌套由控制台负责。fn panic 时分组依然会被关闭。
func (f *Facade) Group(name string, fn func()) {
	if !f.IsDebugEnabled() {
		return
	}
	f.console.Group(f.FormatMessage(name))
	defer f.console.GroupEnd()
	fn()
}
