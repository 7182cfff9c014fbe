package dlog

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// timestampLayout 时间戳前缀格式，取 UTC 时刻并截断到整秒
const timestampLayout = "15:04:05"

// FormatMessage 组装前缀并拼接参数
//
// 结果形如 "[15:04:05] [StardynApp v1.0.0] arg1 arg2"，时间戳段只在
// ShowTimestamp 打开时出现。每个参数按 Stringify 的规则转换，以单个空格连接。
func (f *Facade) FormatMessage(args ...any) string {
	cfg := f.Config()

	var sb strings.Builder
	if cfg.ShowTimestamp {
		sb.WriteByte('[')
		sb.WriteString(f.clock.Now().UTC().Format(timestampLayout))
		sb.WriteString("] ")
	}
	sb.WriteByte('[')
	sb.WriteString(cfg.ScopeName)
	sb.WriteString(" v")
	sb.WriteString(cfg.Version)
	sb.WriteByte(']')

	for _, arg := range args {
		sb.WriteByte(' ')
		sb.WriteString(Stringify(arg))
	}
	return sb.String()
}

// Stringify 把单个参数转换为文本
//
// 标量（字符串、数字、布尔、error、fmt.Stringer）使用自然文本，nil 与 nil 指针输出 "<nil>"；
// 结构化值（map、slice、array、struct 及其指针）渲染为两空格缩进的 JSON。
// 渲染失败时退回自然文本；自引用结构退回 "[类型名]"，避免无限递归。
func Stringify(v any) string {
	if isNil(v) {
		return "<nil>"
	}

	switch x := v.(type) {
	case string:
		return x
	case error, fmt.Stringer:
		// fmt 会拦截 Error/String 方法内部的 panic
		return fmt.Sprint(x)
	}

	if !isStructured(v) {
		return fmt.Sprint(v)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		var uve *json.UnsupportedValueError
		if errors.As(err, &uve) && strings.HasPrefix(uve.Str, "encountered a cycle") {
			return fmt.Sprintf("[%T]", v)
		}
		return fmt.Sprint(v)
	}
	return string(data)
}

// isNil 判断 v 是否为 nil 或持有 nil 指针
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// isStructured 判断值是否为结构化数据，指针与接口会被逐层解开
func isStructured(v any) bool {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		return true
	default:
		return false
	}
}
