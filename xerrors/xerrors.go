// Package xerrors 是 stardyn 各组件共用的错误约定。
//
// 组件返回的错误都由哨兵错误加上下文构成，调用方用 Is 判断类别：
//
//	err := app.ApplyConfig(loader, "dlog")
//	if xerrors.Is(err, xerrors.ErrNotFound) {
//	    // 配置文件中没有 dlog 段，保持默认值
//	}
package xerrors

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput 参数或配置不合法
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound 请求的配置段或资源不存在
	ErrNotFound = errors.New("not found")
)

// Wrap 在 err 前追加 msg，err 为 nil 时返回 nil
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf 同 Wrap，msg 由 format 生成
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Must 在 err 不为 nil 时 panic，仅用于 MustNewXxx 一类的初始化入口
func Must[T any](v T, err error) T {
	if err != nil {
		panic(fmt.Sprintf("must: %v", err))
	}
	return v
}

// Combine 汇总关闭多个组件时产生的错误
//
// 忽略 nil；只有一个错误时原样返回，多个时用 errors.Join 连接。
func Combine(errs ...error) error {
	var first error
	n := 0
	for _, err := range errs {
		if err != nil {
			if n == 0 {
				first = err
			}
			n++
		}
	}
	if n <= 1 {
		return first
	}
	return errors.Join(errs...)
}

var (
	New = errors.New
	Is  = errors.Is
)
