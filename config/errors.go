package config

import "github.com/ceyewan/stardyn/xerrors"

// ErrValidationFailed 所有来源合并后配置为空
var ErrValidationFailed = xerrors.Wrap(xerrors.ErrInvalidInput, "configuration validation failed")

// IsNotFound 判断是否为缺少配置段，例如 dlog.ApplyConfig 找不到 key
func IsNotFound(err error) bool {
	return xerrors.Is(err, xerrors.ErrNotFound)
}

// IsInvalidInput 判断是否为配置内容无效
func IsInvalidInput(err error) bool {
	return xerrors.Is(err, xerrors.ErrInvalidInput)
}

// WrapLoadError 为读取或合并某个配置文件时的错误追加文件名
func WrapLoadError(err error, file string) error {
	return xerrors.Wrapf(err, "failed to load config %s", file)
}
