package dlog

import (
	"strings"

	"github.com/ceyewan/stardyn/xerrors"
)

// ModuleFacade 模块作用域的门面，在 Facade 之上增加模块与服务初始化日志
type ModuleFacade struct {
	*Facade
}

// NewModule 创建模块作用域的门面
func NewModule(opts ...Option) (*ModuleFacade, error) {
	f, err := New(ModuleScope, opts...)
	if err != nil {
		return nil, err
	}
	return &ModuleFacade{Facade: f}, nil
}

// MustNewModule 类似 NewModule，但出错时 panic，仅用于初始化阶段
func MustNewModule(opts ...Option) *ModuleFacade {
	return xerrors.Must(NewModule(opts...))
}

// LogModuleInit 输出模块初始化横幅，features 非空时在 info 通道列出启用的特性
func (m *ModuleFacade) LogModuleInit(moduleName string, features ...string) {
	if !m.IsDebugEnabled() {
		return
	}
	m.LogLifecycle("Module Initialized: " + moduleName)
	if len(features) > 0 {
		m.Info("Features enabled: " + strings.Join(features, ", "))
	}
}

// LogServiceInit 在 debug 通道输出服务初始化
//
// 传入 config 时追加一行 "Configuration:"，后接 config 的结构化渲染。
func (m *ModuleFacade) LogServiceInit(serviceName string, config ...any) {
	if !m.IsDebugEnabled() {
		return
	}
	m.Debug("Service initialized: " + serviceName)
	if len(config) > 0 {
		m.Debug("Configuration:", config[0])
	}
}
