package dlog

// Config 门面配置，任何时候都是完整的，没有缺省字段
type Config struct {
	ScopeName     string `json:"scopeName" yaml:"scopeName"`
	Version       string `json:"version" yaml:"version"`
	DebugEnabled  bool   `json:"debugEnabled" yaml:"debugEnabled"`
	ShowTimestamp bool   `json:"showTimestamp" yaml:"showTimestamp"`
}

// Patch 稀疏的配置更新，nil 字段表示保持原值
//
// ApplyConfig 按配置文件中的字段名逐个填充：
//
//	dlog:
//	  version: 2.0.0
//	  debugMode: false
type Patch struct {
	ScopeName     *string
	Version       *string
	DebugMode     *bool
	ShowTimestamp *bool
}

// Ptr 返回 v 的指针，便于内联构造 Patch
func Ptr[T any](v T) *T {
	return &v
}

// apply 把非 nil 字段合并进 cfg
func (p Patch) apply(cfg *Config) {
	if p.ScopeName != nil {
		cfg.ScopeName = *p.ScopeName
	}
	if p.Version != nil {
		cfg.Version = *p.Version
	}
	if p.DebugMode != nil {
		cfg.DebugEnabled = *p.DebugMode
	}
	if p.ShowTimestamp != nil {
		cfg.ShowTimestamp = *p.ShowTimestamp
	}
}

// Scope 描述门面实例代表的身份
//
// Field 是配置文件中该作用域名称字段的键（如 appName），
// 加载配置时作为 scopeName 的别名；DefaultName 是默认的前缀名称。
type Scope struct {
	Field       string
	DefaultName string
}

var (
	// AppScope 应用作用域
	AppScope = Scope{Field: "appName", DefaultName: "StardynApp"}

	// ModuleScope 模块作用域
	ModuleScope = Scope{Field: "moduleName", DefaultName: "StardynModule"}
)

// DefaultVersion 默认显示的版本号
const DefaultVersion = "1.0.0"

// DefaultConfig 返回作用域的默认配置
func (s Scope) DefaultConfig() Config {
	return Config{
		ScopeName:     s.DefaultName,
		Version:       DefaultVersion,
		DebugEnabled:  true,
		ShowTimestamp: true,
	}
}
