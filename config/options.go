package config

// Option 修改加载器配置
type Option func(*Config)

// WithName 配置文件名（不含扩展名）
func WithName(name string) Option {
	return func(c *Config) { c.Name = name }
}

// WithPaths 替换搜索目录
func WithPaths(paths ...string) Option {
	return func(c *Config) { c.Paths = paths }
}

// WithFileType 文件类型：yaml、json、toml
func WithFileType(typ string) Option {
	return func(c *Config) { c.FileType = typ }
}

// WithEnvPrefix 环境变量前缀，STARDYN_DLOG_DEBUGMODE 对应 dlog.debugMode
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) { c.EnvPrefix = prefix }
}

// WithEnv 指定叠加层，优先于 <EnvPrefix>_ENV 环境变量
func WithEnv(env string) Option {
	return func(c *Config) { c.Env = env }
}
