package config

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Config 加载器配置
type Config struct {
	// Name 配置文件名（不含扩展名），默认 "config"
	Name string
	// Paths 搜索目录，默认 [".", "./config"]
	Paths []string
	// FileType 文件类型，默认 "yaml"
	FileType string
	// EnvPrefix 环境变量前缀，默认 "STARDYN"
	EnvPrefix string
	// Env 叠加层名称，加载 <Name>.<Env>.<FileType>；为空时读取 <EnvPrefix>_ENV
	Env string
}

// withDefaults 返回填充了默认值的副本
func (c Config) withDefaults() Config {
	if c.Name == "" {
		c.Name = "config"
	}
	if len(c.Paths) == 0 {
		c.Paths = []string{".", "./config"}
	}
	if c.FileType == "" {
		c.FileType = "yaml"
	}
	if c.EnvPrefix == "" {
		c.EnvPrefix = "STARDYN"
	}
	c.EnvPrefix = strings.ToUpper(c.EnvPrefix)
	if c.Env == "" {
		c.Env = os.Getenv(c.EnvPrefix + "_ENV")
	}
	return c
}

// New 创建配置加载器，需要调用 Load 后才能读取配置；cfg 为 nil 时全部使用默认值
func New(cfg *Config) (Loader, error) {
	var c Config
	if cfg != nil {
		c = *cfg
	}
	return newViperLoader(c.withDefaults()), nil
}

// Load 按选项创建并加载配置
func Load(ctx context.Context, opts ...Option) (Loader, error) {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}

	l, err := New(&cfg)
	if err != nil {
		return nil, err
	}
	if err := l.Load(ctx); err != nil {
		return nil, err
	}
	return l, nil
}

// MustLoad 类似 Load，但出错时 panic，仅用于初始化阶段
func MustLoad(opts ...Option) Loader {
	l, err := Load(context.Background(), opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return l
}
