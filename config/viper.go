package config

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/ceyewan/stardyn/xerrors"
)

// watchBuffer 每个订阅通道的缓冲，满时丢弃事件
const watchBuffer = 10

type subscription struct {
	last  any
	chans []chan Event
}

type viperLoader struct {
	cfg    Config
	v      *viper.Viper
	logger *slog.Logger

	mu   sync.Mutex
	subs map[string]*subscription
}

func newViperLoader(cfg Config) *viperLoader {
	return &viperLoader{
		cfg:    cfg,
		v:      viper.New(),
		logger: slog.Default().With("component", "config"),
		subs:   make(map[string]*subscription),
	}
}

func (l *viperLoader) Load(_ context.Context) error {
	l.configure()
	l.loadDotEnv()

	if err := l.readBase(); err != nil {
		return err
	}
	if err := l.mergeOverlay(); err != nil {
		return err
	}
	if len(l.v.AllSettings()) == 0 {
		return xerrors.Wrapf(ErrValidationFailed, "no settings found for %s in %v", l.cfg.Name, l.cfg.Paths)
	}

	if l.v.ConfigFileUsed() == "" {
		return nil
	}
	// viper 变更时只重读基础文件，叠加层需要重新合并
	l.v.OnConfigChange(func(e fsnotify.Event) {
		if err := l.mergeOverlay(); err != nil {
			l.logger.Error("reload overlay failed", "file", e.Name, "error", err)
		}
		l.broadcast()
	})
	l.v.WatchConfig()
	return nil
}

func (l *viperLoader) configure() {
	l.v.SetConfigName(l.cfg.Name)
	l.v.SetConfigType(l.cfg.FileType)
	for _, p := range l.cfg.Paths {
		l.v.AddConfigPath(p)
	}
	l.v.SetEnvPrefix(l.cfg.EnvPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()
}

// loadDotEnv 加载工作目录与搜索目录下的 .env，已存在的环境变量不会被覆盖
func (l *viperLoader) loadDotEnv() {
	var files []string
	for _, dir := range append([]string{"."}, l.cfg.Paths...) {
		file, err := filepath.Abs(filepath.Join(dir, ".env"))
		if err != nil || slices.Contains(files, file) {
			continue
		}
		if _, err := os.Stat(file); err == nil {
			files = append(files, file)
		}
	}
	if len(files) == 0 {
		return
	}
	if err := godotenv.Load(files...); err != nil {
		l.logger.Warn("load .env failed", "files", files, "error", err)
	}
}

func (l *viperLoader) readBase() error {
	err := l.v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &notFound):
		l.logger.Warn("no config file found", "name", l.cfg.Name, "paths", l.cfg.Paths)
		return nil
	default:
		return WrapLoadError(err, l.cfg.Name)
	}
}

// mergeOverlay 合并 <Name>.<Env>.<FileType>，只取搜索目录中第一个存在的文件
func (l *viperLoader) mergeOverlay() error {
	if l.cfg.Env == "" {
		return nil
	}
	name := l.cfg.Name + "." + l.cfg.Env + "." + l.cfg.FileType
	for _, dir := range l.cfg.Paths {
		file := filepath.Join(dir, name)
		f, err := os.Open(file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return WrapLoadError(err, file)
		}
		err = l.v.MergeConfig(f)
		f.Close()
		if err != nil {
			return WrapLoadError(err, file)
		}
		return nil
	}
	l.logger.Info("no overlay config", "env", l.cfg.Env, "name", name)
	return nil
}

func (l *viperLoader) Get(key string) any {
	return l.v.Get(key)
}

func (l *viperLoader) IsSet(key string) bool {
	return l.v.IsSet(key)
}

func (l *viperLoader) UnmarshalKey(key string, v any) error {
	return l.v.UnmarshalKey(key, v)
}

func (l *viperLoader) Watch(ctx context.Context, key string) (<-chan Event, error) {
	if key == "" {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "watch key is empty")
	}

	l.mu.Lock()
	sub, ok := l.subs[key]
	if !ok {
		sub = &subscription{last: l.v.Get(key)}
		l.subs[key] = sub
	}
	ch := make(chan Event, watchBuffer)
	sub.chans = append(sub.chans, ch)
	l.mu.Unlock()

	go func() {
		<-ctx.Done()
		l.unwatch(key, ch)
	}()
	return ch, nil
}

func (l *viperLoader) unwatch(key string, ch chan Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if sub, ok := l.subs[key]; ok {
		if i := slices.Index(sub.chans, ch); i >= 0 {
			sub.chans = slices.Delete(sub.chans, i, i+1)
		}
		if len(sub.chans) == 0 {
			delete(l.subs, key)
		}
	}
	// broadcast 持有同一把锁，关闭后不会再有发送
	close(ch)
}

// broadcast 向值发生变化的订阅发送事件
func (l *viperLoader) broadcast() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for key, sub := range l.subs {
		val := l.v.Get(key)
		if reflect.DeepEqual(sub.last, val) {
			continue
		}
		ev := Event{Key: key, Value: val, OldValue: sub.last, Timestamp: now}
		sub.last = val
		for _, ch := range sub.chans {
			select {
			case ch <- ev:
			default:
				l.logger.Warn("watch channel full, event dropped", "key", key)
			}
		}
	}
}
