package dlog

import (
	"context"
	"log/slog"

	"github.com/spf13/cast"

	"github.com/ceyewan/stardyn/config"
	"github.com/ceyewan/stardyn/metrics"
	"github.com/ceyewan/stardyn/xerrors"
)

const (
	// MetricConfigReloads 热更新次数，标签 scope、key、outcome
	MetricConfigReloads = "dlog_config_reloads"
	// MetricConfigWatchers 正在运行的配置监听数量，标签 scope、key
	MetricConfigWatchers = "dlog_config_watchers"
)

// ApplyConfig 从配置加载器读取 key 下的稀疏配置并合并
//
// 识别的字段：scopeName（或作用域字段，如 appName/moduleName）、version、
// debugMode、showTimestamp。未出现的字段保持原值。
// 每个字段单独读取，因此 STARDYN_DLOG_DEBUGMODE=false 这类环境变量会覆盖文件中的值。
// key 不存在时返回包装了 xerrors.ErrNotFound 的错误；任一字段类型不对时不修改配置。
func (f *Facade) ApplyConfig(loader config.Loader, key string) error {
	if !loader.IsSet(key) {
		return xerrors.Wrapf(xerrors.ErrNotFound, "config key %q", key)
	}

	p, err := f.readPatch(loader, key)
	if err != nil {
		return err
	}
	f.Configure(p)
	return nil
}

func (f *Facade) readPatch(loader config.Loader, key string) (Patch, error) {
	var (
		p   Patch
		err error
	)
	if p.ScopeName, err = readField(loader, key+".scopeName", cast.ToStringE); err != nil {
		return p, err
	}
	if p.ScopeName == nil {
		if p.ScopeName, err = readField(loader, key+"."+f.scope.Field, cast.ToStringE); err != nil {
			return p, err
		}
	}
	if p.Version, err = readField(loader, key+".version", cast.ToStringE); err != nil {
		return p, err
	}
	if p.DebugMode, err = readField(loader, key+".debugMode", cast.ToBoolE); err != nil {
		return p, err
	}
	if p.ShowTimestamp, err = readField(loader, key+".showTimestamp", cast.ToBoolE); err != nil {
		return p, err
	}
	return p, nil
}

// readField 读取单个叶子键，未设置时返回 nil
func readField[T any](loader config.Loader, path string, conv func(any) (T, error)) (*T, error) {
	if !loader.IsSet(path) {
		return nil, nil
	}
	v, err := conv(loader.Get(path))
	if err != nil {
		return nil, xerrors.Wrapf(xerrors.ErrInvalidInput, "%s: %v", path, err)
	}
	return &v, nil
}

// WatchConfig 监听 key 的变化，每次变化后重新执行 ApplyConfig，直到 ctx 结束
func (f *Facade) WatchConfig(ctx context.Context, loader config.Loader, key string) error {
	events, err := loader.Watch(ctx, key)
	if err != nil {
		return xerrors.Wrapf(err, "watch config key %q", key)
	}

	// 热更新可能修改 scopeName，Inc 与 Dec 使用同一组标签
	labels := []metrics.Label{
		metrics.L(metrics.LabelScope, f.Config().ScopeName),
		metrics.L(metrics.LabelKey, key),
	}
	if f.watchers != nil {
		f.watchers.Inc(ctx, labels...)
	}
	go func() {
		if f.watchers != nil {
			defer f.watchers.Dec(context.Background(), labels...)
		}
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-events:
				if !ok {
					return
				}
				err := f.ApplyConfig(loader, key)
				f.countReload(ctx, key, err)
				if err != nil {
					slog.Default().Warn("dlog: failed to reload config", "key", key, "error", err)
				}
			}
		}
	}()

	return nil
}

func (f *Facade) countReload(ctx context.Context, key string, err error) {
	if f.reloads == nil {
		return
	}
	f.reloads.Inc(ctx,
		metrics.L(metrics.LabelScope, f.Config().ScopeName),
		metrics.L(metrics.LabelKey, key),
		metrics.L(metrics.LabelOutcome, metrics.Outcome(err)),
	)
}
