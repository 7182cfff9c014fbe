package dlog_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceyewan/stardyn/config"
	"github.com/ceyewan/stardyn/dlog"
	"github.com/ceyewan/stardyn/testkit"
	"github.com/ceyewan/stardyn/xerrors"
)

func newLoader(t *testing.T, dir string) config.Loader {
	t.Helper()
	return newPrefixedLoader(t, dir, "DLOGTEST"+strings.ToUpper(testkit.NewID()))
}

func newPrefixedLoader(t *testing.T, dir, prefix string) config.Loader {
	t.Helper()
	l, err := config.New(&config.Config{Name: "config", Paths: []string{dir}, EnvPrefix: prefix})
	require.NoError(t, err)
	require.NoError(t, l.Load(context.Background()))
	return l
}

func TestApplyConfig(t *testing.T) {
	dir := testkit.WriteFile(t, "config.yaml", `
dlog:
  appName: Shop
  version: 2.0.0
  debugMode: true
  showTimestamp: false
module:
  moduleName: Billing
`)
	l := newLoader(t, dir)

	app, _ := newApp(t)
	require.NoError(t, app.ApplyConfig(l, "dlog"))
	assert.Equal(t, "Shop", app.Config().ScopeName, "作用域字段作为 scopeName 的别名")
	assert.Equal(t, "2.0.0", app.Config().Version)
	assert.False(t, app.Config().ShowTimestamp)

	mod, _ := newModule(t)
	require.NoError(t, mod.ApplyConfig(l, "module"))
	assert.Equal(t, "Billing", mod.Config().ScopeName)
	assert.Equal(t, "1.0.0", mod.Config().Version, "未出现的字段保持原值")
}

func TestApplyConfigScopeNameWins(t *testing.T) {
	dir := testkit.WriteFile(t, "config.yaml", "dlog:\n  scopeName: Explicit\n  appName: Alias\n")
	app, _ := newApp(t)
	require.NoError(t, app.ApplyConfig(newLoader(t, dir), "dlog"))
	assert.Equal(t, "Explicit", app.Config().ScopeName)
}

func TestApplyConfigMissingKey(t *testing.T) {
	dir := testkit.WriteFile(t, "config.yaml", "other:\n  x: 1\n")
	app, _ := newApp(t)
	before := app.Config()

	err := app.ApplyConfig(newLoader(t, dir), "dlog")
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
	assert.Equal(t, before, app.Config())
}

func TestWatchConfig(t *testing.T) {
	dir := testkit.WriteFile(t, "config.yaml", "dlog:\n  version: 1.0.0\n  debugMode: true\n")
	l := newLoader(t, dir)

	app, _ := newApp(t)
	require.NoError(t, app.ApplyConfig(l, "dlog"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, app.WatchConfig(ctx, l, "dlog"))

	// fsnotify 需要一点时间建立监听
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"),
		[]byte("dlog:\n  version: 3.0.0\n  debugMode: false\n"), 0o644))

	assert.Eventually(t, func() bool {
		cfg := app.Config()
		return cfg.Version == "3.0.0" && !cfg.DebugEnabled
	}, 5*time.Second, 20*time.Millisecond)
}

func TestApplyConfigEnvOverride(t *testing.T) {
	dir := testkit.WriteFile(t, "config.yaml", "dlog:\n  debugMode: true\n  version: 1.5.0\n")
	prefix := "DLOGENV" + strings.ToUpper(testkit.NewID())
	t.Setenv(prefix+"_DLOG_DEBUGMODE", "false")
	t.Setenv(prefix+"_DLOG_APPNAME", "FromEnv")

	app, _ := newApp(t)
	require.NoError(t, app.ApplyConfig(newPrefixedLoader(t, dir, prefix), "dlog"))

	cfg := app.Config()
	assert.False(t, cfg.DebugEnabled, "环境变量覆盖文件中的 debugMode")
	assert.Equal(t, "FromEnv", cfg.ScopeName)
	assert.Equal(t, "1.5.0", cfg.Version)
}

func TestApplyConfigInvalidField(t *testing.T) {
	dir := testkit.WriteFile(t, "config.yaml", "dlog:\n  version: 2.0.0\n  debugMode: maybe\n")
	app, _ := newApp(t)
	before := app.Config()

	err := app.ApplyConfig(newLoader(t, dir), "dlog")
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "dlog.debugMode")
	assert.Equal(t, before, app.Config(), "出错时不应用任何字段")
}

func TestWatchConfigMetrics(t *testing.T) {
	dir := testkit.WriteFile(t, "config.yaml", "dlog:\n  version: 1.0.0\n")
	l := newLoader(t, dir)

	meter, reg := testkit.NewRecordingMeter(t)
	app, _ := newApp(t, dlog.WithMeter(meter))

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, app.WatchConfig(ctx, l, "dlog"))

	watchers := findFamily(t, reg, dlog.MetricConfigWatchers)
	require.Len(t, watchers.GetMetric(), 1)
	assert.Equal(t, "dlog", label(watchers.GetMetric()[0], "key"))
	assert.Equal(t, float64(1), watchers.GetMetric()[0].GetGauge().GetValue())

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("dlog:\n  version: 4.0.0\n"), 0o644))
	require.Eventually(t, func() bool { return app.Config().Version == "4.0.0" }, 5*time.Second, 20*time.Millisecond)

	assert.Eventually(t, func() bool {
		m := metricWith(t, reg, dlog.MetricConfigReloads, "outcome", "success")
		return m != nil && m.GetCounter().GetValue() >= 1
	}, time.Second, 20*time.Millisecond)

	cancel()
	assert.Eventually(t, func() bool {
		m := metricWith(t, reg, dlog.MetricConfigWatchers, "key", "dlog")
		return m != nil && m.GetGauge().GetValue() == 0
	}, time.Second, 20*time.Millisecond)
}

// metricWith 返回 family 中指定标签取值的第一条指标，family 尚未出现时返回 nil
func metricWith(t *testing.T, reg prometheus.Gatherer, prefix, name, value string) *dto.Metric {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if !strings.HasPrefix(strings.ReplaceAll(f.GetName(), ".", "_"), prefix) {
			continue
		}
		for _, m := range f.GetMetric() {
			if label(m, name) == value {
				return m
			}
		}
	}
	return nil
}
