package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConfigDefaults 测试默认值填充
func TestConfigDefaults(t *testing.T) {
	t.Setenv("SHOP_ENV", "staging")
	cfg := Config{EnvPrefix: "shop"}.withDefaults()

	assert.Equal(t, "config", cfg.Name)
	assert.Equal(t, []string{".", "./config"}, cfg.Paths)
	assert.Equal(t, "yaml", cfg.FileType)
	assert.Equal(t, "SHOP", cfg.EnvPrefix)
	assert.Equal(t, "staging", cfg.Env, "叠加层名称来自 <前缀>_ENV")

	explicit := Config{EnvPrefix: "shop", Env: "prod"}.withDefaults()
	assert.Equal(t, "prod", explicit.Env)

	empty := Config{}.withDefaults()
	assert.Equal(t, "STARDYN", empty.EnvPrefix)
}

// TestNew 测试创建配置加载器
func TestNew(t *testing.T) {
	l, err := New(nil)
	require.NoError(t, err)
	require.NotNil(t, l)

	l, err = New(&Config{Name: "app", Paths: []string{t.TempDir()}, FileType: "json"})
	require.NoError(t, err)
	require.NotNil(t, l)
}

// TestLoadWithOptions 测试通过选项一步加载
func TestLoadWithOptions(t *testing.T) {
	dir := t.TempDir()
	content := `{"dlog": {"appName": "Shop", "debugMode": false}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.json"), []byte(content), 0644))

	l, err := Load(context.Background(),
		WithName("settings"),
		WithPaths(dir),
		WithFileType("json"),
		WithEnvPrefix("DLOGTEST"),
	)
	require.NoError(t, err)

	assert.Equal(t, "Shop", l.Get("dlog.appName"))
	assert.Equal(t, false, l.Get("dlog.debugMode"))
	assert.Nil(t, l.Get("dlog.version"))
}

// TestLoadMissingFile 测试没有任何配置时验证失败
func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(),
		WithPaths(t.TempDir()),
		WithEnvPrefix("DLOGEMPTY"),
	)
	require.Error(t, err)
	assert.True(t, IsInvalidInput(err))
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestMustLoadPanics(t *testing.T) {
	assert.Panics(t, func() {
		MustLoad(WithPaths(t.TempDir()), WithEnvPrefix("DLOGPANIC"))
	})
}
