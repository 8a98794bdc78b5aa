package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	v := viper.New()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	require.NoError(t, BindFlags(flags, v))

	cfg, err := Load(v, "")
	require.NoError(t, err)

	assert.Equal(t, 11, cfg.Grid.Rows)
	assert.Equal(t, []int{4, 4, 4, 8, 4, 4, 4, 8, 4, 8, 8}, cfg.Grid.ColsPerRow)
	assert.Equal(t, 33, cfg.Tick.PeriodMs)
	assert.Equal(t, "0.0.0.0:9001", cfg.Net.Bind)
	assert.False(t, cfg.Headless)

	geo := cfg.Geometry()
	assert.True(t, geo.IsBarRow(3))
	assert.True(t, geo.IsBarRow(7))
	assert.False(t, geo.IsBarRow(0))
}

func TestFlagOverridesDefault(t *testing.T) {
	v := viper.New()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	require.NoError(t, BindFlags(flags, v))
	require.NoError(t, flags.Parse([]string{"--net-bind=127.0.0.1:9100", "--headless"}))

	cfg, err := Load(v, "")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9100", cfg.Net.Bind)
	assert.True(t, cfg.Headless)
}

func TestLoadFromYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "patchdisplay.yaml")
	yaml := "tick:\n  period_ms: 16\nnet:\n  bind: \"0.0.0.0:9999\"\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	v := viper.New()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	require.NoError(t, BindFlags(flags, v))

	cfg, err := Load(v, path)
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Tick.PeriodMs)
	assert.Equal(t, "0.0.0.0:9999", cfg.Net.Bind)
	assert.Equal(t, "debug", cfg.LogLevel)
}
