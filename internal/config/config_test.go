package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/scanfield/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.BarcodeLength)
	assert.Equal(t, 50*time.Millisecond, cfg.InputDelay)
	assert.Equal(t, "barcode", cfg.FieldName)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, "default", cfg.Theme)
	assert.NotContains(t, cfg.StoragePath, "~")
}

func TestLoad_FromViper(t *testing.T) {
	v := viper.New()
	v.Set(KeyBarcodeLength, 13)
	v.Set(KeyInputDelay, 120)
	v.Set(KeyFieldName, "ean")
	v.Set(KeyStoragePath, "/tmp/scans.db")
	v.Set(KeyLogLevel, "debug")
	v.Set(KeyLogFormat, "json")
	v.Set(KeyLogFile, "")
	v.Set(KeyTheme, "catppuccin")

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, 13, cfg.BarcodeLength)
	assert.Equal(t, 120*time.Millisecond, cfg.InputDelay)
	assert.Equal(t, "ean", cfg.FieldName)
	assert.Equal(t, "/tmp/scans.db", cfg.StoragePath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Empty(t, cfg.LogFile)
	assert.Equal(t, "catppuccin", cfg.Theme)
	assert.Len(t, cfg.ScannerOptions(), 3)
}

func TestLoad_ZeroDelayIsAllowed(t *testing.T) {
	v := viper.New()
	v.Set(KeyInputDelay, 0)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Zero(t, cfg.InputDelay)
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
	}{
		{name: "zero length", key: KeyBarcodeLength, value: 0},
		{name: "negative length", key: KeyBarcodeLength, value: -8},
		{name: "negative delay", key: KeyInputDelay, value: -1},
		{name: "bad level", key: KeyLogLevel, value: "loud"},
		{name: "bad format", key: KeyLogFormat, value: "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			v.Set(tt.key, tt.value)

			_, err := Load(v)
			require.Error(t, err)
			assert.True(t, common.IsConfigError(err), err.Error())
		})
	}
}

func TestSetDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	assert.Equal(t, 8, v.GetInt(KeyBarcodeLength))
	assert.Equal(t, int64(50), v.GetInt64(KeyInputDelay))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("SCANFIELD_TEST_DIR", "/var/data")

	tests := []struct {
		input string
		want  string
	}{
		{input: "", want: ""},
		{input: "~", want: home},
		{input: "~/scans.db", want: filepath.Join(home, "scans.db")},
		{input: "$SCANFIELD_TEST_DIR/scans.db", want: "/var/data/scans.db"},
		{input: "/abs/path.db", want: "/abs/path.db"},
		{input: "~other/x", want: "~other/x"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.input))
		})
	}
}
