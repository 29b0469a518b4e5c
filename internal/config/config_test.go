package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptodash/internal/layoutstore"
	"cryptodash/internal/portfolio"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "https://api.coincap.io/v2", cfg.API.BaseURL)
	assert.Equal(t, 60*time.Second, cfg.API.Refresh)
	assert.Zero(t, cfg.API.Timeout)
	assert.Equal(t, layoutstore.BackendFile, cfg.Store.Backend)
	assert.Equal(t, 3, cfg.Dashboard.RowLines)
	assert.False(t, cfg.Dashboard.DropSizeOnRemove)
	assert.Equal(t, []string{"bitcoin", "ethereum", "tether"}, cfg.Holdings.IDs())
	assert.NotEmpty(t, cfg.News.Markdown)
}

func TestParse_Full(t *testing.T) {
	src := `
api {
  base_url       = "http://localhost:9999/v2"
  fear_greed_url = "http://localhost:9999/fng/"
  data_path      = "$.result"
  refresh        = "30s"
  timeout        = "5s"
}
store {
  backend = "sqlite"
  path    = "/tmp/cryptodash-test"
}
dashboard {
  drop_size_on_remove = true
  row_lines           = 4
}
market {
  assets    = ["bitcoin", "dogecoin"]
  top_limit = 5
  chart     = "ethereum"
  interval  = "d1"
}
holding "dogecoin" { amount = "1000.25" }
holding "bitcoin"  { amount = "0.1" }
news {
  markdown = "# Hello"
}
`
	cfg, err := Parse([]byte(src), "test.hcl")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999/v2", cfg.API.BaseURL)
	assert.Equal(t, "http://localhost:9999/fng/", cfg.API.FearGreedURL)
	assert.Equal(t, "$.result", cfg.API.DataPath)
	assert.Equal(t, 30*time.Second, cfg.API.Refresh)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, StoreConfig{Backend: "sqlite", Path: "/tmp/cryptodash-test"}, cfg.Store)
	assert.Equal(t, DashboardConfig{DropSizeOnRemove: true, RowLines: 4}, cfg.Dashboard)
	assert.Equal(t, MarketConfig{Assets: []string{"bitcoin", "dogecoin"}, TopLimit: 5, Chart: "ethereum", Interval: "d1"}, cfg.Market)
	require.Equal(t, []string{"dogecoin", "bitcoin"}, cfg.Holdings.IDs())
	assert.True(t, cfg.Holdings.Amount("dogecoin").Equal(decimal.RequireFromString("1000.25")))
	assert.Equal(t, "# Hello", cfg.News.Markdown)
}

func TestParse_EmptyKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte(""), "empty.hcl")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_PartialBlock(t *testing.T) {
	cfg, err := Parse([]byte(`api { timeout = "2s" }`), "partial.hcl")
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.API.Timeout)
	assert.Equal(t, Default().API.BaseURL, cfg.API.BaseURL)
	assert.Equal(t, Default().API.Refresh, cfg.API.Refresh)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"syntax", `api {`, "failed to parse"},
		{"unknown block", `nope {}`, "failed to decode"},
		{"bad duration", `api { refresh = "soon" }`, "api.refresh"},
		{"negative duration", `api { timeout = "-1s" }`, "api.timeout"},
		{"bad backend", `store { backend = "redis" }`, "unknown backend"},
		{"row lines", `dashboard { row_lines = 0 }`, "row_lines"},
		{"bad amount", `holding "bitcoin" { amount = "lots" }`, "invalid amount"},
		{"duplicate holding", "holding \"a\" { amount = \"1\" }\nholding \"a\" { amount = \"2\" }", "declared twice"},
		{"missing amount", `holding "bitcoin" {}`, "failed to decode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "bad.hcl")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParse_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	cfg, err := Parse([]byte(`store { path = "~/dash" }`), "home.hcl")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "dash"), cfg.Store.Path)
}

func TestLoad_MissingDefaultFileUsesDefaults(t *testing.T) {
	t.Setenv(ConfigEnv, filepath.Join(t.TempDir(), "missing.hcl"))
	t.Setenv(APIURLEnv, "")
	t.Setenv(StoreDirEnv, "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().API, cfg.API)
	assert.Equal(t, portfolio.DefaultHoldings(), cfg.Holdings)
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	assert.Error(t, err)
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
api { base_url = "http://from-file" }
store { path = "/from/file" }
`), 0o644))

	t.Setenv(APIURLEnv, "")
	t.Setenv(StoreDirEnv, "")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://from-file", cfg.API.BaseURL)
	assert.Equal(t, "/from/file", cfg.Store.Path)

	t.Setenv(APIURLEnv, "http://from-env")
	t.Setenv(StoreDirEnv, "/from/env")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env", cfg.API.BaseURL)
	assert.Equal(t, "/from/env", cfg.Store.Path)
}

func TestLoad_ConfigEnvSelectsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alt.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`market { top_limit = 3 }`), 0o644))
	t.Setenv(ConfigEnv, path)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Market.TopLimit)
}
