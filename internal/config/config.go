// Package config loads the cryptodash HCL configuration file and applies
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"

	"cryptodash/internal/layoutstore"
	"cryptodash/internal/portfolio"
	"cryptodash/internal/prices"
)

// Environment variables.
const (
	ConfigEnv   = "CRYPTODASH_CONFIG"
	APIURLEnv   = "CRYPTODASH_API_URL"
	StoreDirEnv = layoutstore.StoreDirEnv
)

// DefaultConfigPath is the config file location relative to the home directory.
const DefaultConfigPath = ".config/cryptodash/config.hcl"

// Config is the resolved configuration.
type Config struct {
	API       APIConfig
	Store     StoreConfig
	Dashboard DashboardConfig
	Market    MarketConfig
	Holdings  portfolio.Holdings
	News      NewsConfig
}

// APIConfig configures the price client.
type APIConfig struct {
	BaseURL      string
	FearGreedURL string
	DataPath     string
	// Refresh is the interval between price refreshes. Zero disables it.
	Refresh time.Duration
	// Timeout bounds each request. Zero leaves the HTTP client default.
	Timeout time.Duration
}

// StoreConfig selects the layout persistence backend.
type StoreConfig struct {
	Backend string
	Path    string
}

// DashboardConfig tunes the dashboard controller.
type DashboardConfig struct {
	DropSizeOnRemove bool
	// RowLines is the number of terminal lines in one grid row.
	RowLines int
}

// MarketConfig selects the assets shown by the market widgets.
type MarketConfig struct {
	Assets   []string
	TopLimit int
	Chart    string
	Interval string
}

// NewsConfig holds the markdown rendered by the news widget.
type NewsConfig struct {
	Markdown string
}

// DefaultNews is the news widget content when none is configured.
const DefaultNews = `# Crypto News

- **Bitcoin** holds above key support as ETF inflows continue.
- **Ethereum** gas fees drop to multi-month lows.
- **Stablecoins** pass a new supply record.

_Configure headlines in the ` + "`news`" + ` block of config.hcl._
`

// Default returns the built-in configuration.
func Default() Config {
	storeDir, err := layoutstore.DefaultDir()
	if err != nil {
		storeDir = filepath.Join(os.TempDir(), "cryptodash")
	}
	return Config{
		API: APIConfig{
			BaseURL:      prices.DefaultBaseURL,
			FearGreedURL: prices.DefaultFearGreedURL,
			DataPath:     prices.DefaultDataPath,
			Refresh:      60 * time.Second,
		},
		Store: StoreConfig{
			Backend: layoutstore.BackendFile,
			Path:    storeDir,
		},
		Dashboard: DashboardConfig{RowLines: 3},
		Market: MarketConfig{
			Assets:   []string{"bitcoin", "ethereum", "tether", "solana", "ripple"},
			TopLimit: 10,
			Chart:    "bitcoin",
			Interval: "h1",
		},
		Holdings: portfolio.DefaultHoldings(),
		News:     NewsConfig{Markdown: DefaultNews},
	}
}

// hclFile is the decoded shape of a config file. Every block and attribute
// is optional; absent values keep their defaults.
type hclFile struct {
	API       *hclAPI       `hcl:"api,block"`
	Store     *hclStore     `hcl:"store,block"`
	Dashboard *hclDashboard `hcl:"dashboard,block"`
	Market    *hclMarket    `hcl:"market,block"`
	Holdings  []*hclHolding `hcl:"holding,block"`
	News      *hclNews      `hcl:"news,block"`
}

type hclAPI struct {
	BaseURL      *string `hcl:"base_url,optional"`
	FearGreedURL *string `hcl:"fear_greed_url,optional"`
	DataPath     *string `hcl:"data_path,optional"`
	Refresh      *string `hcl:"refresh,optional"`
	Timeout      *string `hcl:"timeout,optional"`
}

type hclStore struct {
	Backend *string `hcl:"backend,optional"`
	Path    *string `hcl:"path,optional"`
}

type hclDashboard struct {
	DropSizeOnRemove *bool `hcl:"drop_size_on_remove,optional"`
	RowLines         *int  `hcl:"row_lines,optional"`
}

type hclMarket struct {
	Assets   []string `hcl:"assets,optional"`
	TopLimit *int     `hcl:"top_limit,optional"`
	Chart    *string  `hcl:"chart,optional"`
	Interval *string  `hcl:"interval,optional"`
}

type hclHolding struct {
	ID     string `hcl:"id,label"`
	Amount string `hcl:"amount"`
}

type hclNews struct {
	Markdown string `hcl:"markdown"`
}

// DefaultPath returns the config path used when none is given: the
// CRYPTODASH_CONFIG environment variable, else ~/.config/cryptodash/config.hcl.
func DefaultPath() string {
	if p := os.Getenv(ConfigEnv); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, DefaultConfigPath)
}

// Load reads the config file at path, or DefaultPath if path is empty, and
// applies environment overrides. A missing default file yields the built-in
// configuration; a missing explicit path is an error.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	cfg := Default()
	if path != "" {
		src, err := os.ReadFile(path)
		switch {
		case err == nil:
			if cfg, err = Parse(src, path); err != nil {
				return Config{}, err
			}
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		default:
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

// Parse decodes an HCL config over the built-in defaults. filename is used
// in diagnostics only. Environment overrides are not applied.
func Parse(src []byte, filename string) (Config, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	var parsed hclFile
	if diags := gohcl.DecodeBody(f.Body, nil, &parsed); diags.HasErrors() {
		return Config{}, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}
	cfg := Default()
	if err := parsed.apply(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", filename, err)
	}
	return cfg, nil
}

func (f *hclFile) apply(cfg *Config) error {
	if a := f.API; a != nil {
		setString(&cfg.API.BaseURL, a.BaseURL)
		setString(&cfg.API.FearGreedURL, a.FearGreedURL)
		setString(&cfg.API.DataPath, a.DataPath)
		if err := setDuration(&cfg.API.Refresh, a.Refresh, "api.refresh"); err != nil {
			return err
		}
		if err := setDuration(&cfg.API.Timeout, a.Timeout, "api.timeout"); err != nil {
			return err
		}
	}
	if s := f.Store; s != nil {
		setString(&cfg.Store.Backend, s.Backend)
		if s.Path != nil {
			cfg.Store.Path = expandHome(*s.Path)
		}
		switch cfg.Store.Backend {
		case layoutstore.BackendFile, layoutstore.BackendSQLite, layoutstore.BackendMemory:
		default:
			return fmt.Errorf("store.backend: unknown backend %q", cfg.Store.Backend)
		}
	}
	if d := f.Dashboard; d != nil {
		if d.DropSizeOnRemove != nil {
			cfg.Dashboard.DropSizeOnRemove = *d.DropSizeOnRemove
		}
		if d.RowLines != nil {
			if *d.RowLines < 1 {
				return fmt.Errorf("dashboard.row_lines: must be at least 1, got %d", *d.RowLines)
			}
			cfg.Dashboard.RowLines = *d.RowLines
		}
	}
	if m := f.Market; m != nil {
		if m.Assets != nil {
			cfg.Market.Assets = m.Assets
		}
		if m.TopLimit != nil {
			cfg.Market.TopLimit = *m.TopLimit
		}
		setString(&cfg.Market.Chart, m.Chart)
		setString(&cfg.Market.Interval, m.Interval)
	}
	if len(f.Holdings) > 0 {
		holdings := make(portfolio.Holdings, 0, len(f.Holdings))
		seen := make(map[string]bool, len(f.Holdings))
		for _, h := range f.Holdings {
			if seen[h.ID] {
				return fmt.Errorf("holding %q: declared twice", h.ID)
			}
			seen[h.ID] = true
			amount, err := decimal.NewFromString(h.Amount)
			if err != nil {
				return fmt.Errorf("holding %q: invalid amount %q: %w", h.ID, h.Amount, err)
			}
			holdings = append(holdings, portfolio.Holding{ID: h.ID, Amount: amount})
		}
		cfg.Holdings = holdings
	}
	if f.News != nil {
		cfg.News.Markdown = f.News.Markdown
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(APIURLEnv); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv(StoreDirEnv); v != "" {
		cfg.Store.Path = v
	}
}

func setString(dst *string, v *string) {
	if v != nil && *v != "" {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *string, name string) error {
	if v == nil {
		return nil
	}
	d, err := time.ParseDuration(*v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if d < 0 {
		return fmt.Errorf("%s: must not be negative", name)
	}
	*dst = d
	return nil
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
