// Package cli implements the cryptodash subcommands.
package cli

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/subcommands"
	oteltrace "go.opentelemetry.io/otel/trace"

	"cryptodash/internal/config"
	"cryptodash/internal/dashboard"
	"cryptodash/internal/layout"
	"cryptodash/internal/layoutstore"
	"cryptodash/internal/prices"
)

// LogEnv overrides the log file location.
const LogEnv = "CRYPTODASH_LOG"

// App holds the state shared by the subcommands: global flags and the
// output streams.
type App struct {
	ConfigPath string
	Stdout     io.Writer
	Stderr     io.Writer
	// Tracer is passed to the price client. Nil uses the global provider.
	Tracer oteltrace.TracerProvider
}

// NewApp returns an App writing to the process's standard streams.
func NewApp() *App {
	return &App{Stdout: os.Stdout, Stderr: os.Stderr}
}

// SetFlags registers the global flags.
func (a *App) SetFlags(f *flag.FlagSet) {
	f.StringVar(&a.ConfigPath, "config", a.ConfigPath, "Path to the config file (default $"+config.ConfigEnv+" or ~/"+config.DefaultConfigPath+").")
}

// Register adds every subcommand to c.
func Register(c *subcommands.Commander, a *App) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")

	c.Register(&runCmd{app: a}, "dashboard")
	c.Register(&layoutCmd{app: a}, "dashboard")
	c.Register(&resetCmd{app: a}, "dashboard")

	c.Register(&pricesCmd{app: a}, "market")
}

// NewCommander creates a commander over f with every subcommand and global
// flag registered.
func NewCommander(f *flag.FlagSet, name string, a *App) *subcommands.Commander {
	a.SetFlags(f)
	c := subcommands.NewCommander(f, name)
	c.Output = a.Stdout
	c.Error = a.Stderr
	Register(c, a)
	return c
}

// LogPath returns where the TUI writes its log: $CRYPTODASH_LOG, else
// $XDG_STATE_HOME/cryptodash/cryptodash.log, else a file in the temp dir.
func LogPath() string {
	if p := os.Getenv(LogEnv); p != "" {
		return p
	}
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "cryptodash", "cryptodash.log")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "state", "cryptodash", "cryptodash.log")
	}
	return filepath.Join(os.TempDir(), "cryptodash.log")
}

func (a *App) errorf(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(a.Stderr, "Error: "+format+"\n", args...)
	return subcommands.ExitFailure
}

func (a *App) loadConfig() (config.Config, error) {
	return config.Load(a.ConfigPath)
}

func (a *App) openStore(cfg config.Config) (*layoutstore.Store, error) {
	store, err := layoutstore.Open(cfg.Store.Backend, cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("open layout store: %w", err)
	}
	return store, nil
}

// newController creates a dashboard controller with the terminal column
// table and a row height of one grid row in lines.
func newController(cfg config.Config, store dashboard.Store) *dashboard.Controller {
	return dashboard.New(store, dashboard.Options{
		Breakpoints:      layout.TerminalBreakpoints,
		RowHeight:        float64(cfg.Dashboard.RowLines),
		DropSizeOnRemove: cfg.Dashboard.DropSizeOnRemove,
	})
}

func (a *App) newClient(cfg config.Config) *prices.Client {
	hc := &http.Client{Timeout: cfg.API.Timeout}
	opts := []prices.Option{prices.WithHTTPClient(hc)}
	if cfg.API.FearGreedURL != "" {
		opts = append(opts, prices.WithFearGreedURL(cfg.API.FearGreedURL))
	}
	if cfg.API.DataPath != "" {
		opts = append(opts, prices.WithDataPath(cfg.API.DataPath))
	}
	if a.Tracer != nil {
		opts = append(opts, prices.WithTracerProvider(a.Tracer))
	}
	return prices.NewClient(cfg.API.BaseURL, opts...)
}
