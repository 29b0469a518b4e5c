package cli

import (
	"context"
	"flag"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/subcommands"

	"cryptodash/internal/ui"
)

type runCmd struct {
	app   *App
	mouse bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "open the dashboard (default)" }
func (*runCmd) Usage() string {
	return `cryptodash run [-mouse]

  Opens the dashboard in the terminal. The widget order and sizes are saved
  after every change and restored on the next start.
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.mouse, "mouse", true, "Enable mouse wheel scrolling.")
}

func (c *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	cfg, err := c.app.loadConfig()
	if err != nil {
		return c.app.errorf("%v", err)
	}
	store, err := c.app.openStore(cfg)
	if err != nil {
		return c.app.errorf("%v", err)
	}
	defer store.Close()

	ctrl := newController(cfg, store)
	deps := ui.DepsFromConfig(cfg, c.app.newClient(cfg))
	model := ui.NewAppModel(ctrl, deps, cfg.Dashboard.RowLines)

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if c.mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	log.Printf("cli.run: starting with %d widgets, store %s at %s", ctrl.Len(), cfg.Store.Backend, cfg.Store.Path)
	if _, err := tea.NewProgram(model.AsTeaModel(), opts...).Run(); err != nil {
		return c.app.errorf("%v", err)
	}
	return subcommands.ExitSuccess
}
