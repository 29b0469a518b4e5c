package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type resetCmd struct {
	app *App
}

func (*resetCmd) Name() string     { return "reset" }
func (*resetCmd) Synopsis() string { return "restore the default widget layout" }
func (*resetCmd) Usage() string {
	return `cryptodash reset

  Deletes the saved widget order and sizes. The next start shows the
  default dashboard.
`
}

func (*resetCmd) SetFlags(*flag.FlagSet) {}

func (c *resetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	if err := store.Clear(); err != nil {
		return c.app.errorf("reset layout: %v", err)
	}
	fmt.Fprintln(c.app.Stdout, "Layout reset to defaults.")
	return subcommands.ExitSuccess
}
