package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/google/subcommands"
	"golang.org/x/term"

	"cryptodash/internal/layout"
)

// defaultTermWidth is used when stdout is not a terminal.
const defaultTermWidth = 80

type layoutCmd struct {
	app    *App
	width  int
	pixels bool
}

func (*layoutCmd) Name() string     { return "layout" }
func (*layoutCmd) Synopsis() string { return "print the packed widget grid" }
func (*layoutCmd) Usage() string {
	return `cryptodash layout [-width <n>] [-pixels]

  Packs the saved widget order at the column count for the given viewport
  width and prints each widget's grid position and size. The width defaults
  to the terminal width. With -pixels the width is read as a browser
  viewport in pixels instead of terminal cells.
`
}

func (c *layoutCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.width, "width", 0, "Viewport width (default: terminal width).")
	f.BoolVar(&c.pixels, "pixels", false, "Interpret -width in pixels.")
}

func (c *layoutCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 0 || c.width < 0 {
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

	width := c.width
	if width == 0 {
		width = terminalWidth()
	}
	breakpoints := layout.TerminalBreakpoints
	unit := "cells"
	if c.pixels {
		breakpoints = layout.DefaultBreakpoints
		unit = "px"
	}
	order, sizes := store.Load()
	columns := breakpoints.Columns(width)
	entries := layout.Pack(order, sizes, columns)

	fmt.Fprintf(c.app.Stdout, "%d columns at %d %s, %d widgets\n", columns, width, unit, len(entries))
	if len(entries) == 0 {
		return subcommands.ExitSuccess
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "WIDGET", "X", "Y", "W", "H")
	for i, e := range entries {
		t.Row(strconv.Itoa(i+1), e.ID, strconv.Itoa(e.X), strconv.Itoa(e.Y), strconv.Itoa(e.W), strconv.Itoa(e.H))
	}
	fmt.Fprintln(c.app.Stdout, t.Render())
	return subcommands.ExitSuccess
}

func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultTermWidth
	}
	return w
}
