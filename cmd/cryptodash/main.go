package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/subcommands"

	"cryptodash/internal/cli"
	"cryptodash/internal/telemetry"
)

func main() {
	cli.Completion().Complete("cryptodash")
	os.Exit(int(run()))
}

func run() subcommands.ExitStatus {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The TUI owns the terminal, so the log goes to a file.
	logFile, err := openLog(cli.LogPath())
	if err != nil {
		log.SetOutput(io.Discard)
	} else {
		defer logFile.Close()
	}

	exporter, err := telemetry.NewOTLPExporter(ctx)
	if err != nil {
		log.Printf("main: telemetry disabled: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := exporter.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: telemetry shutdown: %v", err)
		}
	}()

	app := cli.NewApp()
	app.Tracer = exporter.TracerProvider()
	commander := cli.NewCommander(flag.CommandLine, filepath.Base(os.Args[0]), app)
	flag.Parse()
	if flag.NArg() == 0 {
		// No subcommand opens the dashboard.
		if err := flag.CommandLine.Parse(append(os.Args[1:], "run")); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	return commander.Execute(ctx)
}

func openLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return tea.LogToFile(path, "cryptodash")
}
