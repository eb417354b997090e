package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"

	"github.com/agsearch/ag-tui/internal/config"
	"github.com/agsearch/ag-tui/internal/search"
	"github.com/agsearch/ag-tui/internal/tui"
	"github.com/agsearch/ag-tui/internal/workspace"
)

var version = "dev"

func init() {
	if version != "dev" {
		return
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
}

func main() {
	rootFlag := flag.String("root", "", "Directory to search (default: enclosing git workspace)")
	debugFlag := flag.Bool("debug", false, "Write debug logs to ag-tui.log")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("ag-tui", version)
		os.Exit(0)
	}

	loader := config.NewLoader()
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if *debugFlag {
		cfg.Debug = true
	}

	dir := *rootFlag
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		dir = workspace.Root(cwd)
	}
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		fmt.Fprintf(os.Stderr, "Error: %s is not a directory\n", dir)
		os.Exit(1)
	}

	runner := search.OSRunner{}
	probe := search.NewInvoker(cfg, runner, dir, nil)
	if err := probe.Probe(context.Background()); err != nil {
		color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "%s not found or not runnable: %v\n", cfg.AgPath, err)
		fmt.Fprintln(os.Stderr, "Install the_silver_searcher: https://github.com/ggreer/the_silver_searcher#installing")
		fmt.Fprintln(os.Stderr, "or point ag_path in ~/.config/ag-tui/config.yaml at the binary.")
		os.Exit(1)
	}

	if cfg.Debug {
		f, err := tea.LogToFile("ag-tui.log", "ag-tui")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Log error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	}

	app := tui.NewApp(cfg, loader, runner, dir)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
