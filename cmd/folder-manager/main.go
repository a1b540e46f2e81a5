// Package main is the entry point for the folder-manager application.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term" //nolint:depguard // Required for TTY detection

	"github.com/joe/folder-manager/internal/config"
	"github.com/joe/folder-manager/internal/session"
	"github.com/joe/folder-manager/internal/tui"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, err := session.New(cfg.LogDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	defer func() { _ = logger.Close() }()

	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	// A tool invocation without a terminal runs headless with plain output.
	if cfg.Tool != config.ToolNone && !isTTY {
		err = runHeadless(cfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		return
	}

	model := tui.NewAppModel(cfg, logger)

	var opts []tea.ProgramOption
	if isTTY {
		opts = append(opts, tea.WithAltScreen())
	}

	p := tea.NewProgram(model, opts...)

	_, err = p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
