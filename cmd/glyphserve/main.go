// Copyright 2025 The GlyphServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the shortcode autocomplete server, CLI [DBG] and TUI demo.

Note: This is a BETA release. APIs and functionality may rapidly change.

GlyphServe does two things for chat style message inputs: it watches the text
around the caret for :shortcodes: and offers matching glyphs in a grid, and it
renders a small markup language into an HTML fragment for live previews.

# Usage

Start the IPC server with default settings:

	glyphserve

Load a custom symbol table and enable debug mode:

	glyphserve -symbols emoji.yaml -d

Run in CLI mode for interactive testing:

	glyphserve -c

Run the terminal demo with a live preview:

	glyphserve -tui

Compile a YAML or TOML table into the binary format:

	glyphserve -symbols emoji.yaml -export emoji.bin

# Configuration

Runtime configuration is managed through a TOML file:

	[engine]
	delimiter = ":"
	debounce_ms = 300
	grid_columns = 8
	max_candidates = 0

	[render]
	placeholder = "Nothing to preview yet."

	[server]
	max_markup = 65536
	max_sessions = 256

	[symbols]
	path = ""

The config file is created with defaults if it doesn't exist. A file that
fails to parse is recovered section by section.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. Every request names
an op; responses echo the request id and report timings in microseconds.

	{"id": "r1", "op": "render", "m": "*hi*"}
	{"id": "r1", "h": "<p><strong>hi</strong></p>", "p": false, "t": 41}

Edit and key requests drive one autocomplete session each. Debounced
recomputations arrive unprompted with "push" set.

	{"id": "e1", "op": "edit", "s": "compose", "text": "so :fi", "cur": 6}

# Command Line Flags

	-d        Enable debug mode with detailed logging
	-c        Run in CLI mode instead of server mode
	-tui      Run the terminal demo
	-config   Path to a config file
	-symbols  Symbol table file (.yaml, .yml, .toml or .bin)
	-export   Write the loaded table as a binary file and exit
	-version  Show current version
*/
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/glyphserve/internal/cli"
	"github.com/bastiangx/glyphserve/internal/logger"
	"github.com/bastiangx/glyphserve/internal/tui"
	"github.com/bastiangx/glyphserve/internal/utils"
	"github.com/bastiangx/glyphserve/pkg/config"
	"github.com/bastiangx/glyphserve/pkg/mrkdwn"
	"github.com/bastiangx/glyphserve/pkg/server"
	"github.com/bastiangx/glyphserve/pkg/suggest"
	"github.com/bastiangx/glyphserve/pkg/symbols"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0-beta"
	AppName = "glyphserve"
	gh      = "https://github.com/bastiangx/glyphserve"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires the packages together for the chosen mode.
// main() does not implement logic for them and only manages the flow.
func main() {
	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	tuiMode := flag.Bool("tui", false, "Run the terminal demo with a live preview")
	configFile := flag.String("config", "", "Path to custom config.toml file")
	symbolsFile := flag.String("symbols", "", "Symbol table file (.yaml, .yml, .toml, .bin)")
	exportFile := flag.String("export", "", "Write the loaded symbol table as binary to this path and exit")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	// TUI mode owns the terminal, so it installs no signal handler of its own.
	if !*tuiMode {
		sigHandler()
	}

	if *debugMode {
		debugLogger := logger.NewWithConfig("", log.DebugLevel, true, true, log.TextFormatter)
		log.SetDefault(debugLogger)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	appConfig, configPath, err := config.LoadConfigWithPriority(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if configPath != "" {
		log.Debugf("Using config file: (%s)", utils.AbsPath(configPath))
	} else {
		log.Debug("Using builtin config defaults")
	}

	table, err := loadSymbols(*symbolsFile, appConfig)
	if err != nil {
		log.Fatalf("Failed to load symbols: %v", err)
	}
	log.Debug("Symbol table ready", "stats", table.Stats())

	if *exportFile != "" {
		if err := symbols.SaveBinary(table, *exportFile); err != nil {
			log.Fatalf("Failed to export symbols: %v", err)
		}
		log.Infof("Wrote %d symbols to %s", table.Len(), *exportFile)
		return
	}

	renderer := mrkdwn.NewRenderer(mrkdwn.Options{Placeholder: appConfig.Render.Placeholder})
	engineOpts := suggest.ConfigOptions(appConfig.Engine)

	switch {
	case *tuiMode:
		// stderr belongs to the program while it runs
		if *debugMode {
			f, err := tea.LogToFile(AppName+"-debug.log", "")
			if err != nil {
				log.Fatalf("Failed to open debug log: %v", err)
			}
			defer f.Close()
			log.SetOutput(f)
		} else {
			log.SetOutput(io.Discard)
		}

		m := tui.New(tui.Options{
			Table:       table,
			Renderer:    renderer,
			GridColumns: appConfig.Engine.GridColumns,
			Engine:      engineOpts,
		})
		if err := tui.Run(m); err != nil {
			fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
			os.Exit(1)
		}

	// CLI would be mainly used for testing and dbg purposes.
	// Any new features or changes should be tested in CLI mode first.
	case *cliMode:
		log.SetReportTimestamp(false)
		inputHandler := cli.NewInputHandler(table, renderer, engineOpts...)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}

	default:
		log.Debug("spawning IPC")
		srv := server.NewServer(table, appConfig, configPath)
		showStartupInfo(table, configPath)
		if err := srv.Start(); err != nil {
			log.Fatalf("Server stopped: %v", err)
		}
	}
}

// loadSymbols picks the table from the flag, then the config, then the
// builtin set.
func loadSymbols(flagPath string, cfg *config.Config) (*symbols.Table, error) {
	userPath := flagPath
	if userPath == "" {
		userPath = cfg.Symbols.Path
	}
	if userPath == "" {
		log.Debug("No symbol file given, using builtin table")
		return symbols.Default(), nil
	}

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Warnf("Failed to init path resolver: %v", err)
		return symbols.LoadFile(userPath, cfg.Engine.DelimiterRune())
	}
	resolved := pathResolver.GetSymbolsPath(userPath)
	if resolved == "" {
		return nil, fmt.Errorf("symbol file not found: %s", userPath)
	}
	log.Debugf("Using symbol file at: %s", resolved)
	return symbols.LoadFile(resolved, cfg.Engine.DelimiterRune())
}

func printVersion() {
	vlog := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	vlog.SetStyles(styles)

	vlog.Print("")
	vlog.Print("[ GlyphServe ] :shortcodes: and markup previews for message inputs")
	vlog.Print("", "version", Version)
	vlog.Print("")
	vlog.Print("use -h or --help to see available options")
	vlog.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
// It writes to stderr; stdout is the IPC stream.
func showStartupInfo(table *symbols.Table, configPath string) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)
	defer log.SetLevel(currentLevel)

	if configPath == "" {
		configPath = "builtin defaults"
	}
	fmt.Fprintln(os.Stderr, "============")
	fmt.Fprintln(os.Stderr, " GlyphServe ")
	fmt.Fprintln(os.Stderr, "============")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("symbols: %d", table.Len())
	log.Infof("config: ( %s )", configPath)
	log.Info("status: ready")
	fmt.Fprintln(os.Stderr, "============")
	fmt.Fprintln(os.Stderr, "Press Ctrl+C to exit")
}
