package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"

	"github.com/lurchmath/lurchmath-sub002/internal/logger"
	"github.com/lurchmath/lurchmath-sub002/internal/services"
	"github.com/lurchmath/lurchmath-sub002/internal/version"
)

// Options configures an interactive shell session.
type Options struct {
	// TestMode keeps settings in memory and makes generated IDs
	// deterministic.
	TestMode bool
}

// Run starts the interactive declaration shell and blocks until the user
// exits.
func Run(options Options) error {
	if err := InitializeServices(options.TestMode); err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	var completer readline.AutoCompleter
	if service, err := services.GetGlobalRegistry().GetService("autocomplete"); err == nil {
		if autocompleteService, ok := service.(readline.AutoCompleter); ok {
			completer = autocompleteService
		}
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "lurch> ",
		HistoryFile:     historyFilePath(),
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize shell: %w", err)
	}
	defer func() { _ = rl.Close() }()

	out := os.Stdout
	fmt.Fprintf(out, "Lurch declaration shell v%s\n", version.GetVersion())
	fmt.Fprintln(out, "Type a declaration phrase, or .help for commands, .quit to exit")
	fmt.Fprintln(out)

	shellLog := logger.NewStyledLogger("Shell")
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			shellLog.Warn("Readline failed, leaving shell", "error", err)
			break
		}

		if ProcessInput(out, line) {
			break
		}
	}

	return nil
}

// historyFilePath returns the per-user shell history location, or empty to
// disable history.
func historyFilePath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, "lurchkit", "history")
}
