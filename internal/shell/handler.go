// Package shell provides the interactive declaration shell and its input
// processing. It wires the toolkit services together and routes user input
// to phrase matching, previews, and dot commands.
package shell

import (
	"fmt"
	"io"
	"strings"

	"github.com/lurchmath/lurchmath-sub002/internal/data/embedded"
	"github.com/lurchmath/lurchmath-sub002/internal/logger"
	"github.com/lurchmath/lurchmath-sub002/internal/services"
	"github.com/lurchmath/lurchmath-sub002/internal/settings"
)

// InitializeServices sets up all required services for the toolkit
// environment. In test mode settings live in memory and generated IDs are
// deterministic.
func InitializeServices(testMode bool) error {
	registry := services.GetGlobalRegistry()

	// Register SettingsService first - most other services read from it
	if !registry.HasService("settings") {
		if testMode {
			if err := registry.RegisterService(services.NewSettingsServiceWithStore(settings.NewMemoryStore())); err != nil {
				return err
			}
		} else {
			if err := registry.RegisterService(services.NewSettingsService()); err != nil {
				return err
			}
		}
	}

	if !registry.HasService("notation") {
		if err := registry.RegisterService(services.NewNotationService()); err != nil {
			return err
		}
	}

	if !registry.HasService("declaration") {
		if err := registry.RegisterService(services.NewDeclarationService()); err != nil {
			return err
		}
	}

	if !registry.HasService("annotation") {
		if err := registry.RegisterService(services.NewAnnotationService(testMode)); err != nil {
			return err
		}
	}

	if !registry.HasService("markdown") {
		if err := registry.RegisterService(services.NewMarkdownService()); err != nil {
			return err
		}
	}

	if !registry.HasService("theme") {
		if err := registry.RegisterService(services.NewThemeService()); err != nil {
			return err
		}
	}

	if !registry.HasService("autocomplete") {
		if err := registry.RegisterService(services.NewAutoCompleteService()); err != nil {
			return err
		}
	}

	if !registry.HasService("help-loader") {
		if err := registry.RegisterService(embedded.NewHelpLoaderService()); err != nil {
			return err
		}
	}

	if err := registry.InitializeAll(); err != nil {
		return err
	}

	logger.Debug("Services initialized")
	return nil
}

// ProcessInput routes one line of user input: dot commands dispatch to their
// handlers, dollar-wrapped input previews as expository math, and anything
// else is matched as a declaration phrase. It reports whether the shell
// should exit.
func ProcessInput(out io.Writer, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	if strings.HasPrefix(line, ".") {
		return handleDotCommand(out, line)
	}

	if inner, ok := dollarWrapped(line); ok {
		printExpositoryPreview(out, inner, "")
		return false
	}

	printMatches(out, line)
	return false
}

// dollarWrapped reports whether line is a $...$ fragment and the shortcut
// setting is on, returning the inner source.
func dollarWrapped(line string) (string, bool) {
	if len(line) < 2 || !strings.HasPrefix(line, "$") || !strings.HasSuffix(line, "$") {
		return "", false
	}
	settingsService, err := services.GetGlobalSettingsService()
	if err != nil || !settingsService.GetBool("dollar sign shortcut") {
		return "", false
	}
	return strings.TrimSpace(line[1 : len(line)-1]), true
}

// handleDotCommand dispatches a dot command line. It reports whether the
// shell should exit.
func handleDotCommand(out io.Writer, line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])
	rest := strings.TrimSpace(strings.TrimPrefix(line, parts[0]))

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printHelp(out, rest)

	case ".templates":
		printTemplates(out)

	case ".match":
		if rest == "" {
			printError(out, "usage: .match <text>")
			break
		}
		printMatches(out, rest)

	case ".render":
		if rest == "" {
			printError(out, "usage: .render <text>")
			break
		}
		printRendered(out, rest)

	case ".settings":
		printSettings(out, rest)

	case ".set":
		handleSet(out, rest)

	case ".reset":
		handleReset(out, rest)

	case ".preview":
		if rest == "" {
			printError(out, "usage: .preview <latex>")
			break
		}
		printExpositoryPreview(out, rest, "")

	case ".theme":
		handleTheme(out, rest)

	default:
		printError(out, fmt.Sprintf("Unknown command: %s (type .help for commands)", command))
	}

	return false
}
