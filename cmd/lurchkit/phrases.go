package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lurchmath/lurchmath-sub002/internal/declaration"
	"github.com/lurchmath/lurchmath-sub002/internal/logger"
	"github.com/lurchmath/lurchmath-sub002/internal/services"
	"github.com/lurchmath/lurchmath-sub002/pkg/lurchtypes"
)

var templatesDefaultsOnly bool

// templatesCmd lists the declaration phrasings currently in effect.
var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the active declaration phrasings",
	Long: `List every declaration phrasing template in effect, one per line with
its kind and body position. The list combines the configured templates with
defaults for uncovered combinations when the completion setting is on.`,
	Run: runTemplates,
}

// matchCmd matches free text against the active phrasings.
var matchCmd = &cobra.Command{
	Use:   "match <text>",
	Short: "Match text against the declaration phrasings",
	Long: `Match the given text against every active declaration phrasing and print
one line per match with the kind, the captured symbol, and the template.
Exits with status 1 when nothing matches.`,
	Args: cobra.MinimumNArgs(1),
	Run:  runMatch,
}

var (
	renderKind         string
	renderBodyPosition string
	renderTemplate     string
	renderSymbol       string
	renderBody         string
	renderForm         string
	renderCopy         bool
)

// renderCmd renders one declaration in the requested output form.
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a declaration in one or all output forms",
	Long: `Render a declaration for a given symbol in the requested output form.
The declaration type is selected with --kind and --body-position, or given
directly as a template with --template.`,
	Run: runRender,
}

func init() {
	templatesCmd.Flags().BoolVar(&templatesDefaultsOnly, "defaults", false, "List only the built-in default phrasings")

	renderCmd.Flags().StringVar(&renderKind, "kind", "variable", "Declaration kind (variable|constant)")
	renderCmd.Flags().StringVar(&renderBodyPosition, "body-position", "none", "Body statement position (none|before|after)")
	renderCmd.Flags().StringVar(&renderTemplate, "template", "", "Use this phrasing template instead of --kind/--body-position")
	renderCmd.Flags().StringVar(&renderSymbol, "symbol", "", "Symbol being declared (required)")
	renderCmd.Flags().StringVar(&renderBody, "body", "", "Body statement in LaTeX notation")
	renderCmd.Flags().StringVar(&renderForm, "form", "all", "Output form (display|document|typeset|structured|all)")
	renderCmd.Flags().BoolVar(&renderCopy, "copy", false, "Copy the output to the clipboard (document form when --form all)")

	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(renderCmd)
}

func runTemplates(_ *cobra.Command, _ []string) {
	setupServices()

	var types []*declaration.Type
	if templatesDefaultsOnly {
		types = declaration.Defaults()
	} else {
		declarationService, err := services.GetGlobalDeclarationService()
		if err != nil {
			logger.Fatal("Declaration service unavailable", "error", err)
		}
		types, err = declarationService.ConfiguredTypes()
		if err != nil {
			logger.Fatal("Failed to load phrasings", "error", err)
		}
	}

	for _, typ := range types {
		fmt.Printf("%-9s %-7s %s\n", typ.Kind(), typ.BodyPosition(), typ.Template())
	}
}

func runMatch(_ *cobra.Command, args []string) {
	setupServices()

	text := strings.Join(args, " ")
	declarationService, err := services.GetGlobalDeclarationService()
	if err != nil {
		logger.Fatal("Declaration service unavailable", "error", err)
	}
	results, err := declarationService.MatchAll(text)
	if err != nil {
		logger.Fatal("Failed to match phrasings", "error", err)
	}
	if len(results) == 0 {
		fmt.Fprintf(os.Stderr, "no phrasing matches %q\n", text)
		os.Exit(1)
	}

	for _, result := range results {
		fmt.Printf("%-9s %-12s %s\n", result.Type.Kind(), result.Symbol, result.Type.Template())
	}
}

func runRender(_ *cobra.Command, _ []string) {
	if renderSymbol == "" {
		logger.Fatal("Missing required flag", "flag", "--symbol")
	}

	setupServices()

	typ, err := resolveRenderType()
	if err != nil {
		logger.Fatal("Invalid declaration type", "error", err)
	}

	declarationService, err := services.GetGlobalDeclarationService()
	if err != nil {
		logger.Fatal("Declaration service unavailable", "error", err)
	}
	forms, err := declarationService.Render(typ, renderSymbol, renderBody)
	if err != nil {
		logger.Fatal("Failed to render declaration", "error", err)
	}

	copied := forms.Document
	switch renderForm {
	case "display":
		copied = forms.Display
		fmt.Println(forms.Display)
	case "document":
		fmt.Println(forms.Document)
	case "typeset":
		copied = forms.Typeset
		fmt.Println(forms.Typeset)
	case "structured":
		copied = forms.Structured
		fmt.Println(forms.Structured)
	case "all":
		fmt.Printf("%-11s %s\n", "display:", forms.Display)
		fmt.Printf("%-11s %s\n", "document:", forms.Document)
		fmt.Printf("%-11s %s\n", "typeset:", forms.Typeset)
		fmt.Printf("%-11s %s\n", "structured:", forms.Structured)
	default:
		logger.Fatal("Unknown output form", "form", renderForm)
	}

	if renderCopy {
		copyToClipboard(copied)
	}
}

// resolveRenderType picks the declaration type from --template when given,
// otherwise from the --kind and --body-position pair.
func resolveRenderType() (*declaration.Type, error) {
	if renderTemplate != "" {
		return declaration.FromTemplate(renderTemplate)
	}

	kind, err := lurchtypes.ParseDeclarationKind(renderKind)
	if err != nil {
		return nil, err
	}
	position, err := lurchtypes.ParseBodyPosition(renderBodyPosition)
	if err != nil {
		return nil, err
	}
	return declaration.New(kind, position)
}

// copyToClipboard copies text to the system clipboard, degrading to a
// warning when the platform has no clipboard support.
func copyToClipboard(text string) {
	if !clipboardAvailable {
		logger.Warn("Clipboard not available on this platform")
		return
	}
	if err := initClipboard(); err != nil {
		logger.Warn("Clipboard initialization failed", "error", err)
		return
	}
	if err := writeToClipboard(text); err != nil {
		logger.Warn("Failed to write to clipboard", "error", err)
		return
	}
	fmt.Printf("Copied %d characters to clipboard\n", len(text))
}
