package shell

import (
	"fmt"
	"io"
	"strings"

	"github.com/lurchmath/lurchmath-sub002/internal/services"
	"github.com/lurchmath/lurchmath-sub002/pkg/lurchtypes"
)

// activeTheme returns the theme for shell output, unstyled when the theme
// service is unavailable.
func activeTheme() *services.Theme {
	themeService, err := services.GetGlobalThemeService()
	if err != nil {
		return &services.Theme{Name: "plain"}
	}
	return themeService.ActiveTheme()
}

func printError(out io.Writer, message string) {
	fmt.Fprintln(out, activeTheme().Error.Render(message))
}

func printSuccess(out io.Writer, message string) {
	fmt.Fprintln(out, activeTheme().Success.Render(message))
}

func printInfo(out io.Writer, message string) {
	fmt.Fprintln(out, activeTheme().Info.Render(message))
}

// printHelp renders an embedded help topic, defaulting to the shell
// overview.
func printHelp(out io.Writer, topic string) {
	helpService, err := services.GetGlobalHelpLoaderService()
	if err != nil {
		printError(out, err.Error())
		return
	}
	loader := helpService.GetLoader()

	if topic == "" {
		topic = "shell"
	}

	content, err := loader.LoadTopic(topic)
	if err != nil {
		printError(out, err.Error())
		if topics, listErr := loader.ListTopics(); listErr == nil {
			printInfo(out, "Available topics: "+strings.Join(topics, ", "))
		}
		return
	}

	markdownService, err := services.GetGlobalMarkdownService()
	if err != nil {
		fmt.Fprintln(out, content)
		return
	}
	rendered, err := markdownService.RenderWithTheme(content)
	if err != nil {
		fmt.Fprintln(out, content)
		return
	}
	fmt.Fprint(out, rendered)
}

// styleTemplate renders a phrasing template with its placeholders styled.
func styleTemplate(theme *services.Theme, template string) string {
	styled := template
	for _, placeholder := range []string{
		lurchtypes.KindVariable.Placeholder(),
		lurchtypes.KindConstant.Placeholder(),
		lurchtypes.StatementPlaceholder,
	} {
		styled = strings.ReplaceAll(styled, placeholder, theme.Placeholder.Render(placeholder))
	}
	return styled
}

// printTemplates lists the configured phrasings grouped by declared kind.
func printTemplates(out io.Writer) {
	declarationService, err := services.GetGlobalDeclarationService()
	if err != nil {
		printError(out, err.Error())
		return
	}
	types, err := declarationService.ConfiguredTypes()
	if err != nil {
		printError(out, err.Error())
		return
	}

	theme := activeTheme()
	groups := map[string][]string{
		"Constant declarations": {},
		"Variable declarations": {},
	}
	for _, typ := range types {
		group := "Variable declarations"
		if typ.Kind() == lurchtypes.KindConstant {
			group = "Constant declarations"
		}
		groups[group] = append(groups[group], styleTemplate(theme, typ.Template()))
	}

	fmt.Fprintln(out, theme.CreateGroupedList(groups))
}

// printMatches lists the phrasings that recognize text, with captured
// symbols highlighted. Developer mode adds the structured reading of each
// match.
func printMatches(out io.Writer, text string) {
	declarationService, err := services.GetGlobalDeclarationService()
	if err != nil {
		printError(out, err.Error())
		return
	}
	results, err := declarationService.MatchAll(text)
	if err != nil {
		printError(out, err.Error())
		return
	}

	theme := activeTheme()
	if len(results) == 0 {
		printInfo(out, fmt.Sprintf("No phrasing matches %q", text))
		return
	}

	highlight := theme.Symbol
	if themeService, themeErr := services.GetGlobalThemeService(); themeErr == nil {
		highlight = themeService.DeclarationHighlight()
	}

	developerMode := false
	if settingsService, settingsErr := services.GetGlobalSettingsService(); settingsErr == nil {
		developerMode = settingsService.GetBool("developer mode on")
	}

	for _, result := range results {
		fmt.Fprintf(out, "%s %s %s\n",
			styleTemplate(theme, result.Type.Template()),
			theme.Info.Render("captures"),
			highlight.Render(result.Symbol))

		if !developerMode {
			continue
		}
		fmt.Fprintf(out, "  %s %s\n",
			theme.Key.Render("structured:"),
			result.Type.StructuredForm(result.Symbol, "..."))
		if result.Type.BodyPosition() == lurchtypes.BodyNone {
			if node, resolveErr := declarationService.Resolve(result.Type, result.Symbol, nil); resolveErr == nil {
				fmt.Fprintf(out, "  %s %s\n", theme.Key.Render("node:"), node.String())
			}
		}
	}
}

// printRendered renders the first phrasing matching text in every output
// form.
func printRendered(out io.Writer, text string) {
	declarationService, err := services.GetGlobalDeclarationService()
	if err != nil {
		printError(out, err.Error())
		return
	}
	results, err := declarationService.MatchAll(text)
	if err != nil {
		printError(out, err.Error())
		return
	}
	if len(results) == 0 {
		printInfo(out, fmt.Sprintf("No phrasing matches %q", text))
		return
	}

	first := results[0]
	forms, err := declarationService.Render(first.Type, first.Symbol, "")
	if err != nil {
		printError(out, err.Error())
		return
	}

	theme := activeTheme()
	fmt.Fprintf(out, "%s %s\n", theme.Key.Render("display:"), forms.Display)
	fmt.Fprintf(out, "%s %s\n", theme.Key.Render("document:"), forms.Document)
	fmt.Fprintf(out, "%s %s\n", theme.Key.Render("typeset:"), forms.Typeset)
	fmt.Fprintf(out, "%s %s\n", theme.Key.Render("structured:"), forms.Structured)
}

// printSettings shows every setting, or a single value.
func printSettings(out io.Writer, key string) {
	settingsService, err := services.GetGlobalSettingsService()
	if err != nil {
		printError(out, err.Error())
		return
	}

	if key != "" {
		for _, known := range settingsService.Keys() {
			if known == key {
				fmt.Fprintln(out, settingsService.Get(key))
				return
			}
		}
		printError(out, fmt.Sprintf("unknown setting: %s", key))
		return
	}

	keys := settingsService.Keys()
	values := make(map[string]string, len(keys))
	for _, known := range keys {
		values[known] = settingsService.Get(known)
	}
	fmt.Fprintln(out, activeTheme().CreatePairList(keys, values))
}

// splitKeyValue resolves a ".set" argument against the known setting keys,
// which may contain spaces, and returns the key and the remaining value.
func splitKeyValue(keys []string, rest string) (string, string, bool) {
	bestKey := ""
	for _, key := range keys {
		if !strings.HasPrefix(rest, key+" ") {
			continue
		}
		if len(key) > len(bestKey) {
			bestKey = key
		}
	}
	if bestKey == "" {
		return "", "", false
	}
	return bestKey, strings.TrimSpace(rest[len(bestKey):]), true
}

func handleSet(out io.Writer, rest string) {
	settingsService, err := services.GetGlobalSettingsService()
	if err != nil {
		printError(out, err.Error())
		return
	}

	key, value, ok := splitKeyValue(settingsService.Keys(), rest)
	if !ok {
		printError(out, "usage: .set <key> <value>")
		return
	}

	if err := settingsService.Set(key, value); err != nil {
		printError(out, err.Error())
		return
	}
	printSuccess(out, fmt.Sprintf("%s = %s", key, value))
}

func handleReset(out io.Writer, rest string) {
	settingsService, err := services.GetGlobalSettingsService()
	if err != nil {
		printError(out, err.Error())
		return
	}

	switch rest {
	case "":
		if settingsService.GetBool("warn before resetting all settings") {
			printInfo(out, "This resets every setting to its default. Type .reset all to confirm.")
			return
		}
		fallthrough
	case "all":
		if err := settingsService.ResetAll(); err != nil {
			printError(out, err.Error())
			return
		}
		printSuccess(out, "All settings reset to defaults")
	default:
		if err := settingsService.Reset(rest); err != nil {
			printError(out, err.Error())
			return
		}
		printSuccess(out, fmt.Sprintf("%s = %s", rest, settingsService.Get(rest)))
	}
}

// printExpositoryPreview previews a LaTeX fragment as expository math.
func printExpositoryPreview(out io.Writer, latex, note string) {
	annotationService, err := services.GetGlobalAnnotationService()
	if err != nil {
		printError(out, err.Error())
		return
	}

	expository, err := annotationService.Create(latex, note)
	if err != nil {
		printError(out, err.Error())
		return
	}

	if rendered, renderErr := annotationService.MarkdownPreview(expository); renderErr == nil {
		fmt.Fprint(out, rendered)
		return
	}
	preview, err := annotationService.Preview(expository)
	if err != nil {
		printError(out, err.Error())
		return
	}
	fmt.Fprintln(out, preview)
}

// handleTheme lists themes or switches the color scheme setting.
func handleTheme(out io.Writer, name string) {
	themeService, err := services.GetGlobalThemeService()
	if err != nil {
		printError(out, err.Error())
		return
	}
	settingsService, err := services.GetGlobalSettingsService()
	if err != nil {
		printError(out, err.Error())
		return
	}

	if name == "" {
		configured := settingsService.Get("color scheme")
		for _, available := range themeService.GetAvailableThemes() {
			marker := "  "
			if available == configured {
				marker = "* "
			}
			fmt.Fprintf(out, "%s%s\n", marker, available)
		}
		return
	}

	if err := settingsService.Set("color scheme", name); err != nil {
		printError(out, err.Error())
		return
	}
	printSuccess(out, fmt.Sprintf("color scheme = %s", name))
}
