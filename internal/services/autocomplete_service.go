package services

import (
	"sort"
	"strings"
)

// dotCommands lists the shell's command names for completion, in display
// order.
var dotCommands = []string{
	".help",
	".templates",
	".match",
	".render",
	".settings",
	".set",
	".reset",
	".preview",
	".theme",
	".quit",
}

// AutoCompleteService provides tab completion for the interactive shell.
// It implements the readline.AutoCompleter interface and completes dot
// commands, declaration phrase prefixes, setting keys, theme names, and
// help topics.
type AutoCompleteService struct {
	initialized bool
}

// NewAutoCompleteService creates a new AutoCompleteService instance.
func NewAutoCompleteService() *AutoCompleteService {
	return &AutoCompleteService{
		initialized: false,
	}
}

// Name returns the service name "autocomplete" for registration.
func (a *AutoCompleteService) Name() string {
	return "autocomplete"
}

// Initialize sets up the AutoCompleteService for operation.
func (a *AutoCompleteService) Initialize() error {
	a.initialized = true
	return nil
}

// Do implements the readline.AutoCompleter interface.
// It analyzes the current input line and cursor position to provide relevant completions.
func (a *AutoCompleteService) Do(line []rune, pos int) (newLine [][]rune, offset int) {
	if !a.initialized {
		return nil, 0
	}

	lineStr := string(line)
	if pos > len(lineStr) {
		pos = len(lineStr)
	}
	lineStr = lineStr[:pos]

	currentWord := lineStr[a.findWordStart(lineStr):]
	completions := a.getCompletions(lineStr)

	// Convert completions to readline format. Candidates are full
	// replacements for the text they were matched against, so only the
	// unmatched suffix is returned.
	var suggestions [][]rune
	for _, completion := range completions {
		suggestions = append(suggestions, []rune(completion))
	}

	return suggestions, len(currentWord)
}

// findWordStart finds the start position of the word being completed.
func (a *AutoCompleteService) findWordStart(line string) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i] == ' ' {
			return i + 1
		}
	}
	return 0
}

// getCompletions analyzes the input context and returns the suffixes that
// would complete it.
func (a *AutoCompleteService) getCompletions(line string) []string {
	// Priority 1: arguments of commands with a known value space
	if arg, ok := a.argumentAfter(line, ".help"); ok {
		return suffixesFor(a.helpTopics(), arg)
	}
	if arg, ok := a.argumentAfter(line, ".settings"); ok {
		return suffixesFor(a.settingKeys(), arg)
	}
	if arg, ok := a.argumentAfter(line, ".set"); ok {
		return suffixesFor(a.settingKeys(), arg)
	}
	if arg, ok := a.argumentAfter(line, ".reset"); ok {
		return suffixesFor(a.settingKeys(), arg)
	}
	if arg, ok := a.argumentAfter(line, ".theme"); ok {
		return suffixesFor(a.themeNames(), arg)
	}
	if arg, ok := a.argumentAfter(line, ".match"); ok {
		return suffixesFor(a.phrasePrefixes(), arg)
	}
	if arg, ok := a.argumentAfter(line, ".render"); ok {
		return suffixesFor(a.phrasePrefixes(), arg)
	}

	// Priority 2: command names
	if strings.HasPrefix(line, ".") {
		return suffixesFor(dotCommands, line)
	}

	// Priority 3: a bare line is a declaration phrase being typed
	return suffixesFor(a.phrasePrefixes(), line)
}

// argumentAfter returns the argument text when line is the given command
// followed by a space, with leading spaces stripped.
func (a *AutoCompleteService) argumentAfter(line, command string) (string, bool) {
	if !strings.HasPrefix(line, command+" ") {
		return "", false
	}
	return strings.TrimLeft(line[len(command)+1:], " "), true
}

// suffixesFor returns, for every candidate that extends typed, the unmatched
// remainder, sorted for stable display.
func suffixesFor(candidates []string, typed string) []string {
	var suffixes []string
	for _, candidate := range candidates {
		if strings.HasPrefix(candidate, typed) && len(candidate) > len(typed) {
			suffixes = append(suffixes, candidate[len(typed):])
		}
	}
	sort.Strings(suffixes)
	return suffixes
}

// phrasePrefixes returns the leading literal text of every configured
// declaration phrasing, up to its first placeholder.
func (a *AutoCompleteService) phrasePrefixes() []string {
	declarationService, err := GetGlobalDeclarationService()
	if err != nil {
		return nil
	}
	types, err := declarationService.ConfiguredTypes()
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var prefixes []string
	for _, typ := range types {
		template := typ.Template()
		prefix := template
		if idx := strings.Index(template, "["); idx != -1 {
			prefix = template[:idx]
		}
		if prefix == "" || seen[prefix] {
			continue
		}
		seen[prefix] = true
		prefixes = append(prefixes, prefix)
	}
	return prefixes
}

// settingKeys returns every setting key, in catalog order.
func (a *AutoCompleteService) settingKeys() []string {
	settingsService, err := GetGlobalSettingsService()
	if err != nil {
		return nil
	}
	return settingsService.Keys()
}

// themeNames returns the available theme names.
func (a *AutoCompleteService) themeNames() []string {
	themeService, err := GetGlobalThemeService()
	if err != nil {
		return nil
	}
	return themeService.GetAvailableThemes()
}

// helpTopics returns the embedded help topic names.
func (a *AutoCompleteService) helpTopics() []string {
	helpService, err := GetGlobalHelpLoaderService()
	if err != nil {
		return nil
	}
	topics, err := helpService.GetLoader().ListTopics()
	if err != nil {
		return nil
	}
	return topics
}
