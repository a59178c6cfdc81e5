package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lurchmath/lurchmath-sub002/internal/logger"
	"github.com/lurchmath/lurchmath-sub002/internal/services"
)

// settingsCmd groups the persistent settings commands. Running it without a
// subcommand lists every setting.
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Inspect and change persistent settings",
	Long: `Inspect and change the persistent toolkit settings. Setting keys may be
written as separate words, so "settings get color scheme" reads the key
"color scheme".`,
	Run: runSettingsList,
}

var settingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every setting with its current value",
	Run:   runSettingsList,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the current value of one setting",
	Args:  cobra.MinimumNArgs(1),
	Run:   runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Args:  cobra.MinimumNArgs(2),
	Run:   runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset [key]",
	Short: "Reset one setting, or all of them, to the defaults",
	Run:   runSettingsReset,
}

var settingsDiffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Diff current values against the defaults",
	Run:   runSettingsDiff,
}

var settingsDialogCmd = &cobra.Command{
	Use:   "dialog",
	Short: "Print the preferences dialog description as JSON",
	Run:   runSettingsDialog,
}

func init() {
	settingsCmd.AddCommand(settingsListCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	settingsCmd.AddCommand(settingsDiffCmd)
	settingsCmd.AddCommand(settingsDialogCmd)
	rootCmd.AddCommand(settingsCmd)
}

func settingsService() *services.SettingsService {
	setupServices()
	service, err := services.GetGlobalSettingsService()
	if err != nil {
		logger.Fatal("Settings service unavailable", "error", err)
	}
	return service
}

func runSettingsList(_ *cobra.Command, _ []string) {
	service := settingsService()
	export, err := service.Export()
	if err != nil {
		logger.Fatal("Failed to export settings", "error", err)
	}
	fmt.Print(export)
}

func runSettingsGet(_ *cobra.Command, args []string) {
	service := settingsService()
	key := strings.Join(args, " ")
	if !knownSettingKey(service, key) {
		logger.Fatal("Unknown setting", "key", key)
	}
	fmt.Println(service.Get(key))
}

func runSettingsSet(_ *cobra.Command, args []string) {
	service := settingsService()
	key, value, ok := splitSettingArgs(service.Keys(), args)
	if !ok {
		logger.Fatal("No setting key found in arguments", "arguments", strings.Join(args, " "))
	}
	if err := service.Set(key, value); err != nil {
		logger.Fatal("Failed to change setting", "key", key, "error", err)
	}
	fmt.Printf("%s = %s\n", key, service.Get(key))
}

func runSettingsReset(_ *cobra.Command, args []string) {
	service := settingsService()
	if len(args) == 0 {
		if err := service.ResetAll(); err != nil {
			logger.Fatal("Failed to reset settings", "error", err)
		}
		fmt.Println("All settings reset to defaults")
		return
	}

	key := strings.Join(args, " ")
	if err := service.Reset(key); err != nil {
		logger.Fatal("Failed to reset setting", "key", key, "error", err)
	}
	fmt.Printf("%s = %s\n", key, service.Get(key))
}

func runSettingsDiff(_ *cobra.Command, _ []string) {
	service := settingsService()
	diff, err := service.Diff()
	if err != nil {
		logger.Fatal("Failed to diff settings", "error", err)
	}
	if strings.TrimSpace(diff) == "" {
		fmt.Println("settings match the defaults")
		return
	}
	fmt.Print(diff)
}

func runSettingsDialog(_ *cobra.Command, _ []string) {
	service := settingsService()
	dialog, err := service.Dialog()
	if err != nil {
		logger.Fatal("Failed to build settings dialog", "error", err)
	}
	data, err := dialog.JSON()
	if err != nil {
		logger.Fatal("Failed to marshal settings dialog", "error", err)
	}
	fmt.Println(data)
}

func knownSettingKey(service *services.SettingsService, key string) bool {
	for _, known := range service.Keys() {
		if known == key {
			return true
		}
	}
	return false
}

// splitSettingArgs finds the setting key inside the argument list. An exact
// first argument wins, otherwise the longest key that prefixes the joined
// arguments does, so unquoted multi-word keys work.
func splitSettingArgs(keys []string, args []string) (key, value string, ok bool) {
	if len(args) >= 2 {
		for _, known := range keys {
			if known == args[0] {
				return args[0], strings.Join(args[1:], " "), true
			}
		}
	}

	joined := strings.Join(args, " ")
	for _, known := range keys {
		if strings.HasPrefix(joined, known+" ") && len(known) > len(key) {
			key = known
		}
	}
	if key == "" {
		return "", "", false
	}
	return key, strings.TrimSpace(joined[len(key):]), true
}
