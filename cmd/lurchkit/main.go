// Package main provides the lurchkit CLI application entry point.
// lurchkit is a command line workbench for Lurch declaration phrasings,
// document settings, and expository math annotations.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lurchmath/lurchmath-sub002/internal/logger"
	"github.com/lurchmath/lurchmath-sub002/internal/shell"
	"github.com/lurchmath/lurchmath-sub002/internal/version"
)

var (
	logLevel string
	logFile  string
	testMode bool
)

// Running lurchkit with no subcommand opens the interactive shell.
var rootCmd = &cobra.Command{
	Use:   "lurchkit",
	Short: "Lurch declaration toolkit",
	Long: `lurchkit is a toolkit for the declaration layer of Lurch documents.
It matches declaration phrases against configurable templates, renders them
for display and typesetting, manages document settings, and previews
expository math annotations.`,
	Run: runShell,
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive declaration shell",
	Long:  `Start the interactive shell for matching, rendering, and previewing declaration phrases.`,
	Run:   runShell,
}

var runCmd = &cobra.Command{
	Use:   "run <script.lsh>",
	Short: "Execute a .lsh script of shell commands",
	Long: `Execute a .lsh script file of shell commands and declaration phrases
without entering interactive mode. This is useful for automation and for
reproducing shell sessions.`,
	Args: cobra.ExactArgs(1),
	Run:  runScript,
}

var versionDetailed bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the lurchkit version, optionally with build details.`,
	Run: func(_ *cobra.Command, _ []string) {
		if versionDetailed {
			fmt.Println(version.GetDetailedVersion())
			return
		}
		fmt.Println(version.GetFormattedVersion())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, or error")
	flags.StringVar(&logFile, "log-file", "", "Append logs to this file instead of stderr")
	flags.BoolVar(&testMode, "test-mode", false, "Deterministic IDs and in-memory settings")

	for _, name := range []string{"log-level", "log-file", "test-mode"} {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			fmt.Fprintf(os.Stderr, "Error binding %s flag: %v\n", name, err)
			os.Exit(1)
		}
	}

	versionCmd.Flags().BoolVar(&versionDetailed, "detailed", false, "Show build and platform details")

	rootCmd.AddCommand(shellCmd, runCmd, versionCmd)

	// The logger must be ready before any Run function executes.
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if err := logger.Configure(viper.GetString("log-level"), viper.GetString("log-file"), viper.GetBool("test-mode")); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logger: %v\n", err)
		os.Exit(1)
	}
}

func runShell(_ *cobra.Command, _ []string) {
	logger.Info("Starting lurchkit", "version", version.GetVersion())

	if err := shell.Run(shell.Options{TestMode: testMode}); err != nil {
		logger.Fatal("Shell exited with error", "error", err)
	}
}

func runScript(_ *cobra.Command, args []string) {
	scriptPath := args[0]

	logger.Info("Starting lurchkit batch mode", "version", version.GetVersion(), "script", scriptPath)

	if err := validateScriptFile(scriptPath); err != nil {
		logger.Fatal("Refusing to run script", "error", err)
	}
	if err := shell.RunScript(os.Stdout, scriptPath, shell.Options{TestMode: testMode}); err != nil {
		logger.Fatal("Script failed", "error", err)
	}
}

func validateScriptFile(scriptPath string) error {
	if _, err := os.Stat(scriptPath); os.IsNotExist(err) {
		return fmt.Errorf("no such script file: %s", scriptPath)
	}
	if ext := filepath.Ext(scriptPath); ext != ".lsh" {
		return fmt.Errorf("script file must have .lsh extension, got: %s", ext)
	}
	return nil
}

// setupServices initializes the service registry for non-interactive
// commands. Failures are fatal because no command can run without it.
func setupServices() {
	if err := shell.InitializeServices(testMode); err != nil {
		logger.Fatal("Service initialization failed", "error", err)
	}
}
