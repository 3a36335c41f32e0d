package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"klaxon/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "klaxon",
	Short: "Diagnostic manager demo and bundle tooling",
	Long:  `Klaxon routes errors, warnings, status messages and fatal conditions through a single process-wide manager with per-thread error stores, scoped marks and cross-thread transports`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress terminal echo of diagnostics")

	cobra.OnInitialize(applyColorMode)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// applyColorMode resolves the --color flag; auto keeps color only when
// stdout is a terminal.
func applyColorMode() {
	mode, err := rootCmd.PersistentFlags().GetString("color")
	if err != nil {
		return
	}
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		color.NoColor = !isTerminal(os.Stdout)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
