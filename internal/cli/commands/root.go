package commands

import (
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cascade",
		Short: "Cascade stylesheet parser and tooling",
		Long: color.CyanString(`Cascade - Error-Tolerant Stylesheet Tooling

Cascade parses SCSS-dialect stylesheets into a full syntax tree, however
broken the input, and reports every syntax error with a precise location.

Features:
  • Error-tolerant parsing (a tree for any input)
  • Variables, mixins, functions and control flow
  • Module system (@use / @forward)
  • Editor integration over LSP
  • File watching with instant rechecks`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add subcommands
	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewCheckCommand())
	rootCmd.AddCommand(NewWatchCommand())
	rootCmd.AddCommand(NewLSPCommand())

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the Cascade version, Git commit, build date, and Go version",
		Run: func(cmd *cobra.Command, args []string) {
			// Set GoVersion to actual runtime if not set at build time
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			titleColor := color.New(color.FgCyan, color.Bold)
			valueColor := color.New(color.FgWhite)

			titleColor.Fprint(cmd.OutOrStdout(), "Cascade version: ")
			valueColor.Fprintln(cmd.OutOrStdout(), Version)

			titleColor.Fprint(cmd.OutOrStdout(), "Git commit: ")
			valueColor.Fprintln(cmd.OutOrStdout(), GitCommit)

			titleColor.Fprint(cmd.OutOrStdout(), "Build date: ")
			valueColor.Fprintln(cmd.OutOrStdout(), BuildDate)

			titleColor.Fprint(cmd.OutOrStdout(), "Go version: ")
			valueColor.Fprintln(cmd.OutOrStdout(), goVer)
		},
	}
}
