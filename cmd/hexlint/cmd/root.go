/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/firmtools/hexlint/pkg/di"
	"github.com/firmtools/hexlint/pkg/scan"
)

// container holds injected dependencies for commands that start servers
var container *di.Container

// SetContainer injects the dependency container. Called from main.
func SetContainer(c *di.Container) {
	container = c
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hexlint [filename]",
	Short: "hexlint - Intel HEX record validator",
	Long: `hexlint validates Intel HEX records line by line, checking record
structure and checksums, and prints a verdict for every line.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%s <filename>\n", filepath.Base(os.Args[0]))
			return
		}
		runScan(cmd, args[0])
	},
}

// runScan validates every line of the file, printing per-line verdicts.
// File level failures print a single line and the process still exits
// cleanly, so shell loops over many files keep going.
func runScan(cmd *cobra.Command, path string) {
	scanner := scan.NewScanner(scan.NewConsole(cmd.OutOrStdout()))
	if _, err := scanner.ScanFile(path); err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), err.Error())
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
