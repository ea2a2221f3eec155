/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/firmtools/hexlint/pkg/scan"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats <filename>",
	Short: "Summarize a hex file without per-line output",
	Long: `Validate every line of a hex file and print summary counts instead
of per-line verdicts.

Example:
  hexlint stats firmware.hex`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		scanner := scan.NewScanner(nil)
		stats, err := scanner.ScanFile(args[0])
		if err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), err.Error())
			return
		}
		printStats(cmd.OutOrStdout(), stats)
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

// printStats writes summary counts with record types sorted by name
func printStats(w io.Writer, stats *scan.Stats) {
	fmt.Fprintf(w, "lines:   %d\n", stats.Lines)
	fmt.Fprintf(w, "valid:   %d\n", stats.Valid)
	fmt.Fprintf(w, "invalid: %d\n", stats.Invalid)

	if len(stats.ByType) == 0 {
		return
	}

	names := make([]string, 0, len(stats.ByType))
	counts := make(map[string]int, len(stats.ByType))
	for recordType, count := range stats.ByType {
		name := recordType.String()
		names = append(names, name)
		counts[name] = count
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(w, "  %s: %d\n", name, counts[name])
	}
}
