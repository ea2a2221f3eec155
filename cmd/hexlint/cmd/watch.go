/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/firmtools/hexlint/pkg/config"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch <filename>",
	Short: "Rescan a hex file whenever it changes",
	Long: `Watch a hex file and rerun validation every time it changes.

The parent directory is watched so editors that replace the file on save
are still picked up. Bursts of events are debounced into one rescan.

Examples:
  hexlint watch firmware.hex
  hexlint watch firmware.hex --debounce 250`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		debounceMillis, _ := cmd.Flags().GetInt("debounce")

		// The config file supplies the debounce when the flag is untouched
		if !cmd.Flags().Changed("debounce") {
			configPath, _ := cmd.Flags().GetString("config")
			if configPath == "" {
				configPath = config.GetDefaultConfigPath()
			}
			if config.ConfigExists(configPath) {
				if cfg, err := config.LoadConfig(configPath); err == nil && cfg.Watch.DebounceMillis > 0 {
					debounceMillis = cfg.Watch.DebounceMillis
				}
			}
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return watchFile(ctx, cmd, args[0], time.Duration(debounceMillis)*time.Millisecond)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().Int("debounce", 500, "Milliseconds to wait after a change before rescanning")
	watchCmd.Flags().String("config", "", "Path to config file (default: OS-specific location)")
}

// watchFile scans path once, then rescans after each burst of file events
// until ctx is done.
func watchFile(ctx context.Context, cmd *cobra.Command, path string, debounce time.Duration) error {
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	absPath = filepath.Clean(absPath)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory; editors that write a temp file and rename it
	// over the target never touch the watched inode itself
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return err
	}

	rescan := func() {
		fmt.Fprintf(cmd.OutOrStdout(), "-- %s\n", path)
		runScan(cmd, path)
	}

	rescan()

	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != absPath {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if pending {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
			}
			timer.Reset(debounce)
			pending = true
		case <-timer.C:
			if pending {
				pending = false
				rescan()
			}
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return watchErr
		}
	}
}
