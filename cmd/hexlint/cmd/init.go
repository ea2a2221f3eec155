/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/firmtools/hexlint/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a hexlint configuration with a fresh API key",
	Long: `Create the hexlint configuration file and generate a secure API key
for the REST API server.

Examples:
  hexlint init
  hexlint init --data-dir ./mydata
  hexlint init --config ./custom-config.yaml --force`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		dataDir, _ := cmd.Flags().GetString("data-dir")
		force, _ := cmd.Flags().GetBool("force")

		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}

		if config.ConfigExists(configPath) && !force {
			cmd.Printf("Configuration already exists at %s. Use --force to regenerate.\n", configPath)
			return
		}

		cfg, err := config.BootstrapConfig(configPath, dataDir)
		if err != nil {
			cmd.Printf("Error bootstrapping config: %v\n", err)
			os.Exit(1)
		}

		cmd.Printf("✅ Configuration created at %s\n", configPath)
		cmd.Printf("📁 Data directory: %s\n", cfg.DataDir)
		cmd.Printf("\n🔑 API key: %s\n", cfg.Security.APIKey)
		cmd.Printf("\n⚠️  Store this key securely! It is also saved in %s\n", configPath)
		cmd.Printf("\nYou can now start the server with:\n")
		cmd.Printf("  hexlint serve --config %s\n", configPath)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().String("config", "", "Path to config file (default: OS-specific location)")
	initCmd.Flags().StringP("data-dir", "d", "", "Data directory for archived reports")
	initCmd.Flags().Bool("force", false, "Regenerate the configuration even if it already exists")
}
