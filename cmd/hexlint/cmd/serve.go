/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/firmtools/hexlint/pkg/api"
	"github.com/firmtools/hexlint/pkg/archive"
	"github.com/firmtools/hexlint/pkg/config"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the hexlint REST API server.

The server validates hex records over HTTP and archives validation
reports. Configuration is read from the config file when present and
flags override it.

Examples:
  hexlint serve
  hexlint serve --port 9000 --data-dir ./mydata
  hexlint serve --api-key=mysecretkey`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		dataDir, _ := cmd.Flags().GetString("data-dir")
		port, _ := cmd.Flags().GetInt("port")
		bind, _ := cmd.Flags().GetString("bind")
		apiKey, _ := cmd.Flags().GetString("api-key")

		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}

		cfg, err := resolveServeConfig(configPath, dataDir, port, bind, apiKey)
		if err != nil {
			cmd.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}

		if apiKeyMissing(cfg) {
			cmd.Printf("Error: no API key configured. Run 'hexlint init' first or pass --api-key\n")
			os.Exit(1)
		}

		reports, err := archive.Open(filepath.Join(cfg.DataDir, "reports"))
		if err != nil {
			cmd.Printf("Error opening report store: %v\n", err)
			os.Exit(1)
		}
		defer reports.Close()

		if container == nil {
			cmd.Printf("Error: dependency container not initialized\n")
			os.Exit(1)
		}

		serverFactory := container.GetServerFactory()
		serverStarter := serverFactory.CreateServerStarter()

		cmd.Printf("🚀 Starting hexlint server on %s:%d\n", cfg.Bind, cfg.Port)
		cmd.Printf("📁 Data directory: %s\n", cfg.DataDir)

		serverConfig := api.ServerConfig{
			Port:           cfg.Port,
			Bind:           cfg.Bind,
			APIKey:         cfg.Security.APIKey,
			DataDir:        cfg.DataDir,
			AllowedOrigins: cfg.Security.AllowedOrigins,
		}

		if err := serverStarter.StartServer(reports, serverConfig); err != nil {
			cmd.Printf("Error starting server: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("config", "", "Path to config file (default: OS-specific location)")
	serveCmd.Flags().StringP("data-dir", "d", "", "Data directory for archived reports")
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind server to")
	serveCmd.Flags().String("api-key", "", "API key for request authentication")
}

// resolveServeConfig loads the config file when present and applies flag
// overrides. Flags carry their cobra defaults, so only deviations from
// the defaults override the file.
func resolveServeConfig(configPath, dataDir string, port int, bind, apiKey string) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if config.ConfigExists(configPath) {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = config.DefaultConfig()
	}

	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if port != 8080 {
		cfg.Port = port
	}
	if bind != "127.0.0.1" {
		cfg.Bind = bind
	}
	if apiKey != "" {
		cfg.Security.APIKey = apiKey
	}

	return cfg, nil
}

// apiKeyMissing reports whether the config still carries the bootstrap
// placeholder instead of a real key
func apiKeyMissing(cfg *config.Config) bool {
	return cfg.Security.APIKey == "" || cfg.Security.APIKey == "auto"
}
