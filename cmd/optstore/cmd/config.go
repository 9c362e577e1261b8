package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LuciCodesStuff/GP2040-CE/pkg/config"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the optstore configuration file",
		// The config commands never open storage
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	}
	configCmd.AddCommand(newConfigInitCmd())
	return configCmd
}

func newConfigInitCmd() *cobra.Command {
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Write a default configuration file.

The flags of the root command set the media backend and path of the new file.

Examples:
  optstore config init
  optstore config init --config ./optstore.yaml --backend pebble --image ./flash`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			force, _ := cmd.Flags().GetBool("force")
			if configPath == "" {
				configPath = config.GetDefaultConfigPath()
			}

			if config.ConfigExists(configPath) && !force {
				return fmt.Errorf("config file already exists: %s (use --force to overwrite)", configPath)
			}

			cfg := config.DefaultConfig()
			if image, _ := cmd.Flags().GetString("image"); image != "" {
				cfg.Media.Path = image
			}
			if backend, _ := cmd.Flags().GetString("backend"); backend != "" {
				cfg.Media.Backend = backend
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			if err := config.SaveConfig(cfg, configPath); err != nil {
				return err
			}
			cmd.Printf("✅ Configuration created at %s\n", configPath)
			return nil
		},
	}
	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")
	return initCmd
}
