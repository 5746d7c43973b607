package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flowatlas-labs/flowatlas-cli/internal/adapters/driven/config/file"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := configPath
		if path == "" {
			var err error
			path, err = file.DefaultPath()
			if err != nil {
				return err
			}
		}

		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists at %s", path)
		}

		if err := file.Save(path, file.Default()); err != nil {
			return err
		}
		cmd.Printf("Wrote default config to %s\n", path)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := configPath
		if path == "" {
			var err error
			path, err = file.DefaultPath()
			if err != nil {
				return err
			}
		}
		cmd.Println(path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}
