package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yogeshramchandani7/cr360-backend/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(cfgFile); err == nil {
			return fmt.Errorf("%s already exists", cfgFile)
		}

		cfg := config.DefaultConfig()
		if err := cfg.Save(cfgFile); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", cfgFile)

		if env := config.APIKeyEnvVar(cfg.Provider); env != "" {
			fmt.Printf("Set %s before running queries.\n", env)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
