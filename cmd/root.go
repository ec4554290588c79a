package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "cr360",
	Short: "Natural-language analytics backend for credit-risk portfolios",
	Long: `CR360 answers natural-language questions about a credit portfolio by
generating SQL against a governed semantic model, validating it, and
executing it with bounded retries. It serves a REST and WebSocket API,
a CLI query mode, and an MCP server for AI agent integration.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".cr360.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
