package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/yogeshramchandani7/cr360-backend/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing portfolio query tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		log, err := newLogger()
		if err != nil {
			return err
		}
		defer log.Sync()

		engine, db, err := buildEngine(cfg, log)
		if err != nil {
			return err
		}
		defer db.Close()

		mcpserver.Version = Version
		fmt.Fprintln(os.Stderr, "cr360 MCP server started on stdio")

		srv := mcpserver.NewServer(engine)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
