package cmd

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/yogeshramchandani7/cr360-backend/internal/database"
)

var loadTable string

var loadCmd = &cobra.Command{
	Use:   "load [csv-file]",
	Short: "Load a CSV extract into the analytical database",
	Long: `Creates the analytical tables if needed and bulk-loads a CSV extract
with a header row into the given table (accounts or computed_metrics).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		db, err := database.Open(cfg.Database.Driver, cfg.Database.DSN)
		if err != nil {
			return err
		}
		defer db.Close()

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening CSV: %w", err)
		}
		defer f.Close()

		loader := database.NewLoader(db, cfg.Database.Driver)
		if err := loader.EnsureSchema(cmd.Context()); err != nil {
			return err
		}

		bar := progressbar.NewOptions(-1,
			progressbar.OptionSetDescription(fmt.Sprintf("Loading %s", loadTable)),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)

		n, err := loader.LoadCSV(cmd.Context(), loadTable, f, func() { bar.Add(1) })
		if err != nil {
			return err
		}
		bar.Finish()

		fmt.Printf("Loaded %d rows into %s\n", n, loadTable)
		return nil
	},
}

func init() {
	loadCmd.Flags().StringVarP(&loadTable, "table", "t", "accounts", "target table (accounts or computed_metrics)")
	rootCmd.AddCommand(loadCmd)
}
