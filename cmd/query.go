package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/yogeshramchandani7/cr360-backend/internal/pipeline"
)

var queryJSON bool

var queryCmd = &cobra.Command{
	Use:   "query [question]",
	Short: "Answer a question about the portfolio from the command line",
	Long: `Runs one natural-language question through the full pipeline. When the
question uses an ambiguous term, an interactive prompt asks which
interpretation to use before the query runs.`,
	Args: cobra.MinimumNArgs(1),
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

		question := strings.Join(args, " ")
		ctx := cmd.Context()

		res, err := engine.Process(ctx, question, "", false)
		if err != nil {
			return err
		}

		if res.NeedsClarification {
			clarifications, err := promptClarifications(res)
			if err != nil {
				return err
			}
			question = pipeline.AugmentWithClarifications(question, clarifications)
			res, err = engine.Process(ctx, question, res.SessionID, true)
			if err != nil {
				return err
			}
		}

		if queryJSON {
			return json.NewEncoder(os.Stdout).Encode(res)
		}
		printResult(res)
		return nil
	},
}

// promptClarifications walks the user through each ambiguous term.
func promptClarifications(res *pipeline.QueryResult) (map[string]string, error) {
	choices := map[string]string{}
	for _, term := range res.Clarification.AmbiguousTerms {
		items := make([]string, len(term.Options))
		for i, opt := range term.Options {
			items[i] = fmt.Sprintf("%s — %s", opt.Name, opt.Description)
		}

		prompt := promptui.Select{
			Label: fmt.Sprintf("Which %q did you mean?", term.Term),
			Items: items,
		}
		idx, _, err := prompt.Run()
		if err != nil {
			return nil, fmt.Errorf("clarification aborted: %w", err)
		}
		choices[term.Term] = term.Options[idx].Name
	}
	return choices, nil
}

func printResult(res *pipeline.QueryResult) {
	if !res.Success {
		fmt.Println(res.Explanation)
		if len(res.Suggestions) > 0 {
			fmt.Println("\nTry one of these:")
			for _, s := range res.Suggestions {
				fmt.Printf("  - %s\n", s)
			}
		}
		return
	}

	fmt.Printf("SQL: %s\n", res.GeneratedQuery)
	if res.Explanation != "" {
		fmt.Printf("\n%s\n", res.Explanation)
	}
	fmt.Printf("\n%d rows (confidence %.2f)\n", res.RowCount, res.Confidence)
	for i, row := range res.Data {
		if i >= 20 {
			fmt.Printf("... and %d more rows\n", len(res.Data)-i)
			break
		}
		cells := make([]string, 0, len(row))
		for k, v := range row {
			cells = append(cells, fmt.Sprintf("%s=%v", k, v))
		}
		fmt.Println("  " + strings.Join(cells, "  "))
	}
}

func init() {
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "print the raw JSON result")
	rootCmd.AddCommand(queryCmd)
}
