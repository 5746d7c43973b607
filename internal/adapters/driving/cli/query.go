package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowatlas-labs/flowatlas-cli/internal/core/domain"
)

var (
	queryLimit int
	queryJSON  bool
)

var queryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Resolve a natural-language query against the index",
	Long: `Resolves a natural-language query against the indexed data flows.
Recognizes system, format, method, and interface names, directional
phrasings like "von A nach B", and tolerates minor misspellings.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().IntVarP(&queryLimit, "limit", "n", 10, "maximum number of results")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	if err := ensureIndex(cmd); err != nil {
		return err
	}

	result, err := queryService.Resolve(cmd.Context(), args[0], domain.QueryOptions{
		Limit: queryLimit,
	})
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if queryJSON {
		return outputQueryJSON(cmd, result)
	}
	return outputQueryText(cmd, result)
}

func outputQueryJSON(cmd *cobra.Command, result *domain.QueryResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputQueryText(cmd *cobra.Command, result *domain.QueryResult) error {
	cmd.Println(result.Summary)

	if len(result.Matches) == 0 {
		return nil
	}

	cmd.Println()
	for i := range result.Matches {
		m := &result.Matches[i]
		cmd.Printf("  [%d] %s (%.2f)\n", i+1, m.Flow.Name, m.Score)
		if m.Summary != "" {
			cmd.Printf("      %s\n", m.Summary)
		}
	}

	if len(result.Related) > 0 {
		cmd.Println()
		cmd.Println("Related flows:")
		for i := range result.Related {
			cmd.Printf("  - %s (%s)\n", result.Related[i].Name, result.Related[i].ID)
		}
	}

	for _, warning := range result.Warnings {
		cmd.Printf("\nwarning: %s\n", warning)
	}

	return nil
}
