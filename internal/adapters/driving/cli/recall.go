package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meridian-labs/brief-cli/internal/core/domain"
	"github.com/meridian-labs/brief-cli/internal/core/services"
)

var (
	recallQuery       string
	recallLimit       int
	recallJSON        bool
	recallSurrounding bool
)

var recallCmd = &cobra.Command{
	Use:   "recall [meeting-id]",
	Short: "Retrieve relevant context for a meeting",
	Long: `Recalls the passages of a meeting's materials most relevant to a
query. Without a query the engine retrieves a cross-section of the whole
collection. Small collections are returned in full.`,
	Args: cobra.ExactArgs(1),
	RunE: runRecall,
}

func init() {
	recallCmd.Flags().StringVarP(&recallQuery, "query", "q", "", "search query (empty recalls the gist)")
	recallCmd.Flags().IntVarP(&recallLimit, "limit", "n", 8, "maximum number of results")
	recallCmd.Flags().BoolVar(&recallJSON, "json", false, "output results as JSON")
	recallCmd.Flags().BoolVar(&recallSurrounding, "surrounding", true, "include neighbouring chunks of each hit")
	rootCmd.AddCommand(recallCmd)
}

func runRecall(cmd *cobra.Command, args []string) error {
	if recallService == nil {
		return errors.New("recall service not configured")
	}

	results, err := recallService.Recall(context.Background(), args[0], domain.RecallOptions{
		Query:              recallQuery,
		K:                  recallLimit,
		IncludeSurrounding: recallSurrounding,
	})
	if err != nil {
		return fmt.Errorf("recall failed: %w", err)
	}

	if recallJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(services.FormatContext(results))
	return nil
}
