package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meridian-labs/brief-cli/internal/core/domain"
)

var (
	briefQuery string
	briefJSON  bool
)

var briefCmd = &cobra.Command{
	Use:   "brief",
	Short: "Generate and read meeting briefs",
}

var briefGenerateCmd = &cobra.Command{
	Use:   "generate [meeting-id]",
	Short: "Generate a brief for a meeting",
	Long: `Recalls the most relevant context from the meeting's materials and
asks the configured language model to synthesise a structured brief:
recap, open action items, key topics and a proposed agenda.`,
	Args: cobra.ExactArgs(1),
	RunE: runBriefGenerate,
}

var briefShowCmd = &cobra.Command{
	Use:   "show [meeting-id]",
	Short: "Show the latest brief for a meeting",
	Args:  cobra.ExactArgs(1),
	RunE:  runBriefShow,
}

var briefHistoryCmd = &cobra.Command{
	Use:   "history [meeting-id]",
	Short: "List all briefs generated for a meeting",
	Args:  cobra.ExactArgs(1),
	RunE:  runBriefHistory,
}

func init() {
	briefGenerateCmd.Flags().StringVarP(&briefQuery, "query", "q", "", "focus the brief on a query")
	briefGenerateCmd.Flags().BoolVar(&briefJSON, "json", false, "output the brief as JSON")
	briefShowCmd.Flags().BoolVar(&briefJSON, "json", false, "output the brief as JSON")

	briefCmd.AddCommand(briefGenerateCmd)
	briefCmd.AddCommand(briefShowCmd)
	briefCmd.AddCommand(briefHistoryCmd)
	rootCmd.AddCommand(briefCmd)
}

func runBriefGenerate(cmd *cobra.Command, args []string) error {
	if briefService == nil {
		return errors.New("brief service not configured")
	}

	record, err := briefService.Generate(context.Background(), args[0], briefQuery)
	if err != nil {
		return fmt.Errorf("failed to generate brief: %w", err)
	}

	return outputBrief(cmd, record)
}

func runBriefShow(cmd *cobra.Command, args []string) error {
	if briefService == nil {
		return errors.New("brief service not configured")
	}

	record, err := briefService.Latest(context.Background(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no brief yet for %s; run 'brief generate' first", args[0])
		}
		return fmt.Errorf("failed to load brief: %w", err)
	}

	return outputBrief(cmd, record)
}

func runBriefHistory(cmd *cobra.Command, args []string) error {
	if briefService == nil {
		return errors.New("brief service not configured")
	}

	records, err := briefService.History(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if len(records) == 0 {
		cmd.Println("No briefs generated yet.")
		return nil
	}

	cmd.Println("Briefs (newest first):")
	for i := range records {
		r := &records[i]
		cmd.Printf("  %s  %s  (%s)\n", r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.Model)
	}
	return nil
}

func outputBrief(cmd *cobra.Command, record *domain.BriefRecord) error {
	if briefJSON {
		data, err := json.MarshalIndent(record.Brief, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal brief: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	b := &record.Brief

	cmd.Printf("%s\n", b.MeetingTitle)
	if b.TimeWindow != "" {
		cmd.Printf("Window: %s\n", b.TimeWindow)
	}
	cmd.Println()

	if b.LastMeetingRecap != "" {
		cmd.Println("Last meeting:")
		cmd.Printf("  %s\n\n", b.LastMeetingRecap)
	}

	if len(b.OpenActionItems) > 0 {
		cmd.Println("Open action items:")
		for _, item := range b.OpenActionItems {
			line := fmt.Sprintf("  [%s] %s: %s", item.Status, item.Owner, item.Item)
			if item.Due != "" {
				line += fmt.Sprintf(" (due %s)", item.Due)
			}
			cmd.Println(line)
		}
		cmd.Println()
	}

	if len(b.KeyTopicsToday) > 0 {
		cmd.Println("Key topics today:")
		for _, topic := range b.KeyTopicsToday {
			cmd.Printf("  - %s\n", topic)
		}
		cmd.Println()
	}

	if len(b.ProposedAgenda) > 0 {
		cmd.Println("Proposed agenda:")
		for _, item := range b.ProposedAgenda {
			line := fmt.Sprintf("  %2d min  %s", item.Minutes, item.Topic)
			if item.Owner != "" {
				line += fmt.Sprintf(" (%s)", item.Owner)
			}
			cmd.Println(line)
		}
		cmd.Println()
	}

	if len(b.Evidence) > 0 {
		cmd.Println("Evidence:")
		for _, ev := range b.Evidence {
			cmd.Printf("  %s: %q\n", ev.Source, ev.Snippet)
		}
		cmd.Println()
	}

	cmd.Printf("Generated by %s as %s\n", record.Model, record.ID)
	return nil
}
