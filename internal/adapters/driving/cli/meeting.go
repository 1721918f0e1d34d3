package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	meetingDate      string
	meetingAttendees string
	meetingTags      string
)

var meetingCmd = &cobra.Command{
	Use:   "meeting",
	Short: "Manage meetings",
	Long:  `Create and list the meetings that materials and briefs attach to.`,
}

var meetingCreateCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a new meeting",
	Args:  cobra.ExactArgs(1),
	RunE:  runMeetingCreate,
}

var meetingListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all meetings",
	RunE:  runMeetingList,
}

var meetingShowCmd = &cobra.Command{
	Use:   "show [meeting-id]",
	Short: "Show one meeting and its materials",
	Args:  cobra.ExactArgs(1),
	RunE:  runMeetingShow,
}

func init() {
	meetingCreateCmd.Flags().StringVar(&meetingDate, "date", "", "meeting date (YYYY-MM-DD)")
	meetingCreateCmd.Flags().StringVar(&meetingAttendees, "attendees", "", "comma-separated attendees")
	meetingCreateCmd.Flags().StringVar(&meetingTags, "tags", "", "comma-separated tags")

	meetingCmd.AddCommand(meetingCreateCmd)
	meetingCmd.AddCommand(meetingListCmd)
	meetingCmd.AddCommand(meetingShowCmd)
	rootCmd.AddCommand(meetingCmd)
}

func runMeetingCreate(cmd *cobra.Command, args []string) error {
	if meetingService == nil {
		return errors.New("meeting service not configured")
	}

	meeting, err := meetingService.CreateMeeting(
		context.Background(), args[0], meetingDate, meetingAttendees, meetingTags)
	if err != nil {
		return fmt.Errorf("failed to create meeting: %w", err)
	}

	cmd.Printf("Created meeting %s\n", meeting.ID)
	return nil
}

func runMeetingList(cmd *cobra.Command, _ []string) error {
	if meetingService == nil {
		return errors.New("meeting service not configured")
	}

	meetings, err := meetingService.ListMeetings(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list meetings: %w", err)
	}

	if len(meetings) == 0 {
		cmd.Println("No meetings yet. Create one with 'brief meeting create'.")
		return nil
	}

	cmd.Println("Meetings:")
	for i := range meetings {
		m := &meetings[i]
		cmd.Printf("  %s  %s", m.ID, m.Title)
		if m.Date != "" {
			cmd.Printf("  (%s)", m.Date)
		}
		cmd.Println()
	}
	return nil
}

func runMeetingShow(cmd *cobra.Command, args []string) error {
	if meetingService == nil {
		return errors.New("meeting service not configured")
	}

	ctx := context.Background()
	meeting, err := meetingService.GetMeeting(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get meeting: %w", err)
	}

	cmd.Printf("%s  %s\n", meeting.ID, meeting.Title)
	if meeting.Date != "" {
		cmd.Printf("  Date: %s\n", meeting.Date)
	}
	if meeting.Attendees != "" {
		cmd.Printf("  Attendees: %s\n", meeting.Attendees)
	}
	if meeting.Tags != "" {
		cmd.Printf("  Tags: %s\n", meeting.Tags)
	}

	materials, err := meetingService.ListMaterials(ctx, meeting.ID)
	if err != nil {
		return fmt.Errorf("failed to list materials: %w", err)
	}
	cmd.Printf("  Materials: %d\n", len(materials))
	for i := range materials {
		mat := &materials[i]
		name := mat.Filename
		if name == "" {
			name = "(pasted)"
		}
		cmd.Printf("    %s  %s  %s, %d chars\n", mat.ID, name, mat.MediaType, len(mat.Text))
	}
	return nil
}
