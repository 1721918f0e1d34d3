package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var materialCmd = &cobra.Command{
	Use:   "material",
	Short: "Manage meeting materials",
	Long: `Add and list the source materials a brief is generated from:
notes, minutes, agendas and any other text worth recalling.`,
}

var materialAddCmd = &cobra.Command{
	Use:   "add [meeting-id] [file...]",
	Short: "Add files as materials",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runMaterialAdd,
}

var materialPasteCmd = &cobra.Command{
	Use:   "paste [meeting-id]",
	Short: "Add pasted text from stdin as a material",
	Args:  cobra.ExactArgs(1),
	RunE:  runMaterialPaste,
}

var materialListCmd = &cobra.Command{
	Use:   "list [meeting-id]",
	Short: "List a meeting's materials",
	Args:  cobra.ExactArgs(1),
	RunE:  runMaterialList,
}

func init() {
	materialCmd.AddCommand(materialAddCmd)
	materialCmd.AddCommand(materialPasteCmd)
	materialCmd.AddCommand(materialListCmd)
	rootCmd.AddCommand(materialCmd)
}

func runMaterialAdd(cmd *cobra.Command, args []string) error {
	if meetingService == nil {
		return errors.New("meeting service not configured")
	}

	ctx := context.Background()
	meetingID := args[0]

	for _, filename := range args[1:] {
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("reading %s: %w", filename, err)
		}

		material, err := meetingService.AddMaterialFile(ctx, meetingID, filename, content)
		if err != nil {
			return fmt.Errorf("failed to add %s: %w", filename, err)
		}
		cmd.Printf("Added %s as %s (%d chars)\n", material.Filename, material.ID, len(material.Text))
	}
	return nil
}

func runMaterialPaste(cmd *cobra.Command, args []string) error {
	if meetingService == nil {
		return errors.New("meeting service not configured")
	}

	text, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}

	material, err := meetingService.AddPastedText(context.Background(), args[0], string(text))
	if err != nil {
		return fmt.Errorf("failed to add pasted text: %w", err)
	}

	cmd.Printf("Added pasted text as %s (%d chars)\n", material.ID, len(material.Text))
	return nil
}

func runMaterialList(cmd *cobra.Command, args []string) error {
	if meetingService == nil {
		return errors.New("meeting service not configured")
	}

	materials, err := meetingService.ListMaterials(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to list materials: %w", err)
	}

	if len(materials) == 0 {
		cmd.Println("No materials. Add some with 'brief material add' or 'brief material paste'.")
		return nil
	}

	cmd.Println("Materials:")
	for i := range materials {
		mat := &materials[i]
		name := mat.Filename
		if name == "" {
			name = "(pasted)"
		}
		cmd.Printf("  %s  %s  %s, %d chars\n", mat.ID, name, mat.MediaType, len(mat.Text))
	}
	return nil
}
