package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"changeset-manager/core/batch"

	"github.com/spf13/cobra"
)

// planCmd validates a batch document offline and prints its plan.
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Validate a batch document and print its plan",
	Long: `Reads a JSON or YAML batch document (old counts, new counts and edits),
validates it and prints the grouped changes in the order they must be applied.
Every violation is reported when the batch is rejected.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		jsonOutput, _ := cmd.Flags().GetBool("json")

		req, err := batch.Load(file)
		if err != nil {
			return err
		}

		doc, _, err := batch.Plan(req)
		if err != nil {
			return fmt.Errorf("batch rejected: %w", err)
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		}
		return batch.Render(os.Stdout, doc)
	},
}

func init() {
	RootCmd.AddCommand(planCmd)

	planCmd.Flags().StringP("file", "f", "", "Batch document (.json, .yaml or .yml)")
	planCmd.Flags().Bool("json", false, "Print the plan as JSON")
	_ = planCmd.MarkFlagRequired("file")
}
