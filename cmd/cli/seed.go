package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Bulk-import events",
	}

	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Create every event listed in a seed JSON file",
		Long: `Reads a seed file of the form

  {"events": [{"title": ..., "startsAt": ..., "endsAt": ...}, ...],
   "categories": [...], "organizers": [...]}

creates each event on chain, and pins a registry document of the created
object ids to the blob store. Entries that fail are skipped and counted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			result, err := a.importer.ImportSeed(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}

	seedCmd.AddCommand(importCmd)
	rootCmd.AddCommand(seedCmd)
}
