package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/madsdyd/grv-scripts/internal/members"
)

func syntetiskCmd() *cobra.Command {
	var (
		antal int
		seed  int64
	)

	cmd := &cobra.Command{
		Use:   "syntetisk <output.xlsx>",
		Short: "Generér en syntetisk medlemsliste til test",
		Long: "Skriver et regneark med opdigtede medlemmer i samme format som " +
			"medlemssystemets eksport, med rigtige vejnavne så adresserne kan " +
			"geokodes. Samme seed giver samme medlemmer.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if antal <= 0 {
				return fmt.Errorf("antal must be positive, got %d", antal)
			}

			if err := members.WriteSynthetic(args[0], antal, seed, logger); err != nil {
				return err
			}

			fmt.Printf("Skrev %d syntetiske medlemmer til %s\n", antal, args[0])
			return nil
		},
	}

	cmd.Flags().IntVar(&antal, "antal", 120, "Number of members to generate")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed")

	return cmd
}
