package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/madsdyd/grv-scripts/internal/members"
)

func emailsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emails <medlemmer.xlsx> <grupper.json>",
		Short: "Udskriv emaillister for foreningens grupper",
		Long: "Slår gruppernes medlemmer op i medlemslisten og udskriver en " +
			"linje per gruppe, klar til at sætte ind i mailklienten. Personer " +
			"uden email markeres tydeligt i stedet for at blive udeladt.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := members.Load(args[0], logger)
			if err != nil {
				return err
			}

			groups, err := members.LoadGroups(args[1])
			if err != nil {
				return err
			}

			index := members.BuildEmailIndex(list, logger)

			for _, group := range groups {
				fmt.Println(members.GroupLine(group, index, logger))
				fmt.Println()
			}

			return nil
		},
	}

	return cmd
}
