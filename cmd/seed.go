package main

import (
	"github.com/arzan03/doctasks/internal/services"
	"github.com/spf13/cobra"
)

func (a *app) seedCommand() *cobra.Command {
	var drop bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load sample users and students",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer closeSession(session)

			_, err = services.NewSeedService(session.DB).Seed(cmd.Context(), services.DefaultFixtures(), drop)
			return err
		},
	}
	cmd.Flags().BoolVar(&drop, "drop", false, "drop users, articles and students first")
	return cmd
}
