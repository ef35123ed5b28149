package main

import (
	"github.com/arzan03/doctasks/internal/handlers"
	"github.com/arzan03/doctasks/internal/services"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func (a *app) serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Expose the tasks over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer closeSession(session)

			app := handlers.NewApp(
				handlers.NewTaskHandler(a.newRunner(session)),
				handlers.NewCollectionHandler(services.NewCollectionService(session.DB)),
				a.cfg.JWTSecret,
			)
			if a.cfg.JWTSecret == "" {
				log.Warn().Msg("JWT_SECRET not set: task routes are unauthenticated")
			}

			go func() {
				<-cmd.Context().Done()
				_ = app.Shutdown()
			}()

			log.Info().Str("port", a.cfg.Port).Msg("listening")
			return app.Listen(":" + a.cfg.Port)
		},
	}
}
