package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/arzan03/doctasks/internal/config"
	"github.com/arzan03/doctasks/internal/db"
	"github.com/arzan03/doctasks/internal/logging"
	"github.com/arzan03/doctasks/internal/runner"
	"github.com/arzan03/doctasks/internal/services"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// exitError carries a process exit code out of a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

type app struct {
	v   *viper.Viper
	cfg *config.Config
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{v: config.New()}
	root := a.rootCommand()
	if err := root.ExecuteContext(ctx); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			log.Error().Err(ee.err).Msg("doctasks failed")
			stop()
			os.Exit(ee.code)
		}
		log.Error().Err(err).Msg("doctasks failed")
		stop()
		os.Exit(1)
	}
}

func (a *app) rootCommand() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "doctasks",
		Short:         "Run query, update, bulk and aggregation tasks against MongoDB",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			dotEnvErr := config.LoadDotEnv(envFile)
			cfg, err := config.Load(a.v)
			if err != nil {
				return &exitError{code: 2, err: err}
			}
			logging.Setup(cfg.LogLevel, cfg.LogFormat, os.Stderr)
			if dotEnvErr != nil {
				log.Debug().Err(dotEnvErr).Msg("no .env file loaded, using environment variables")
			}
			a.cfg = cfg
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	flags.String("mongo-uri", "", "MongoDB connection string (MONGO_URI)")
	flags.String("db", "", "database name (MONGO_DB)")
	flags.Duration("timeout", 0, "per-task timeout (TASK_TIMEOUT)")
	flags.String("log-level", "", "log level (LOG_LEVEL)")
	flags.String("log-format", "", "console or json (LOG_FORMAT)")
	for key, flag := range map[string]string{
		"MONGO_URI":    "mongo-uri",
		"MONGO_DB":     "db",
		"TASK_TIMEOUT": "timeout",
		"LOG_LEVEL":    "log-level",
		"LOG_FORMAT":   "log-format",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}

	root.AddCommand(a.listCommand(), a.runCommand(), a.seedCommand(), a.serveCommand(), a.tokenCommand())
	return root
}

// connect opens the store session. Connection failure aborts the command.
func (a *app) connect(ctx context.Context) (*db.Session, error) {
	session, err := db.Connect(ctx, a.cfg.MongoURI, a.cfg.MongoDB)
	if err != nil {
		return nil, &exitError{code: 1, err: err}
	}
	return session, nil
}

func closeSession(session *db.Session) {
	if err := session.Close(context.Background()); err != nil {
		log.Error().Err(err).Msg("close failed")
	}
}

func (a *app) newRunner(session *db.Session) *runner.Runner {
	tasks := runner.Catalog(runner.Services{
		Users:    services.NewUserService(session.DB),
		Articles: services.NewArticleService(session.DB),
		Students: services.NewStudentService(session.DB),
	}, runner.CatalogOptions{ReplaceMode: services.ReplaceMode(a.cfg.ReplaceMode)})
	return runner.New(tasks, a.cfg.TaskTimeout)
}

func (a *app) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, t := range runner.Catalog(runner.Services{}, runner.CatalogOptions{}) {
				fmt.Fprintf(out, "%-14s %-16s %-9s %s\n", t.Name, t.Alias, t.Collection, t.Description)
			}
			return nil
		},
	}
}
