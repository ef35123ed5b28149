package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/arzan03/doctasks/internal/runner"
	"github.com/arzan03/doctasks/internal/storage"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func (a *app) runCommand() *cobra.Command {
	var (
		all    bool
		export bool
		strict bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "run [task...]",
		Short: "Run tasks by name or alias",
		Long: "Run the named tasks in catalogue order. Without arguments only " +
			runner.DefaultTask + " runs; --all runs the whole catalogue.",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := args
			switch {
			case all && len(args) > 0:
				return &exitError{code: 2, err: errors.New("--all cannot be combined with task names")}
			case all:
				names = nil
			case len(args) == 0:
				names = []string{runner.DefaultTask}
			}

			catalog := runner.New(runner.Catalog(runner.Services{}, runner.CatalogOptions{}), 0)
			for _, n := range names {
				if _, err := catalog.Lookup(n); err != nil {
					return &exitError{code: 2, err: err}
				}
			}

			session, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer closeSession(session)

			report, err := a.newRunner(session).Run(cmd.Context(), names...)
			if errors.Is(err, runner.ErrUnknownTask) {
				return &exitError{code: 2, err: err}
			}
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return fmt.Errorf("failed to encode report: %w", err)
				}
			}

			if export {
				a.exportReport(cmd, report)
			}

			if strict && report.Failed() > 0 {
				return &exitError{code: 1, err: fmt.Errorf("%d task(s) failed", report.Failed())}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "run every task")
	cmd.Flags().BoolVar(&export, "export", false, "upload the run report to MinIO")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when a task fails")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the run report as JSON")
	return cmd
}

// exportReport uploads report; failures are logged only.
func (a *app) exportReport(cmd *cobra.Command, report *runner.Report) {
	if !a.cfg.MinioEnabled() {
		log.Warn().Msg("--export ignored: MINIO_ENDPOINT is not set")
		return
	}
	client, err := storage.NewMinioClient(a.cfg.MinioEndpoint, a.cfg.MinioAccessKey, a.cfg.MinioSecretKey, a.cfg.MinioUseSSL)
	if err != nil {
		log.Error().Err(err).Msg("report export failed")
		return
	}
	if _, err := storage.NewReportSink(client, a.cfg.ReportBucket).Upload(cmd.Context(), report); err != nil {
		log.Error().Err(err).Msg("report export failed")
	}
}
