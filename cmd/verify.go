package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/social-verify/internal/input"
	"github.com/sells-group/social-verify/internal/model"
	"github.com/sells-group/social-verify/internal/monitoring"
	"github.com/sells-group/social-verify/internal/output"
	"github.com/sells-group/social-verify/internal/verify"
)

var (
	verifyInput       string
	verifyOutput      string
	verifyFormat      string
	verifyConcurrency int
	verifyNoStore     bool
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify candidate social links for a file of businesses",
	Long: `Loads businesses with their candidate links from a JSON, CSV or XLSX file,
fills missing page text through the configured fetcher, scores every link and
writes one record per business in input order.

Examples:
  # Score links that already carry their page text
  social-verify verify --input businesses.json --output verified.json

  # Read pages through Jina Reader and write YAML
  SOCIALVERIFY_FETCH_PROVIDER=jina social-verify verify --input list.csv --output out.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		format := output.FormatFromPath(verifyOutput)
		if verifyFormat != "" {
			f, err := output.ParseFormat(verifyFormat)
			if err != nil {
				return err
			}
			format = f
		}

		env, err := initEnv(ctx, cfg, "verify", !verifyNoStore)
		if err != nil {
			return err
		}
		defer env.Close()

		concurrency := verifyConcurrency
		if concurrency <= 0 {
			concurrency = cfg.Batch.MaxConcurrentEntities
		}

		report, runErr := runVerify(ctx, env, verifyInput, concurrency)
		if report != nil {
			if err := output.WriteFile(verifyOutput, output.Records(report.Results), format); err != nil {
				return err
			}
		}
		return runErr
	},
}

func init() {
	f := verifyCmd.Flags()
	f.StringVarP(&verifyInput, "input", "i", "", "input file (.json, .csv or .xlsx)")
	f.StringVarP(&verifyOutput, "output", "o", "-", "output file, - for stdout")
	f.StringVar(&verifyFormat, "format", "", "output format: json or yaml (default from output extension)")
	f.IntVar(&verifyConcurrency, "concurrency", 0, "entities verified in parallel (default from config)")
	f.BoolVar(&verifyNoStore, "no-store", false, "do not persist the run and its results")
	_ = verifyCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(verifyCmd)
}

// runVerify loads path, verifies every record and records the run in the
// store when one is configured. The report is returned even when the run
// was interrupted.
func runVerify(ctx context.Context, env *verifyEnv, path string, concurrency int) (*verify.BatchReport, error) {
	loaded, err := input.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	var run *model.Run
	runID := ""
	if env.Store != nil {
		run, err = env.Store.CreateRun(ctx, path)
		if err != nil {
			return nil, eris.Wrap(err, "create run")
		}
		runID = run.ID
	}

	opts := verify.BatchOptions{
		Concurrency: concurrency,
		Prepare:     env.prepare(),
	}
	if run != nil {
		opts.OnResult = func(ctx context.Context, _ int, res model.VerificationResult) {
			if err := env.Store.SaveResult(ctx, run.ID, res); err != nil {
				zap.L().Warn("save result failed",
					zap.String("run_id", run.ID),
					zap.String("entity_id", res.Record.ID),
					zap.Error(err),
				)
			}
		}
	}

	report, batchErr := env.Verifier.RunBatch(ctx, loaded.Records, opts)
	report.Summary.Skipped = len(loaded.Skipped)

	if run != nil {
		status := model.RunStatusComplete
		if batchErr != nil {
			status = model.RunStatusFailed
		}
		if err := env.Store.CompleteRun(context.WithoutCancel(ctx), run.ID, status, report.Summary); err != nil {
			zap.L().Error("complete run failed", zap.String("run_id", run.ID), zap.Error(err))
		}
	}

	fields := []zap.Field{
		zap.String("input", path),
		zap.Int("entities", report.Summary.Entities),
		zap.Int("skipped", report.Summary.Skipped),
		zap.Int("failed", report.Summary.Failed),
		zap.Int("verified", report.Summary.Verified),
		zap.Int("likely_correct", report.Summary.LikelyCorrect),
		zap.Int("unverified", report.Summary.Unverified),
	}
	if run != nil {
		fields = append(fields, zap.String("run_id", run.ID))
	}
	zap.L().Info("verification run finished", fields...)

	if env.Alerter != nil {
		alerts := env.Alerter.Evaluate(monitoring.Snapshot(runID, report))
		for _, a := range alerts {
			zap.L().Warn("run alert", zap.String("type", string(a.Type)), zap.String("message", a.Message))
		}
		env.Alerter.SendAlerts(context.WithoutCancel(ctx), alerts)
	}

	return report, batchErr
}
