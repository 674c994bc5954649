package main

import (
	"context"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/social-verify/internal/model"
	"github.com/sells-group/social-verify/internal/output"
	"github.com/sells-group/social-verify/internal/store"
)

var resultsFlags struct {
	entity string
	runID  string
	status string
	limit  int
	offset int
	format string
	prune  bool
}

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "List stored verification results",
	Long: `Prints stored results, newest first. --entity prints the latest result
for one business. --prune-cache also removes expired fetch cache entries.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := output.ParseFormat(resultsFlags.format)
		if err != nil {
			return err
		}

		env, err := initEnv(cmd.Context(), cfg, "results", true)
		if err != nil {
			return err
		}
		defer env.Close()

		return listResults(cmd.Context(), env.Store, cmd.OutOrStdout(), format)
	},
}

func init() {
	f := resultsCmd.Flags()
	f.StringVar(&resultsFlags.entity, "entity", "", "business id")
	f.StringVar(&resultsFlags.runID, "run", "", "only results from this run")
	f.StringVar(&resultsFlags.status, "status", "", "VERIFIED, LIKELY_CORRECT or UNVERIFIED")
	f.IntVar(&resultsFlags.limit, "limit", 100, "max results")
	f.IntVar(&resultsFlags.offset, "offset", 0, "results to skip")
	f.StringVar(&resultsFlags.format, "format", "json", "json or yaml")
	f.BoolVar(&resultsFlags.prune, "prune-cache", false, "delete expired fetch cache entries")
	rootCmd.AddCommand(resultsCmd)
}

func listResults(ctx context.Context, st store.Store, w io.Writer, format output.Format) error {
	if resultsFlags.prune {
		n, err := st.DeleteExpiredFetches(ctx)
		if err != nil {
			return err
		}
		zap.L().Info("pruned fetch cache", zap.Int("deleted", n))
	}

	if resultsFlags.entity != "" {
		r, err := st.GetResult(ctx, resultsFlags.entity)
		if err != nil {
			return err
		}
		return output.Write(w, []model.OutputRecord{r.Record}, format)
	}

	stored, err := st.ListResults(ctx, store.ResultFilter{
		RunID:  resultsFlags.runID,
		Status: model.Status(strings.ToUpper(resultsFlags.status)),
		Limit:  resultsFlags.limit,
		Offset: resultsFlags.offset,
	})
	if err != nil {
		return err
	}

	records := make([]model.OutputRecord, 0, len(stored))
	for _, r := range stored {
		records = append(records, r.Record)
	}
	return output.Write(w, records, format)
}
