package verify

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/social-verify/internal/model"
	"github.com/sells-group/social-verify/internal/resilience"
)

// PrepareFunc fills candidate link content for a record before scoring,
// typically by running the fetch stage. It must return a copy.
type PrepareFunc func(ctx context.Context, rec model.BusinessRecord) (model.BusinessRecord, error)

// ResultFunc observes each verified entity as soon as it completes.
// It may be called concurrently.
type ResultFunc func(ctx context.Context, index int, res model.VerificationResult)

// BatchOptions configures RunBatch.
type BatchOptions struct {
	Concurrency int
	Prepare     PrepareFunc
	OnResult    ResultFunc
}

// Failure records an entity that could not be verified.
type Failure struct {
	Index     int    `json:"index"`
	EntityID  string `json:"entity_id"`
	Error     string `json:"error"`
	// ErrorType is "transient" or "permanent".
	ErrorType string `json:"error_type"`
}

// BatchReport holds the results of a batch run in input order.
type BatchReport struct {
	Results  []model.VerificationResult
	Failures []Failure
	Summary  model.RunSummary
}

// RunBatch verifies records concurrently. Results keep the input order.
// A panic or prepare error on one entity is recorded as a Failure and the
// rest of the batch continues. Cancelling ctx stops scheduling new entities
// and returns the partial report with the context error.
func (v *Verifier) RunBatch(ctx context.Context, records []model.BusinessRecord, opts BatchOptions) (*BatchReport, error) {
	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	zap.L().Info("processing batch",
		zap.Int("entities", len(records)),
		zap.Int("concurrency", concurrency),
	)

	results := make([]*model.VerificationResult, len(records))
	failures := make([]*Failure, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var succeeded, failed atomic.Int64

	for i, rec := range records {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			log := zap.L().With(zap.String("entity_id", rec.ID))

			res, err := v.verifyOne(gctx, rec, opts.Prepare)
			if err != nil {
				failed.Add(1)
				failures[i] = &Failure{
					Index:     i,
					EntityID:  rec.ID,
					Error:     err.Error(),
					ErrorType: resilience.ClassifyError(err),
				}
				log.Error("verification failed", zap.Error(err))
				return nil // don't abort batch on individual failure
			}

			succeeded.Add(1)
			results[i] = &res
			log.Debug("verification complete",
				zap.String("status", string(res.Status)),
				zap.Float64("best_score", res.BestOverallScore),
			)
			if opts.OnResult != nil {
				opts.OnResult(gctx, i, res)
			}
			return nil
		})
	}

	// Workers never return errors.
	_ = g.Wait()

	report := &BatchReport{}
	for i := range records {
		switch {
		case results[i] != nil:
			report.Results = append(report.Results, *results[i])
			report.Summary.Add(results[i].Status)
		case failures[i] != nil:
			report.Failures = append(report.Failures, *failures[i])
			report.Summary.Failed++
		}
	}

	zap.L().Info("batch complete",
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", failed.Load()),
		zap.Int("verified", report.Summary.Verified),
		zap.Int("likely_correct", report.Summary.LikelyCorrect),
		zap.Int("unverified", report.Summary.Unverified),
	)

	return report, ctx.Err()
}

func (v *Verifier) verifyOne(ctx context.Context, rec model.BusinessRecord, prepare PrepareFunc) (res model.VerificationResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = eris.New(fmt.Sprintf("verify: panic on entity %s: %v", rec.ID, r))
		}
	}()

	if prepare != nil {
		prepared, perr := prepare(ctx, rec)
		if perr != nil {
			return model.VerificationResult{}, eris.Wrapf(perr, "verify: prepare entity %s", rec.ID)
		}
		rec = prepared
	}
	return v.Verify(rec), nil
}
