package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/social-verify/internal/config"
	"github.com/sells-group/social-verify/internal/fetch"
	"github.com/sells-group/social-verify/internal/model"
	"github.com/sells-group/social-verify/internal/monitoring"
	"github.com/sells-group/social-verify/internal/store"
	"github.com/sells-group/social-verify/internal/verify"
)

// verifyEnv holds the collaborators shared by the commands. Store, Fetcher
// and Alerter may be nil.
type verifyEnv struct {
	Store    store.Store
	Fetcher  fetch.TextAndNameFetcher
	Verifier *verify.Verifier
	Alerter  *monitoring.Alerter
}

// initEnv validates c for mode and builds the verifier, the optional store
// and, outside results mode, the configured fetcher.
func initEnv(ctx context.Context, c *config.Config, mode string, withStore bool) (*verifyEnv, error) {
	if err := c.Validate(mode); err != nil {
		return nil, err
	}

	v, err := verify.New(c.Verify)
	if err != nil {
		return nil, eris.Wrap(err, "init verifier")
	}
	env := &verifyEnv{Verifier: v}

	var cache fetch.Cache
	if withStore {
		st, err := store.Open(ctx, c.Store)
		if err != nil {
			return nil, eris.Wrap(err, "init store")
		}
		env.Store = st
		cache = st
	}

	if mode != "results" {
		f, err := fetch.New(c, cache)
		if err != nil {
			env.Close()
			return nil, eris.Wrap(err, "init fetcher")
		}
		env.Fetcher = f
		env.Alerter = monitoring.NewAlerter(c.Monitoring)
	}

	zap.L().Debug("environment ready",
		zap.String("mode", mode),
		zap.String("fetch_provider", c.Fetch.Provider),
		zap.Bool("store", env.Store != nil),
	)
	return env, nil
}

// prepare returns the batch prepare step, or nil when no fetcher is set.
func (e *verifyEnv) prepare() verify.PrepareFunc {
	if e.Fetcher == nil {
		return nil
	}
	return func(ctx context.Context, rec model.BusinessRecord) (model.BusinessRecord, error) {
		return fetch.Populate(ctx, e.Fetcher, rec)
	}
}

func (e *verifyEnv) Close() {
	if e.Store != nil {
		if err := e.Store.Close(); err != nil {
			zap.L().Warn("close store", zap.Error(err))
		}
	}
}
