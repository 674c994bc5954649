package verify

import (
	"github.com/sells-group/social-verify/internal/config"
	"github.com/sells-group/social-verify/internal/model"
)

// Verifier scores business records with a fixed configuration. It holds no
// mutable state and is safe for concurrent use.
type Verifier struct {
	cfg config.VerifyConfig
}

// New validates cfg and returns a Verifier.
func New(cfg config.VerifyConfig) (*Verifier, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return &Verifier{cfg: cfg}, nil
}

// Config returns the verifier's configuration.
func (v *Verifier) Config() config.VerifyConfig {
	return v.cfg
}

// ScoreLink scores a single candidate link against rec.
func (v *Verifier) ScoreLink(rec model.BusinessRecord, link model.CandidateLink) model.LinkVerification {
	return ScoreLink(rec, link, v.cfg)
}

// Verify scores every candidate link of rec, preserving link order, and
// classifies the entity.
func (v *Verifier) Verify(rec model.BusinessRecord) model.VerificationResult {
	links := make([]model.LinkVerification, 0, len(rec.Links))
	for _, l := range rec.Links {
		links = append(links, ScoreLink(rec, l, v.cfg))
	}

	d := Classify(links, v.cfg)
	return model.VerificationResult{
		Record:           rec,
		Links:            links,
		BestOverallScore: d.BestOverallScore,
		BestLinkIndex:    d.BestLinkIndex,
		Status:           d.Status,
		Reason:           d.Reason,
	}
}
