package verify

import (
	"fmt"

	"github.com/sells-group/social-verify/internal/config"
	"github.com/sells-group/social-verify/internal/model"
)

// Entity status reasons.
const (
	ReasonNoEvidence  = "no evidence"
	ReasonProbable    = "probable match, not confirmed"
	ReasonBelowLikely = "best score below likely threshold"
)

// Decision is the entity-level outcome derived from its scored links.
type Decision struct {
	BestOverallScore float64
	BestLinkIndex    int
	Status           model.Status
	Reason           string
	VerifiedLinks    int
}

// Classify derives the entity status from its scored links. The best link is
// the first one, in input order, holding the maximum overall score.
func Classify(links []model.LinkVerification, cfg config.VerifyConfig) Decision {
	d := Decision{BestLinkIndex: -1}

	analyzed := 0
	for i, lv := range links {
		if !lv.Analyzed {
			continue
		}
		analyzed++
		if lv.Verified {
			d.VerifiedLinks++
		}
		if d.BestLinkIndex < 0 || lv.Score.OverallScore > d.BestOverallScore {
			d.BestOverallScore = lv.Score.OverallScore
			d.BestLinkIndex = i
		}
	}

	switch {
	case analyzed == 0:
		d = Decision{BestLinkIndex: -1, Status: model.StatusUnverified, Reason: ReasonNoEvidence}
	case d.VerifiedLinks > 0:
		d.Status = model.StatusVerified
		d.Reason = fmt.Sprintf("confirmed by %d verified link(s)", d.VerifiedLinks)
	case d.BestOverallScore >= cfg.LikelyThreshold:
		d.Status = model.StatusLikelyCorrect
		d.Reason = ReasonProbable
	default:
		d.Status = model.StatusUnverified
		d.Reason = ReasonBelowLikely
	}
	return d
}
