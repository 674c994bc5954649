package verify

import (
	"fmt"
	"math"
	"strings"

	"github.com/sells-group/social-verify/internal/config"
	"github.com/sells-group/social-verify/internal/match"
	"github.com/sells-group/social-verify/internal/model"
)

const (
	detailsNotAnalyzed = "not analyzed"
	detailsNoMatch     = "no strong match"
)

// Signal labels reported in SignalScore.MatchedLabels.
const (
	LabelName    = "name"
	LabelAddress = "address"
	LabelPhone   = "phone"
)

// Signals computes the raw name, address and phone sub-scores for one link.
// The returned scores are unfloored and the overall score is left unset.
func Signals(rec model.BusinessRecord, link model.CandidateLink) model.SignalScore {
	text := link.Text()

	nameScore := match.FoldedPartialRatio(rec.Name, text)

	addrText := match.FoldedPartialRatio(rec.Address, text)
	addrName := match.AddressInName(link.Name(), rec.Address)

	s := model.SignalScore{
		NameScore:  nameScore,
		PhoneMatch: match.MatchesAny(rec.Phone, match.ExtractPhones(text)),
	}
	switch {
	case addrName > addrText:
		s.AddressScore = addrName
		s.AddressSource = model.AddressSourceName
	case addrText > 0:
		s.AddressScore = addrText
		s.AddressSource = model.AddressSourceText
	}
	return s
}

// Aggregate fuses the sub-scores into one weighted mean in [0, 1].
// Name and address are floored at cfg.ScoreFloor before weighting.
func Aggregate(s model.SignalScore, cfg config.VerifyConfig) float64 {
	total := WeightSum(cfg)
	if total <= 0 {
		return 0
	}

	name := math.Max(s.NameScore, cfg.ScoreFloor)
	addr := math.Max(s.AddressScore, cfg.ScoreFloor)
	phone := 0.0
	if s.PhoneMatch {
		phone = 1.0
	}

	overall := (name*cfg.NameWeight + addr*cfg.AddressWeight + phone*cfg.PhoneWeight) / total
	return clamp01(overall)
}

// MatchedLabels lists the signals that cleared their reporting thresholds.
func MatchedLabels(s model.SignalScore, cfg config.VerifyConfig) []string {
	var labels []string
	if s.NameScore >= cfg.NameReportThreshold {
		labels = append(labels, LabelName)
	}
	if s.AddressScore >= cfg.AddressReportThreshold {
		labels = append(labels, LabelAddress)
	}
	if s.PhoneMatch {
		labels = append(labels, LabelPhone)
	}
	return labels
}

// Details renders the human-readable summary for a scored link, e.g.
// "name (0.93) | address (0.81 - text) | phone".
func Details(s model.SignalScore, cfg config.VerifyConfig) string {
	var parts []string
	if s.NameScore >= cfg.NameReportThreshold {
		parts = append(parts, fmt.Sprintf("name (%.2f)", s.NameScore))
	}
	if s.AddressScore >= cfg.AddressReportThreshold {
		parts = append(parts, fmt.Sprintf("address (%.2f - %s)", s.AddressScore, s.AddressSource))
	}
	if s.PhoneMatch {
		parts = append(parts, LabelPhone)
	}
	if len(parts) == 0 {
		return detailsNoMatch
	}
	return strings.Join(parts, " | ")
}

// ScoreLink scores one candidate link against the record. A link without
// usable text is not analyzed: every score is zero and it is never verified.
func ScoreLink(rec model.BusinessRecord, link model.CandidateLink, cfg config.VerifyConfig) model.LinkVerification {
	if !link.HasText() {
		return model.LinkVerification{
			Link:    link,
			Details: detailsNotAnalyzed,
		}
	}

	s := Signals(rec, link)
	s.OverallScore = Aggregate(s, cfg)
	s.MatchedLabels = MatchedLabels(s, cfg)

	return model.LinkVerification{
		Link:     link,
		Score:    s,
		Verified: s.OverallScore >= cfg.LinkVerifiedThreshold,
		Analyzed: true,
		Details:  Details(s, cfg),
	}
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
