// Package verify scores candidate social links against business records
// and classifies each entity's verification status.
package verify

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/social-verify/internal/config"
)

// DefaultConfig returns a config.VerifyConfig with the calibrated defaults.
func DefaultConfig() config.VerifyConfig {
	return config.VerifyConfig{
		// Address is the strongest discriminator, phone next.
		NameWeight:    1.0,
		AddressWeight: 3.0,
		PhoneWeight:   2.0,

		LinkVerifiedThreshold: 0.6,
		LikelyThreshold:       0.4,
		ScoreFloor:            0.1,

		NameReportThreshold:    0.6,
		AddressReportThreshold: 0.4,
	}
}

// WeightSum returns the sum of the signal weights.
func WeightSum(c config.VerifyConfig) float64 {
	return c.NameWeight + c.AddressWeight + c.PhoneWeight
}

// ValidateConfig checks that a VerifyConfig is internally consistent.
func ValidateConfig(c config.VerifyConfig) error {
	var errs []string

	weights := []struct {
		name  string
		value float64
	}{
		{"name_weight", c.NameWeight},
		{"address_weight", c.AddressWeight},
		{"phone_weight", c.PhoneWeight},
	}
	for _, w := range weights {
		if w.value < 0 {
			errs = append(errs, fmt.Sprintf("%s must be >= 0", w.name))
		}
	}
	if WeightSum(c) <= 0 {
		errs = append(errs, "weights must sum to a positive number")
	}

	unit := []struct {
		name  string
		value float64
	}{
		{"link_verified_threshold", c.LinkVerifiedThreshold},
		{"likely_threshold", c.LikelyThreshold},
		{"score_floor", c.ScoreFloor},
		{"name_report_threshold", c.NameReportThreshold},
		{"address_report_threshold", c.AddressReportThreshold},
	}
	for _, u := range unit {
		if u.value < 0 || u.value > 1 {
			errs = append(errs, fmt.Sprintf("%s must be within [0, 1]", u.name))
		}
	}

	if c.LikelyThreshold > c.LinkVerifiedThreshold {
		errs = append(errs, "likely_threshold must be <= link_verified_threshold")
	}

	if len(errs) > 0 {
		return eris.Errorf("verify: invalid config: %s", strings.Join(errs, "; "))
	}
	return nil
}
