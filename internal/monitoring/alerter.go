// Package monitoring raises webhook alerts when a verification run looks
// unhealthy.
package monitoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/social-verify/internal/config"
	"github.com/sells-group/social-verify/internal/verify"
)

// AlertType identifies the kind of alert.
type AlertType string

const (
	AlertEntityFailureRate AlertType = "entity_failure_rate"
	AlertFetchCoverage     AlertType = "fetch_coverage"
)

// minSample is the smallest population worth alerting on.
const minSample = 5

// Alert represents a single alert to be sent.
type Alert struct {
	Type      AlertType      `json:"type"`
	Severity  string         `json:"severity"`
	RunID     string         `json:"run_id,omitempty"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// RunSnapshot holds the health counters of one batch run.
type RunSnapshot struct {
	RunID         string
	Entities      int
	Failed        int
	Links         int
	LinksAnalyzed int
}

// FailureRate is the share of entities that could not be verified.
func (s RunSnapshot) FailureRate() float64 {
	total := s.Entities + s.Failed
	if total == 0 {
		return 0
	}
	return float64(s.Failed) / float64(total)
}

// AnalyzedRatio is the share of candidate links that had usable text.
func (s RunSnapshot) AnalyzedRatio() float64 {
	if s.Links == 0 {
		return 1
	}
	return float64(s.LinksAnalyzed) / float64(s.Links)
}

// Snapshot summarizes a batch report.
func Snapshot(runID string, report *verify.BatchReport) RunSnapshot {
	snap := RunSnapshot{
		RunID:    runID,
		Entities: report.Summary.Entities,
		Failed:   report.Summary.Failed,
	}
	for _, res := range report.Results {
		for _, lv := range res.Links {
			snap.Links++
			if lv.Analyzed {
				snap.LinksAnalyzed++
			}
		}
	}
	return snap
}

// Alerter evaluates a RunSnapshot against configured thresholds
// and sends alerts via webhook when thresholds are breached.
type Alerter struct {
	cfg    config.MonitoringConfig
	client *http.Client
}

// NewAlerter creates a new Alerter with the given monitoring config.
func NewAlerter(cfg config.MonitoringConfig) *Alerter {
	return &Alerter{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Evaluate checks the snapshot against thresholds and returns any alerts.
func (a *Alerter) Evaluate(snap RunSnapshot) []Alert {
	var alerts []Alert
	now := time.Now().UTC()

	finished := snap.Entities + snap.Failed
	if a.cfg.FailureRateThreshold > 0 && finished >= minSample && snap.FailureRate() > a.cfg.FailureRateThreshold {
		alerts = append(alerts, Alert{
			Type:     AlertEntityFailureRate,
			Severity: "high",
			RunID:    snap.RunID,
			Message: fmt.Sprintf(
				"Entity failure rate %.1f%% exceeds threshold %.1f%% (%d failed / %d finished)",
				snap.FailureRate()*100, a.cfg.FailureRateThreshold*100, snap.Failed, finished,
			),
			Details: map[string]any{
				"failure_rate": snap.FailureRate(),
				"threshold":    a.cfg.FailureRateThreshold,
				"failed":       snap.Failed,
				"finished":     finished,
			},
			Timestamp: now,
		})
	}

	if a.cfg.MinAnalyzedRatio > 0 && snap.Links >= minSample && snap.AnalyzedRatio() < a.cfg.MinAnalyzedRatio {
		alerts = append(alerts, Alert{
			Type:     AlertFetchCoverage,
			Severity: "medium",
			RunID:    snap.RunID,
			Message: fmt.Sprintf(
				"Only %.1f%% of candidate links had page text (minimum %.1f%%, %d of %d)",
				snap.AnalyzedRatio()*100, a.cfg.MinAnalyzedRatio*100, snap.LinksAnalyzed, snap.Links,
			),
			Details: map[string]any{
				"analyzed_ratio": snap.AnalyzedRatio(),
				"minimum":        a.cfg.MinAnalyzedRatio,
				"links":          snap.Links,
				"analyzed":       snap.LinksAnalyzed,
			},
			Timestamp: now,
		})
	}

	return alerts
}

// SendAlerts delivers alerts to the configured webhook URL.
// Returns the number of alerts successfully sent.
func (a *Alerter) SendAlerts(ctx context.Context, alerts []Alert) int {
	if a.cfg.WebhookURL == "" || len(alerts) == 0 {
		return 0
	}

	sent := 0
	for _, alert := range alerts {
		if err := a.sendWebhook(ctx, alert); err != nil {
			zap.L().Error("monitoring: failed to send alert",
				zap.String("type", string(alert.Type)),
				zap.Error(err),
			)
			continue
		}
		zap.L().Info("monitoring: alert sent",
			zap.String("type", string(alert.Type)),
			zap.String("severity", alert.Severity),
		)
		sent++
	}
	return sent
}

func (a *Alerter) sendWebhook(ctx context.Context, alert Alert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return eris.Wrap(err, "monitoring: marshal alert")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.WebhookURL, bytes.NewReader(payload))
	if err != nil {
		return eris.Wrap(err, "monitoring: create webhook request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return eris.Wrap(err, "monitoring: webhook request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= 400 {
		return eris.Errorf("monitoring: webhook returned status %d", resp.StatusCode)
	}
	return nil
}
