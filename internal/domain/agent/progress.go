package agent

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/omnihealth/guardian/internal/domain/activity"
	"github.com/omnihealth/guardian/internal/domain/alert"
	"github.com/omnihealth/guardian/internal/domain/telemetry"
	"github.com/omnihealth/guardian/internal/platform/greenfield"
)

// progressWindow is how far back the daily report looks.
const progressWindow = 24 * time.Hour

// Time-in-range band and health score weights.
const (
	tirLow        = 70.0
	tirHigh       = 180.0
	baseScore     = 70.0
	tirTarget     = 70.0
	tirAcceptable = 50.0
)

// TrackDailyProgress is the daily_progress_tracker skill: aggregate the
// last 24 hours of readings and alerts into a scored report, archive it,
// and log the analysis.
func (s *Skills) TrackDailyProgress(ctx context.Context, patientID string) (*Outcome, error) {
	p, err := s.patients.Get(ctx, patientID)
	if err != nil {
		return nil, err
	}
	since := time.Now().UTC().Add(-progressWindow)
	readings, err := s.readings.ListSince(ctx, patientID, since)
	if err != nil {
		return nil, err
	}
	alerts, err := s.alerts.ListSince(ctx, patientID, since)
	if err != nil {
		return nil, err
	}

	metrics := s.dailyMetrics(readings, alerts)
	score := healthScore(metrics)

	summaries := make([]AlertSummary, 0, len(alerts))
	for _, a := range alerts {
		summaries = append(summaries, AlertSummary{Type: a.AlertType, Severity: a.Severity})
	}

	now := time.Now().UTC()
	report := &Progress{
		ID:              uuid.NewString(),
		PatientID:       p.ID,
		PatientName:     p.Name,
		Condition:       p.Condition,
		Date:            now.Format("2006-01-02"),
		Metrics:         metrics,
		HealthScore:     score,
		Recommendations: recommendations(metrics, score),
		AlertsSummary:   summaries,
		Timestamp:       now,
	}

	if s.archive != nil {
		stored, err := s.archive.StoreRecord(ctx, greenfield.RecordDailyProgress, p.ID, report)
		if err != nil {
			log.Warn().Err(err).Str("patient_id", p.ID).Msg("failed to archive daily progress")
		} else {
			report.GreenfieldCID = stored.CID
		}
	}
	if err := s.progress.Insert(ctx, report); err != nil {
		return nil, fmt.Errorf("store daily progress: %w", err)
	}

	act := activity.New(activity.TypeDailyAnalysis,
		fmt.Sprintf("Daily progress report generated for %s (%s)", p.Name, report.Date))
	act.PatientID = p.ID
	act.Verified = true
	s.activities.Log(ctx, act)

	return &Outcome{Result: report, GreenfieldCID: report.GreenfieldCID}, nil
}

// dailyMetrics folds a day of readings into aggregates. Diet compliance and
// activity score are synthetic; no tracker integration exists.
func (s *Skills) dailyMetrics(readings []*telemetry.Reading, alerts []*alert.Alert) Metrics {
	m := Metrics{
		TotalReadings:  len(readings),
		CriticalEvents: len(alerts),
		DietCompliance: round1(s.randFloat(50, 100)),
		ActivityScore:  round1(s.randFloat(50, 100)),
	}

	var glucose []float64
	var heart []int
	for _, r := range readings {
		if r.GlucoseLevel != nil {
			glucose = append(glucose, *r.GlucoseLevel)
		}
		if r.HeartRate != nil {
			heart = append(heart, *r.HeartRate)
		}
	}

	if len(glucose) > 0 {
		minG, maxG := glucose[0], glucose[0]
		inRange := 0
		for _, g := range glucose {
			if g < minG {
				minG = g
			}
			if g > maxG {
				maxG = g
			}
			if g >= tirLow && g <= tirHigh {
				inRange++
			}
		}
		avg := round1(avgFloat(glucose))
		tir := round1(float64(inRange) / float64(len(glucose)) * 100)
		m.AvgGlucose = &avg
		m.MinGlucose = &minG
		m.MaxGlucose = &maxG
		m.TimeInRange = &tir
	}

	if len(heart) > 0 {
		sum := 0
		minH, maxH := heart[0], heart[0]
		for _, h := range heart {
			sum += h
			if h < minH {
				minH = h
			}
			if h > maxH {
				maxH = h
			}
		}
		avg := round1(float64(sum) / float64(len(heart)))
		m.AvgHeartRate = &avg
		m.MinHeartRate = &minH
		m.MaxHeartRate = &maxH
	}
	return m
}

// healthScore folds the day's metrics into a 0..100 score.
func healthScore(m Metrics) float64 {
	score := baseScore
	if m.TimeInRange != nil {
		switch {
		case *m.TimeInRange >= tirTarget:
			score += 15
		case *m.TimeInRange >= tirAcceptable:
			score += 5
		default:
			score -= 10
		}
	}
	score -= float64(m.CriticalEvents) * 5
	score += (m.DietCompliance - 70) * 0.2
	score += (m.ActivityScore - 50) * 0.1
	return round1(math.Max(0, math.Min(100, score)))
}

func recommendations(m Metrics, score float64) []string {
	recs := []string{}
	switch {
	case score >= 80:
		recs = append(recs, "🌟 Excellent day! Keep up the great work with your health management.")
	case score >= 60:
		recs = append(recs, "👍 Good day overall. A few areas could use attention.")
	default:
		recs = append(recs, "⚠️ Today had some challenges. Let's focus on improvement tomorrow.")
	}
	if m.TimeInRange != nil && *m.TimeInRange < tirTarget {
		recs = append(recs, "📊 Your time in glucose range was below target. Review meal timing and portions.")
	}
	if m.CriticalEvents > 0 {
		recs = append(recs, "🏥 You had critical events today. Discuss with your healthcare provider.")
	}
	if m.DietCompliance < 70 {
		recs = append(recs, "🥗 Diet compliance could improve. Try meal prepping for better control.")
	}
	if m.ActivityScore < 50 {
		recs = append(recs, "🚶 Activity was low today. Aim for a 20-minute walk tomorrow.")
	}
	return recs
}
