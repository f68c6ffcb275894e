package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/omnihealth/guardian/internal/domain/patient"
	"github.com/omnihealth/guardian/internal/domain/telemetry"
)

// trendShift is the average change that flips a glucose trend from stable
// to rising or falling.
const trendShift = 20.0

const maxCoachingTips = 4

// Coaching tip lists by condition family.
var (
	diabetesTips = []string{
		"💡 Stay hydrated - drink 8 glasses of water daily",
		"🚶 Try to walk for 15 minutes after each meal",
		"📝 Log your meals to track carbohydrate intake",
		"⏰ Take medications at the same time daily",
	}
	heartTips = []string{
		"🧘 Practice stress-reduction techniques",
		"🚭 Avoid smoking and secondhand smoke",
		"🧂 Limit sodium to less than 2,300mg daily",
		"💤 Aim for 7-8 hours of quality sleep",
	}
)

// TrendWindow compares the recent average against the older one.
type TrendWindow struct {
	CurrentAvg  float64 `json:"current_avg"`
	PreviousAvg float64 `json:"previous_avg,omitempty"`
	Change      float64 `json:"change,omitempty"`
	Variability float64 `json:"variability,omitempty"`
}

// Trend summarizes the direction of a patient's recent vitals.
type Trend struct {
	Status           string       `json:"status"`
	Direction        string       `json:"direction,omitempty"`
	Message          string       `json:"message,omitempty"`
	ReadingsAnalyzed int          `json:"readings_analyzed,omitempty"`
	Glucose          *TrendWindow `json:"glucose,omitempty"`
	HeartRate        *TrendWindow `json:"heart_rate,omitempty"`
}

// Feedback is the realtime_feedback skill response.
type Feedback struct {
	PatientID     string             `json:"patient_id"`
	PatientName   string             `json:"patient_name"`
	CurrentVitals *telemetry.Reading `json:"current_vitals"`
	TrendAnalysis *Trend             `json:"trend_analysis"`
	Feedback      []string           `json:"feedback"`
	CoachingTips  []string           `json:"coaching_tips"`
	Timestamp     time.Time          `json:"timestamp"`
}

// RealtimeFeedback is the realtime_feedback skill: analyze the trend over
// the latest readings and coach the patient on the current values.
func (s *Skills) RealtimeFeedback(ctx context.Context, patientID string) (*Outcome, error) {
	p, err := s.patients.Get(ctx, patientID)
	if err != nil {
		return nil, err
	}
	readings, err := s.readings.ListByPatient(ctx, patientID, recentWindow)
	if err != nil {
		return nil, err
	}
	if len(readings) == 0 {
		return &Outcome{Result: &Trend{
			Status:  "insufficient_data",
			Message: "Not enough readings for trend analysis",
		}}, nil
	}

	current := readings[0]
	trend := analyzeTrend(readings, p)

	fb := &Feedback{
		PatientID:     p.ID,
		PatientName:   p.Name,
		CurrentVitals: current,
		TrendAnalysis: trend,
		Feedback:      feedbackMessages(current, trend),
		CoachingTips:  coachingTips(p.IsDiabetic()),
		Timestamp:     time.Now().UTC(),
	}
	return &Outcome{Result: fb}, nil
}

// analyzeTrend compares the recent five readings against the five before
// them. Readings arrive newest first.
func analyzeTrend(readings []*telemetry.Reading, p *patient.Patient) *Trend {
	trend := &Trend{
		Status:           "stable",
		Direction:        "flat",
		ReadingsAnalyzed: len(readings),
	}

	if p.IsDiabetic() {
		var values []float64
		for _, r := range readings {
			if r.GlucoseLevel != nil {
				values = append(values, *r.GlucoseLevel)
			}
		}
		if len(values) < 3 {
			return trend
		}
		recent := avgFloat(values[:min(5, len(values))])
		older := recent
		if len(values) > 5 {
			older = avgFloat(values[5:min(10, len(values))])
		}
		trend.Glucose = &TrendWindow{
			CurrentAvg:  round1(recent),
			PreviousAvg: round1(older),
			Change:      round1(recent - older),
		}
		switch {
		case recent > older+trendShift:
			trend.Direction = "rising"
			trend.Status = "concerning"
		case recent < older-trendShift:
			trend.Direction = "falling"
			if recent > 100 {
				trend.Status = "improving"
			} else {
				trend.Status = "concerning"
			}
		}
		return trend
	}

	if p.Condition == patient.ConditionHeart {
		var values []float64
		for _, r := range readings {
			if r.HeartRate != nil {
				values = append(values, float64(*r.HeartRate))
			}
		}
		if len(values) < 3 {
			return trend
		}
		recent := avgFloat(values[:min(5, len(values))])
		minV, maxV := values[0], values[0]
		for _, v := range values {
			if v < minV {
				minV = v
			}
			if v > maxV {
				maxV = v
			}
		}
		trend.HeartRate = &TrendWindow{
			CurrentAvg:  round1(recent),
			Variability: round1(maxV - minV),
		}
		if recent > 100 {
			trend.Status = "elevated"
		} else if recent < 60 {
			trend.Status = "low"
		}
	}
	return trend
}

func feedbackMessages(r *telemetry.Reading, trend *Trend) []string {
	msgs := []string{}

	if r.GlucoseLevel != nil {
		g := *r.GlucoseLevel
		switch {
		case g < 70:
			msgs = append(msgs, "🚨 Your glucose is low! Have a fast-acting carb snack immediately (15g glucose tablets or 4 oz juice).")
		case g > 180:
			msgs = append(msgs, "📈 Your glucose is elevated. Consider a short walk or check if you missed medication.")
		case g <= 140:
			msgs = append(msgs, "✅ Your glucose is in a healthy range. Great job!")
		}
	}

	if r.HeartRate != nil {
		hr := *r.HeartRate
		switch {
		case hr > 100:
			msgs = append(msgs, "💓 Your heart rate is elevated. Try deep breathing exercises and sit down if standing.")
		case hr < 50:
			msgs = append(msgs, "⚠️ Your heart rate is low. If you feel dizzy, contact your doctor immediately.")
		default:
			msgs = append(msgs, "✅ Your heart rate is normal.")
		}
	}

	if r.BatteryLevel < 20 {
		msgs = append(msgs, fmt.Sprintf("🔋 Device battery at %d%%. Please charge your device soon.", r.BatteryLevel))
	}

	if trend.Status == "concerning" {
		msgs = append(msgs, "📊 Your recent trend shows changes. Review with your healthcare provider.")
	}
	return msgs
}

func coachingTips(diabetic bool) []string {
	tips := heartTips
	if diabetic {
		tips = diabetesTips
	}
	if len(tips) > maxCoachingTips {
		tips = tips[:maxCoachingTips]
	}
	return tips
}
