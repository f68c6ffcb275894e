package agent

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/omnihealth/guardian/internal/domain/activity"
	"github.com/omnihealth/guardian/internal/domain/alert"
	"github.com/omnihealth/guardian/internal/domain/diet"
	"github.com/omnihealth/guardian/internal/domain/hospital"
	"github.com/omnihealth/guardian/internal/domain/patient"
	"github.com/omnihealth/guardian/internal/domain/telemetry"
	"github.com/omnihealth/guardian/internal/platform/greenfield"
)

// Skill names.
const (
	SkillCriticalMonitor  = "critical_condition_monitor"
	SkillDietSuggestion   = "ai_diet_suggestion"
	SkillRealtimeFeedback = "realtime_feedback"
	SkillDailyProgress    = "daily_progress_tracker"
)

const skillVersion = "1.0.0"

// recentWindow is how many readings the diet and feedback skills look back
// over.
const recentWindow = 10

// PatientDirectory is the slice of the patient repository the skills use.
type PatientDirectory interface {
	Get(ctx context.Context, id string) (*patient.Patient, error)
	List(ctx context.Context, limit int64) ([]*patient.Patient, error)
}

// ReadingHistory reads stored device readings.
type ReadingHistory interface {
	ListByPatient(ctx context.Context, patientID string, limit int64) ([]*telemetry.Reading, error)
	ListSince(ctx context.Context, patientID string, since time.Time) ([]*telemetry.Reading, error)
}

// AlertStore writes and reads critical alerts.
type AlertStore interface {
	Insert(ctx context.Context, a *alert.Alert) error
	ListSince(ctx context.Context, patientID string, since time.Time) ([]*alert.Alert, error)
}

// HospitalLocator finds the emergency-response hospital.
type HospitalLocator interface {
	Nearest(ctx context.Context, hospitalID string) (*hospital.NearestHospital, error)
}

// PlanStore writes diet plans.
type PlanStore interface {
	Insert(ctx context.Context, p *diet.Plan) error
}

// SkillDeps collects everything the guardian skills touch. Archive may be
// nil when no Greenfield backend is configured.
type SkillDeps struct {
	Patients   PatientDirectory
	Readings   ReadingHistory
	Alerts     AlertStore
	Hospitals  HospitalLocator
	Plans      PlanStore
	Progress   ProgressRepository
	Archive    greenfield.Store
	Activities *activity.Logger
}

// Skills implements the four guardian skills.
type Skills struct {
	patients   PatientDirectory
	readings   ReadingHistory
	alerts     AlertStore
	hospitals  HospitalLocator
	plans      PlanStore
	progress   ProgressRepository
	archive    greenfield.Store
	activities *activity.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSkills wires the skill set.
func NewSkills(deps SkillDeps) *Skills {
	return &Skills{
		patients:   deps.Patients,
		readings:   deps.Readings,
		alerts:     deps.Alerts,
		hospitals:  deps.Hospitals,
		plans:      deps.Plans,
		progress:   deps.Progress,
		archive:    deps.Archive,
		activities: deps.Activities,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// DefaultConfigs returns the guardian skill set in canonical order.
func DefaultConfigs() []Config {
	return []Config{
		{
			Name:            SkillCriticalMonitor,
			Description:     "Monitors patient vitals for critical conditions. Triggers blockchain verification and hospital notification when thresholds exceeded.",
			Version:         skillVersion,
			Author:          SkillAuthor,
			Emoji:           "🚨",
			IntervalSeconds: 5,
			Triggers:        []string{"vital_reading", "cron:5s"},
			Actions:         []string{"record_alert", "notify_hospital", "hash_on_chain"},
			Priority:        PriorityCritical,
			Enabled:         true,
		},
		{
			Name:            SkillDietSuggestion,
			Description:     "Generates personalized AI diet plans based on patient condition and recent vitals. Verified by OpenClaw.",
			Version:         skillVersion,
			Author:          SkillAuthor,
			Emoji:           "🥗",
			IntervalSeconds: 3600,
			Triggers:        []string{"meal_time", "manual", "cron:1h"},
			Actions:         []string{"generate_diet", "verify_openclaw"},
			Priority:        PriorityNormal,
			Enabled:         true,
		},
		{
			Name:            SkillRealtimeFeedback,
			Description:     "Provides real-time feedback and coaching based on current vitals and trends.",
			Version:         skillVersion,
			Author:          SkillAuthor,
			Emoji:           "💬",
			IntervalSeconds: 30,
			Triggers:        []string{"vital_reading", "cron:30s"},
			Actions:         []string{"analyze_trend", "generate_feedback"},
			Priority:        PriorityHigh,
			Enabled:         true,
		},
		{
			Name:            SkillDailyProgress,
			Description:     "Tracks daily health progress, aggregates metrics, and generates daily health reports.",
			Version:         skillVersion,
			Author:          SkillAuthor,
			Emoji:           "📊",
			IntervalSeconds: 86400,
			Triggers:        []string{"end_of_day", "manual", "cron:24h"},
			Actions:         []string{"aggregate_metrics", "calculate_scores", "generate_report"},
			Priority:        PriorityNormal,
			Enabled:         true,
		},
	}
}

// NewDefaultGateway builds a gateway with all four guardian skills
// registered against the given skill set.
func NewDefaultGateway(skills *Skills, activities *activity.Logger) *Gateway {
	handlers := map[string]HandlerFunc{
		SkillCriticalMonitor:  skills.MonitorCritical,
		SkillDietSuggestion:   skills.SuggestDiet,
		SkillRealtimeFeedback: skills.RealtimeFeedback,
		SkillDailyProgress:    skills.TrackDailyProgress,
	}
	gw := NewGateway(activities)
	for _, cfg := range DefaultConfigs() {
		gw.Register(cfg, handlers[cfg.Name])
	}
	return gw
}

func (s *Skills) randInt(min, max int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return min + s.rng.Intn(max-min+1)
}

func (s *Skills) randFloat(min, max float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return min + s.rng.Float64()*(max-min)
}

func avgFloat(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
