package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/omnihealth/guardian/internal/domain/activity"
	"github.com/omnihealth/guardian/internal/domain/diet"
	"github.com/omnihealth/guardian/internal/platform/chain"
	"github.com/omnihealth/guardian/internal/platform/greenfield"
)

// Glucose cutoffs for the personalization note.
const (
	dietGlucoseHigh = 180.0
	dietGlucoseLow  = 80.0
)

// Personalization notes appended to the condition plan.
const (
	noteElevated       = "⚠️ Your recent glucose levels are elevated. Consider reducing carb portions by 20% and increasing protein intake."
	noteLow            = "⚠️ Your recent glucose levels are low. Include a small snack between meals to stabilize blood sugar."
	noteWellControlled = "✅ Your glucose levels are well-controlled. Continue with this meal plan."
)

// SuggestDiet is the ai_diet_suggestion skill: the condition meal plan plus
// a personalization note from the patient's recent glucose average.
func (s *Skills) SuggestDiet(ctx context.Context, patientID string) (*Outcome, error) {
	p, err := s.patients.Get(ctx, patientID)
	if err != nil {
		return nil, err
	}
	readings, err := s.readings.ListByPatient(ctx, patientID, recentWindow)
	if err != nil {
		return nil, err
	}

	var avgGlucose *float64
	var glucose []float64
	for _, r := range readings {
		if r.GlucoseLevel != nil {
			glucose = append(glucose, *r.GlucoseLevel)
		}
	}
	if len(glucose) > 0 {
		avg := avgFloat(glucose)
		avgGlucose = &avg
	}

	planText := diet.FallbackPlan(p.Condition)
	if avgGlucose != nil && p.IsDiabetic() {
		planText += "\n\n" + personalizationNote(*avgGlucose)
	}

	txHash := chain.MockTxHash()
	plan := &diet.Plan{
		ID:                 uuid.NewString(),
		PatientID:          p.ID,
		Condition:          p.Condition,
		PlanText:           planText,
		AIGenerated:        true,
		VerifiedByOpenClaw: true,
		BlockchainTxHash:   txHash,
		Timestamp:          time.Now().UTC(),
	}
	if err := s.plans.Insert(ctx, plan); err != nil {
		return nil, fmt.Errorf("store diet plan: %w", err)
	}

	cid := ""
	if s.archive != nil {
		stored, err := s.archive.StoreRecord(ctx, greenfield.RecordDietPlan, p.ID, plan)
		if err != nil {
			log.Warn().Err(err).Str("patient_id", p.ID).Msg("failed to archive diet plan")
		} else {
			cid = stored.CID
		}
	}

	act := activity.New(activity.TypeDietSuggestion,
		fmt.Sprintf("AI diet plan generated for %s with %s", p.Name, p.Condition))
	act.PatientID = p.ID
	act.TxHash = txHash
	act.Verified = true
	s.activities.Log(ctx, act)

	return &Outcome{
		Result: map[string]interface{}{
			"patient_id":   p.ID,
			"patient_name": p.Name,
			"condition":    p.Condition,
			"plan":         plan,
			"personalization": map[string]interface{}{
				"avg_glucose":       avgGlucose,
				"readings_analyzed": len(readings),
			},
		},
		TxHash:        txHash,
		GreenfieldCID: cid,
	}, nil
}

func personalizationNote(avgGlucose float64) string {
	switch {
	case avgGlucose > dietGlucoseHigh:
		return noteElevated
	case avgGlucose < dietGlucoseLow:
		return noteLow
	default:
		return noteWellControlled
	}
}
