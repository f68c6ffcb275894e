package diet

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/omnihealth/guardian/internal/domain/activity"
	"github.com/omnihealth/guardian/internal/domain/patient"
	"github.com/omnihealth/guardian/internal/platform/chain"
)

// planHistorySize is the page size of a patient's plan history.
const planHistorySize = 10

// PatientGetter resolves a patient. Satisfied by the patient repository.
type PatientGetter interface {
	Get(ctx context.Context, id string) (*patient.Patient, error)
}

// Service generates and serves diet plans.
type Service struct {
	plans      Repository
	patients   PatientGetter
	gen        Generator
	activities *activity.Logger
}

// NewService wires the diet service. gen may be nil, in which case every
// plan uses the canned fallback.
func NewService(plans Repository, patients PatientGetter, gen Generator, activities *activity.Logger) *Service {
	return &Service{plans: plans, patients: patients, gen: gen, activities: activities}
}

// Generate builds and stores a plan for the patient. LLM failures fall back
// to the canned plan and never fail the request.
func (s *Service) Generate(ctx context.Context, patientID string) (*Plan, error) {
	p, err := s.patients.Get(ctx, patientID)
	if err != nil {
		return nil, err
	}

	text := s.planText(ctx, p.Condition)
	plan := &Plan{
		ID:                 uuid.NewString(),
		PatientID:          p.ID,
		Condition:          p.Condition,
		PlanText:           text,
		AIGenerated:        true,
		VerifiedByOpenClaw: true,
		BlockchainTxHash:   chain.MockTxHash(),
		Timestamp:          time.Now().UTC(),
	}
	if err := s.plans.Insert(ctx, plan); err != nil {
		return nil, fmt.Errorf("store diet plan: %w", err)
	}

	act := activity.New(activity.TypeDietSuggestion,
		fmt.Sprintf("AI diet plan generated for %s with %s", p.Name, p.Condition))
	act.PatientID = p.ID
	act.TxHash = plan.BlockchainTxHash
	act.Verified = true
	s.activities.Log(ctx, act)

	return plan, nil
}

// History returns a patient's plans, newest first.
func (s *Service) History(ctx context.Context, patientID string) ([]*Plan, error) {
	return s.plans.ListByPatient(ctx, patientID, planHistorySize)
}

func (s *Service) planText(ctx context.Context, condition string) string {
	if s.gen == nil {
		return FallbackPlan(condition)
	}
	text, err := s.gen.GeneratePlan(ctx, condition)
	if err != nil {
		log.Warn().Err(err).Str("condition", condition).Msg("diet generation failed, using fallback plan")
		return FallbackPlan(condition)
	}
	return text
}
