package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/omnihealth/guardian/internal/domain/activity"
	"github.com/omnihealth/guardian/internal/domain/diet"
	"github.com/omnihealth/guardian/internal/domain/patient"
	"github.com/omnihealth/guardian/internal/domain/telemetry"
)

func TestPersonalizationNote(t *testing.T) {
	tests := []struct {
		avg  float64
		want string
	}{
		{220, noteElevated},
		{75, noteLow},
		{120, noteWellControlled},
		{180, noteWellControlled},
		{80, noteWellControlled},
	}
	for _, tt := range tests {
		if got := personalizationNote(tt.avg); got != tt.want {
			t.Errorf("avg %.0f: unexpected note %q", tt.avg, got)
		}
	}
}

func TestSuggestDiet_ElevatedGlucose(t *testing.T) {
	f := newSkillFixture()
	f.addPatient(diabeticPatient())
	f.addReading(&telemetry.Reading{ID: "r1", PatientID: "p1", GlucoseLevel: floatPtr(200), BatteryLevel: 85})
	f.addReading(&telemetry.Reading{ID: "r2", PatientID: "p1", GlucoseLevel: floatPtr(210), BatteryLevel: 85})

	out, err := f.skills.SuggestDiet(context.Background(), "p1")
	if err != nil {
		t.Fatalf("SuggestDiet failed: %v", err)
	}

	if len(f.plans.plans) != 1 {
		t.Fatalf("expected 1 stored plan, got %d", len(f.plans.plans))
	}
	plan := f.plans.plans[0]
	if !plan.AIGenerated || !plan.VerifiedByOpenClaw {
		t.Errorf("plan missing verification flags: %+v", plan)
	}
	if !strings.HasPrefix(plan.PlanText, diet.FallbackPlan(patient.ConditionDiabetesType1)) {
		t.Error("plan should start with the condition meal plan")
	}
	if !strings.Contains(plan.PlanText, noteElevated) {
		t.Error("expected elevated-glucose note appended")
	}
	if len(plan.BlockchainTxHash) != 66 {
		t.Errorf("expected tx hash on plan, got %q", plan.BlockchainTxHash)
	}

	body := out.Result.(map[string]interface{})
	if body["patient_name"] != "Alice Chen" {
		t.Errorf("unexpected patient name %v", body["patient_name"])
	}
	personalization := body["personalization"].(map[string]interface{})
	avg := personalization["avg_glucose"].(*float64)
	if avg == nil || *avg != 205 {
		t.Errorf("unexpected avg glucose %v", avg)
	}
	if personalization["readings_analyzed"] != 2 {
		t.Errorf("unexpected readings count %v", personalization["readings_analyzed"])
	}

	if len(f.feed.entries) != 1 {
		t.Fatalf("expected 1 activity, got %d", len(f.feed.entries))
	}
	a := f.feed.entries[0]
	if a.ActivityType != activity.TypeDietSuggestion {
		t.Errorf("unexpected activity type %s", a.ActivityType)
	}
	if a.Description != "AI diet plan generated for Alice Chen with diabetes_type1" {
		t.Errorf("unexpected description %q", a.Description)
	}
}

func TestSuggestDiet_LowGlucoseNote(t *testing.T) {
	f := newSkillFixture()
	f.addPatient(diabeticPatient())
	f.addReading(&telemetry.Reading{ID: "r1", PatientID: "p1", GlucoseLevel: floatPtr(65), BatteryLevel: 85})

	_, err := f.skills.SuggestDiet(context.Background(), "p1")
	if err != nil {
		t.Fatalf("SuggestDiet failed: %v", err)
	}
	if !strings.Contains(f.plans.plans[0].PlanText, noteLow) {
		t.Error("expected low-glucose note appended")
	}
}

func TestSuggestDiet_CardiacPatientSkipsGlucoseNote(t *testing.T) {
	f := newSkillFixture()
	f.addPatient(cardiacPatient())
	f.addReading(&telemetry.Reading{ID: "r1", PatientID: "p2", HeartRate: intPtr(72), BatteryLevel: 85})

	_, err := f.skills.SuggestDiet(context.Background(), "p2")
	if err != nil {
		t.Fatalf("SuggestDiet failed: %v", err)
	}
	plan := f.plans.plans[0]
	if plan.PlanText != diet.FallbackPlan(patient.ConditionHeart) {
		t.Error("cardiac plan should be the bare condition plan")
	}
	if plan.Condition != patient.ConditionHeart {
		t.Errorf("unexpected condition %s", plan.Condition)
	}
}

func TestSuggestDiet_NoReadings(t *testing.T) {
	f := newSkillFixture()
	f.addPatient(diabeticPatient())

	out, err := f.skills.SuggestDiet(context.Background(), "p1")
	if err != nil {
		t.Fatalf("SuggestDiet failed: %v", err)
	}
	plan := f.plans.plans[0]
	if plan.PlanText != diet.FallbackPlan(patient.ConditionDiabetesType1) {
		t.Error("expected bare condition plan without readings")
	}
	personalization := out.Result.(map[string]interface{})["personalization"].(map[string]interface{})
	if personalization["avg_glucose"].(*float64) != nil {
		t.Error("expected nil avg glucose without readings")
	}
}

func TestSuggestDiet_StoreFailure(t *testing.T) {
	f := newSkillFixture()
	f.addPatient(diabeticPatient())
	f.plans.fail = errors.New("down")

	_, err := f.skills.SuggestDiet(context.Background(), "p1")
	if err == nil || !strings.Contains(err.Error(), "store diet plan") {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}
