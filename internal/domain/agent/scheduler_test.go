package agent

import (
	"context"
	"testing"
	"time"

	"github.com/omnihealth/guardian/internal/domain/activity"
)

func TestSchedulerCycle_VisitsRoster(t *testing.T) {
	f := newSkillFixture()
	f.addPatient(diabeticPatient())
	f.addPatient(cardiacPatient())
	gw := NewDefaultGateway(f.skills, activity.NewLogger(f.feed))
	s := NewScheduler(gw, f.patients)

	s.cycle(context.Background(), SkillDietSuggestion)

	if len(f.plans.plans) != 2 {
		t.Fatalf("expected a plan per patient, got %d", len(f.plans.plans))
	}
	if n := gw.Stats().ExecutionsBySkill[SkillDietSuggestion]; n != 2 {
		t.Errorf("expected 2 executions, got %d", n)
	}
}

func TestSchedulerCycle_StopsOnCancel(t *testing.T) {
	f := newSkillFixture()
	f.addPatient(diabeticPatient())
	gw := NewDefaultGateway(f.skills, activity.NewLogger(f.feed))
	s := NewScheduler(gw, f.patients)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.cycle(ctx, SkillDietSuggestion)

	if len(f.plans.plans) != 0 {
		t.Errorf("cancelled cycle must not execute, got %d plans", len(f.plans.plans))
	}
}

func TestSchedulerRun_ReturnsOnCancel(t *testing.T) {
	f := newSkillFixture()
	gw := NewDefaultGateway(f.skills, activity.NewLogger(f.feed))
	s := NewScheduler(gw, f.patients)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop after cancel")
	}
}
