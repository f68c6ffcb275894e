package agent

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// schedulerPatientCap bounds how many patients one scheduled cycle visits.
const schedulerPatientCap = 100

// Scheduler drives the gateway autonomously: one ticker per enabled skill,
// each cycle running the skill across the patient roster.
type Scheduler struct {
	gateway  *Gateway
	patients PatientDirectory
}

// NewScheduler wires the autonomous skill runner.
func NewScheduler(gateway *Gateway, patients PatientDirectory) *Scheduler {
	return &Scheduler{gateway: gateway, patients: patients}
}

// Run blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	configs := s.gateway.Configs()
	log.Info().Int("skills", len(configs)).Msg("agent scheduler started")

	var wg sync.WaitGroup
	for _, cfg := range configs {
		if !cfg.Enabled {
			continue
		}
		wg.Add(1)
		go func(cfg Config) {
			defer wg.Done()
			s.runSkill(ctx, cfg)
		}(cfg)
	}
	wg.Wait()
	log.Info().Msg("agent scheduler stopped")
}

func (s *Scheduler) runSkill(ctx context.Context, cfg Config) {
	interval := time.Duration(cfg.IntervalSeconds) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	log.Info().Str("skill", cfg.Name).Dur("interval", interval).Msg("agent skill scheduled")

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.cycle(ctx, cfg.Name)
		}
	}
}

// cycle runs one skill across the roster. Per-patient failures are already
// folded into error-status results by the gateway.
func (s *Scheduler) cycle(ctx context.Context, name string) {
	patients, err := s.patients.List(ctx, schedulerPatientCap)
	if err != nil {
		log.Error().Err(err).Str("skill", name).Msg("failed to list patients for scheduled run")
		return
	}
	for _, p := range patients {
		if ctx.Err() != nil {
			return
		}
		s.gateway.Execute(ctx, name, p.ID)
	}
}
