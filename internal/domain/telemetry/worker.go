package telemetry

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/omnihealth/guardian/internal/platform/ws"
)

// Worker drives the background telemetry simulation: every interval it
// captures one reading for a round-robin patient and publishes it to the
// hub. Critical readings go through alert processing inside Capture.
type Worker struct {
	svc      *Service
	patients PatientDirectory
	hub      *ws.Hub
	interval time.Duration
	cursor   int
}

// NewWorker wires the simulation loop.
func NewWorker(svc *Service, patients PatientDirectory, hub *ws.Hub, interval time.Duration) *Worker {
	return &Worker{svc: svc, patients: patients, hub: hub, interval: interval}
}

// Run ticks until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("telemetry simulator started")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("telemetry simulator stopped")
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *Worker) tick(ctx context.Context) {
	patients, err := w.patients.List(ctx, 100)
	if err != nil {
		log.Warn().Err(err).Msg("simulator: list patients")
		return
	}
	if len(patients) == 0 {
		return
	}

	p := patients[w.cursor%len(patients)]
	w.cursor++

	r, err := w.svc.Capture(ctx, p.ID)
	if err != nil {
		log.Warn().Err(err).Str("patient_id", p.ID).Msg("simulator: capture reading")
		return
	}

	live := &LiveReading{Reading: *r, PatientName: p.Name, Condition: p.Condition}
	w.hub.Publish(ws.NewEvent("reading", ws.TopicTelemetry, live))
	w.hub.Publish(ws.NewEvent("reading", ws.PatientTopic(p.ID), live))
}
