package telemetry

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/omnihealth/guardian/internal/domain/patient"
)

// criticalChance is the per-reading probability of a critical vital.
const criticalChance = 0.05

// Generator produces simulated device readings. Safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator returns a generator seeded from the clock.
func NewGenerator() *Generator {
	return NewSeededGenerator(time.Now().UnixNano())
}

// NewSeededGenerator returns a generator with a fixed seed for reproducible
// streams.
func NewSeededGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Simulate produces one reading for the patient. Diabetic conditions report
// glucose, everything else reports heart rate; a battery below 15% forces
// the critical flag regardless of vitals.
func (g *Generator) Simulate(p *patient.Patient) *Reading {
	g.mu.Lock()
	defer g.mu.Unlock()

	r := &Reading{
		ID:         uuid.NewString(),
		PatientID:  p.ID,
		DeviceType: p.DeviceType,
		Timestamp:  time.Now().UTC(),
	}
	if r.DeviceType == "" {
		r.DeviceType = "unknown"
	}

	critical := g.rng.Float64() < criticalChance
	diabetic := p.IsDiabetic()

	if diabetic {
		if critical {
			var glucose float64
			if g.rng.Intn(2) == 0 {
				glucose = float64(g.between(40, 60))
			} else {
				glucose = float64(g.between(250, 400))
			}
			r.GlucoseLevel = &glucose
			r.IsCritical = true
		} else {
			glucose := float64(g.between(70, 180))
			r.GlucoseLevel = &glucose
		}
	}

	if p.Condition == patient.ConditionHeart || !diabetic {
		if critical {
			var hr int
			if g.rng.Intn(2) == 0 {
				hr = g.between(30, 50)
			} else {
				hr = g.between(120, 180)
			}
			r.HeartRate = &hr
			r.IsCritical = true
		} else {
			hr := g.between(60, 100)
			r.HeartRate = &hr
		}
	}

	r.BatteryLevel = g.between(5, 100)
	if r.BatteryLevel < 15 {
		r.IsCritical = true
	}
	return r
}

// between returns a uniform int in [min, max].
func (g *Generator) between(min, max int) int {
	return min + g.rng.Intn(max-min+1)
}
