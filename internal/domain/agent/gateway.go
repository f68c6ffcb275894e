// Package agent implements the Moltbot gateway and the OpenClaw guardian
// skills: critical condition monitoring, AI diet suggestions, real-time
// feedback, and daily progress tracking. Skills run on a scheduler and on
// demand through the gateway endpoints.
package agent

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/omnihealth/guardian/internal/domain/activity"
	"github.com/omnihealth/guardian/internal/platform/chain"
)

// Gateway identity.
const (
	GatewayName    = "Moltbot Gateway"
	GatewayVersion = "1.0.0"
	SkillAuthor    = "OpenClaw"
)

// Execution statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Skill priorities.
const (
	PriorityNormal   = "normal"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// reportedUptime is the synthetic availability figure surfaced on the
// stats endpoints.
const reportedUptime = "99.9%"

// Config describes one OpenClaw skill.
type Config struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Version         string   `json:"version"`
	Author          string   `json:"author"`
	Emoji           string   `json:"emoji"`
	IntervalSeconds int      `json:"interval_seconds"`
	Triggers        []string `json:"triggers"`
	Actions         []string `json:"actions"`
	Priority        string   `json:"priority"`
	Enabled         bool     `json:"enabled"`
}

// Outcome is what a skill hands back to the gateway: the response payload
// plus any anchor tx and archive cid the run produced.
type Outcome struct {
	Result        interface{}
	TxHash        string
	GreenfieldCID string
}

// HandlerFunc runs one skill execution for a patient.
type HandlerFunc func(ctx context.Context, patientID string) (*Outcome, error)

// ExecutionResult is the gateway's record of a single skill run.
type ExecutionResult struct {
	Skill              string      `json:"skill"`
	Status             string      `json:"status"`
	Result             interface{} `json:"result"`
	TxHash             string      `json:"tx_hash,omitempty"`
	GreenfieldCID      string      `json:"greenfield_cid,omitempty"`
	ExecutionTimeMS    float64     `json:"execution_time_ms"`
	Timestamp          time.Time   `json:"timestamp"`
	VerifiedByOpenClaw bool        `json:"verified_by_openclaw"`
}

// SkillInfo is the public view of a skill in the gateway info document.
type SkillInfo struct {
	Name            string   `json:"name"`
	Emoji           string   `json:"emoji"`
	Description     string   `json:"description"`
	IntervalSeconds int      `json:"interval_seconds"`
	Priority        string   `json:"priority"`
	Triggers        []string `json:"triggers"`
	Actions         []string `json:"actions"`
}

// Info describes the gateway and its loaded skills.
type Info struct {
	Gateway            string      `json:"gateway"`
	Version            string      `json:"version"`
	OpenClawCompatible bool        `json:"openclaw_compatible"`
	SkillsLoaded       int         `json:"skills_loaded"`
	Skills             []SkillInfo `json:"skills"`
	Status             string      `json:"status"`
	Blockchain         string      `json:"blockchain"`
	Storage            string      `json:"storage"`
}

// Stats reports the in-process gateway counters.
type Stats struct {
	Gateway           string           `json:"gateway"`
	Version           string           `json:"version"`
	TotalExecutions   int64            `json:"total_executions"`
	SkillsAvailable   int              `json:"skills_available"`
	ExecutionsBySkill map[string]int64 `json:"executions_by_skill"`
	SuccessCount      int64            `json:"success_count"`
	ErrorCount        int64            `json:"error_count"`
	Uptime            string           `json:"uptime"`
	Status            string           `json:"status"`
}

// Gateway is the OpenClaw-compatible skill registry. Registration order is
// preserved in Info, Configs, and the scheduler.
type Gateway struct {
	activities *activity.Logger

	mu        sync.Mutex
	order     []string
	configs   map[string]Config
	handlers  map[string]HandlerFunc
	total     int64
	bySkill   map[string]int64
	successes int64
	failures  int64
}

// NewGateway returns an empty gateway.
func NewGateway(activities *activity.Logger) *Gateway {
	return &Gateway{
		activities: activities,
		configs:    make(map[string]Config),
		handlers:   make(map[string]HandlerFunc),
		bySkill:    make(map[string]int64),
	}
}

// Register adds a skill to the gateway. A nil handler leaves the skill
// visible but not executable.
func (g *Gateway) Register(cfg Config, handler HandlerFunc) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, exists := g.configs[cfg.Name]; !exists {
		g.order = append(g.order, cfg.Name)
	}
	g.configs[cfg.Name] = cfg
	if handler != nil {
		g.handlers[cfg.Name] = handler
	}
}

// Execute runs one skill for a patient. It never fails outright: unknown
// skills, missing handlers, and handler errors all come back as
// error-status results.
func (g *Gateway) Execute(ctx context.Context, name, patientID string) *ExecutionResult {
	start := time.Now()

	g.mu.Lock()
	cfg, known := g.configs[name]
	handler := g.handlers[name]
	g.mu.Unlock()

	if !known {
		return g.finish(name, known, start, &ExecutionResult{
			Skill:  name,
			Status: StatusError,
			Result: map[string]interface{}{"error": fmt.Sprintf("Skill '%s' not found", name)},
		})
	}
	if handler == nil {
		return g.finish(name, known, start, &ExecutionResult{
			Skill:  name,
			Status: StatusError,
			Result: map[string]interface{}{"error": fmt.Sprintf("No handler registered for skill '%s'", name)},
		})
	}

	outcome, err := handler(ctx, patientID)
	if err != nil {
		log.Error().Err(err).Str("skill", name).Str("patient_id", patientID).Msg("skill execution failed")
		a := activity.New(activity.TypeSkillExecution,
			fmt.Sprintf("Skill %s %s failed: %v", cfg.Emoji, name, err))
		a.PatientID = patientID
		g.activities.Log(ctx, a)
		return g.finish(name, known, start, &ExecutionResult{
			Skill:  name,
			Status: StatusError,
			Result: map[string]interface{}{"error": err.Error()},
		})
	}

	txHash := outcome.TxHash
	if txHash == "" {
		txHash = chain.MockTxHash()
	}
	a := activity.New(activity.TypeSkillExecution,
		fmt.Sprintf("Executed %s %s for patient %s", cfg.Emoji, name, patientID))
	a.PatientID = patientID
	a.TxHash = txHash
	a.Verified = true
	g.activities.Log(ctx, a)

	return g.finish(name, known, start, &ExecutionResult{
		Skill:              name,
		Status:             StatusOK,
		Result:             outcome.Result,
		TxHash:             txHash,
		GreenfieldCID:      outcome.GreenfieldCID,
		VerifiedByOpenClaw: true,
	})
}

// finish stamps timing on the result and folds it into the counters.
func (g *Gateway) finish(name string, known bool, start time.Time, r *ExecutionResult) *ExecutionResult {
	r.ExecutionTimeMS = float64(time.Since(start).Microseconds()) / 1000.0
	r.Timestamp = time.Now().UTC()

	g.mu.Lock()
	g.total++
	if known {
		g.bySkill[name]++
	}
	if r.Status == StatusOK {
		g.successes++
	} else {
		g.failures++
	}
	g.mu.Unlock()
	return r
}

// Configs returns the registered skills in registration order.
func (g *Gateway) Configs() []Config {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Config, 0, len(g.order))
	for _, name := range g.order {
		out = append(out, g.configs[name])
	}
	return out
}

// Info returns the gateway status document.
func (g *Gateway) Info() Info {
	g.mu.Lock()
	defer g.mu.Unlock()
	skills := make([]SkillInfo, 0, len(g.order))
	for _, name := range g.order {
		cfg := g.configs[name]
		skills = append(skills, SkillInfo{
			Name:            cfg.Name,
			Emoji:           cfg.Emoji,
			Description:     cfg.Description,
			IntervalSeconds: cfg.IntervalSeconds,
			Priority:        cfg.Priority,
			Triggers:        cfg.Triggers,
			Actions:         cfg.Actions,
		})
	}
	return Info{
		Gateway:            GatewayName,
		Version:            GatewayVersion,
		OpenClawCompatible: true,
		SkillsLoaded:       len(skills),
		Skills:             skills,
		Status:             "active",
		Blockchain:         chain.Network,
		Storage:            "BNB Greenfield",
	}
}

// Stats returns the execution counters. Every registered skill appears in
// the per-skill map, including those never executed.
func (g *Gateway) Stats() Stats {
	g.mu.Lock()
	defer g.mu.Unlock()
	bySkill := make(map[string]int64, len(g.order))
	for _, name := range g.order {
		bySkill[name] = g.bySkill[name]
	}
	return Stats{
		Gateway:           GatewayName,
		Version:           GatewayVersion,
		TotalExecutions:   g.total,
		SkillsAvailable:   len(g.order),
		ExecutionsBySkill: bySkill,
		SuccessCount:      g.successes,
		ErrorCount:        g.failures,
		Uptime:            reportedUptime,
		Status:            "active",
	}
}
