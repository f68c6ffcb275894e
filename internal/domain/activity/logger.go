package activity

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Logger records feed entries for other services. Failures are swallowed:
// the activity feed must never break the operation that triggered it.
type Logger struct {
	repo Repository
}

func NewLogger(repo Repository) *Logger {
	return &Logger{repo: repo}
}

// Log inserts the activity, reporting failures at warn level only.
func (l *Logger) Log(ctx context.Context, a *Activity) {
	if err := l.repo.Insert(ctx, a); err != nil {
		log.Warn().Err(err).Str("activity_type", a.ActivityType).Msg("failed to record agent activity")
	}
}
