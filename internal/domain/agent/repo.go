package agent

import "context"

// ProgressRepository persists daily progress reports.
type ProgressRepository interface {
	Insert(ctx context.Context, p *Progress) error
}
