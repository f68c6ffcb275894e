package activity

import "context"

type Repository interface {
	Insert(ctx context.Context, a *Activity) error
	List(ctx context.Context, limit int64) ([]*Activity, error)
	Count(ctx context.Context) (int64, error)
	CountByType(ctx context.Context, activityType string) (int64, error)
}
