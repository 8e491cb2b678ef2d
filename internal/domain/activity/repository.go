package activity

import "context"

// Repository defines persistence operations for activity entries
type Repository interface {
	Save(ctx context.Context, a *Activity) error
	// FindRecent returns the newest entries first, at most limit of them.
	FindRecent(ctx context.Context, limit int) ([]Activity, error)
}
