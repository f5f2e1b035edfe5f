// internal/domain/reminder/repository.go
package reminder

import (
	"context"
	"errors"
	"time"
)

var ErrRunNotFound = errors.New("reminder run not found")

// Repository defines operations for reminder runs.
type Repository interface {
	// Claim creates the run for date. claimed is false when another sweep
	// already owns that date.
	Claim(ctx context.Context, date time.Time) (run *Run, claimed bool, err error)
	// Finish stores the counters of a claimed run and marks it finished.
	Finish(ctx context.Context, run *Run) error
	GetByDate(ctx context.Context, date time.Time) (*Run, error)
}
