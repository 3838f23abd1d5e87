// Package progress implements the enrollment status state machine.
//
// Status moves forward only:
//
//	enrolled -> in-progress -> completed
//
// A progress write of 100 (or more, clamped by validation upstream)
// completes the enrollment and stamps the completion date exactly once.
// Once completed, later progress writes never move the status back and
// never touch the completion date. A write of 0 leaves the status alone,
// so an in-progress enrollment does not regress to enrolled.
package progress

import (
	"time"

	"github.com/edukit/coursehub/internal/app/system/apperr"
	"github.com/edukit/coursehub/internal/domain/models"
)

// Result is the outcome of applying a progress value to an enrollment.
type Result struct {
	Status         string
	CompletionDate *time.Time
}

// Apply computes the status and completion date that a progress write
// produces, given the enrollment's current status and completion date.
// now is the timestamp used if the write completes the enrollment.
func Apply(curStatus string, curCompletion *time.Time, newProgress int, now time.Time) (Result, error) {
	if newProgress < 0 || newProgress > 100 {
		return Result{}, apperr.Validationf("progress must be between 0 and 100, got %d", newProgress)
	}

	// Completed is terminal with respect to progress writes.
	if curStatus == models.StatusCompleted {
		return Result{Status: models.StatusCompleted, CompletionDate: curCompletion}, nil
	}

	switch {
	case newProgress >= 100:
		done := curCompletion
		if done == nil {
			t := now
			done = &t
		}
		return Result{Status: models.StatusCompleted, CompletionDate: done}, nil
	case newProgress > 0:
		return Result{Status: models.StatusInProgress, CompletionDate: curCompletion}, nil
	default:
		// 0 leaves the status unchanged.
		return Result{Status: curStatus, CompletionDate: curCompletion}, nil
	}
}
