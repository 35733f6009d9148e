package tasks

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/mikestefanello/backlite"
	"go.uber.org/zap"
)

// CoverReferenceSource lists the cover image URLs currently referenced
// by catalog records.
type CoverReferenceSource interface {
	CoverImagePaths() ([]string, error)
}

// OrphanCoverRemover deletes stored cover files that are not in the
// referenced set and are older than minAge.
type OrphanCoverRemover interface {
	RemoveUnreferenced(referenced map[string]struct{}, minAge time.Duration) (int, error)
}

// CleanupOrphanCoversTask removes cover files on disk that no book
// references anymore, such as replaced uploads or covers of deleted books.
type CleanupOrphanCoversTask struct {
	// MinAgeMinutes protects freshly written files from removal.
	// Zero means the default of 60 minutes.
	MinAgeMinutes int `json:"min_age_minutes"`
}

// Config returns the queue configuration for cover cleanup tasks.
func (t CleanupOrphanCoversTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "cleanup_orphan_covers",
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CleanupOrphanCoversProcessor creates a processor function for CleanupOrphanCoversTask.
func CleanupOrphanCoversProcessor(source CoverReferenceSource, remover OrphanCoverRemover) backlite.QueueProcessor[CleanupOrphanCoversTask] {
	return func(ctx context.Context, task CleanupOrphanCoversTask) error {
		if source == nil || remover == nil {
			return fmt.Errorf("cover cleanup not configured")
		}

		urls, err := source.CoverImagePaths()
		if err != nil {
			return fmt.Errorf("list referenced covers: %w", err)
		}

		// Records store public URLs; the store tracks bare filenames.
		referenced := make(map[string]struct{}, len(urls))
		for _, u := range urls {
			referenced[path.Base(u)] = struct{}{}
		}

		minAge := time.Duration(task.MinAgeMinutes) * time.Minute
		if minAge <= 0 {
			minAge = time.Hour
		}

		removed, err := remover.RemoveUnreferenced(referenced, minAge)
		if err != nil {
			return fmt.Errorf("cleanup orphan covers: %w", err)
		}

		zap.L().Info("cleaned up orphan cover files",
			zap.Int("removed", removed),
			zap.Int("referenced", len(referenced)))
		return nil
	}
}

// NewCleanupOrphanCoversQueue creates a backlite queue for cover cleanup tasks.
func NewCleanupOrphanCoversQueue(source CoverReferenceSource, remover OrphanCoverRemover) backlite.Queue {
	return backlite.NewQueue(CleanupOrphanCoversProcessor(source, remover))
}
