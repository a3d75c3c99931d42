package port

import "wordfreq/internal/domain"

// RunArchive persists completed runs.
type RunArchive interface {
	PutRun(run domain.Run) (string, error)

	GetRun(id string) (domain.Run, error)

	// ListRuns returns runs newest first; limit <= 0 means all.
	ListRuns(limit int) ([]domain.Run, error)

	Close() error
}
