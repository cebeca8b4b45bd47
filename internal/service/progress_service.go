package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pavetrack/billing-service/internal/model"
)

type ProgressStore interface {
	SumDailyReports(ctx context.Context, projectID uuid.UUID) (int64, float64, error)
	SumSegmentsByStatus(ctx context.Context, projectID uuid.UUID, statuses []string) (float64, error)
	ListSegments(ctx context.Context, projectID uuid.UUID) ([]model.StreetSegment, error)
}

// ExecutedAmountSource is the aggregator signal consumed by the commitment
// and billing services.
type ExecutedAmountSource interface {
	ExecutedAmount(ctx context.Context, projectID uuid.UUID) (float64, error)
}

// ProgressService reduces raw field facts into one executed-quantity figure
// per project.
type ProgressService struct {
	store             ProgressStore
	completedStatuses []string
}

func NewProgressService(store ProgressStore, completedStatuses []string) *ProgressService {
	return &ProgressService{
		store:             store,
		completedStatuses: completedStatuses,
	}
}

// ExecutedAmount sums the daily production reports of the project. Daily
// reports are the authoritative ground truth; only when none exist yet (or
// the source is unavailable) does the coarser street-completion proxy stand
// in, counting segments in the configured completed statuses. An empty
// project yields 0, never a not-found error.
func (s *ProgressService) ExecutedAmount(ctx context.Context, projectID uuid.UUID) (float64, error) {
	reportCount, total, err := s.store.SumDailyReports(ctx, projectID)
	if err == nil && reportCount > 0 {
		return total, nil
	}
	if err != nil && ctx.Err() != nil {
		// caller cancelled, do not mask it with fallback data
		return 0, err
	}

	fallback, fbErr := s.store.SumSegmentsByStatus(ctx, projectID, s.completedStatuses)
	if fbErr != nil {
		if err != nil {
			return 0, err
		}
		return 0, fbErr
	}
	return fallback, nil
}

// ProjectProgress pairs the executed figure with the street segments it may
// have been derived from.
func (s *ProgressService) ProjectProgress(ctx context.Context, projectID uuid.UUID) (*model.ProjectProgress, error) {
	executed, err := s.ExecutedAmount(ctx, projectID)
	if err != nil {
		return nil, err
	}
	segments, err := s.store.ListSegments(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return &model.ProjectProgress{
		ExecutedAmount: executed,
		Segments:       segments,
	}, nil
}
