package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavetrack/billing-service/internal/model"
)

func TestProgressService_ExecutedAmount(t *testing.T) {
	projectID := uuid.New()
	completed := []string{"COMPLETED"}

	t.Run("daily reports are the primary source", func(t *testing.T) {
		store := new(MockProgressStore)
		store.On("SumDailyReports", context.Background(), projectID).
			Return(int64(3), 180.5, nil)

		svc := NewProgressService(store, completed)
		amount, err := svc.ExecutedAmount(context.Background(), projectID)

		require.NoError(t, err)
		assert.Equal(t, 180.5, amount)
		store.AssertNotCalled(t, "SumSegmentsByStatus")
	})

	t.Run("all-zero reports still count as primary data", func(t *testing.T) {
		store := new(MockProgressStore)
		store.On("SumDailyReports", context.Background(), projectID).
			Return(int64(2), 0.0, nil)

		svc := NewProgressService(store, completed)
		amount, err := svc.ExecutedAmount(context.Background(), projectID)

		require.NoError(t, err)
		assert.Equal(t, 0.0, amount)
		store.AssertNotCalled(t, "SumSegmentsByStatus")
	})

	t.Run("no reports falls back to completed segments", func(t *testing.T) {
		store := new(MockProgressStore)
		store.On("SumDailyReports", context.Background(), projectID).
			Return(int64(0), 0.0, nil)
		store.On("SumSegmentsByStatus", context.Background(), projectID, completed).
			Return(420.0, nil)

		svc := NewProgressService(store, completed)
		amount, err := svc.ExecutedAmount(context.Background(), projectID)

		require.NoError(t, err)
		assert.Equal(t, 420.0, amount)
	})

	t.Run("report source failure falls back to segments", func(t *testing.T) {
		store := new(MockProgressStore)
		store.On("SumDailyReports", context.Background(), projectID).
			Return(int64(0), 0.0, errors.New("relation unavailable"))
		store.On("SumSegmentsByStatus", context.Background(), projectID, completed).
			Return(95.25, nil)

		svc := NewProgressService(store, completed)
		amount, err := svc.ExecutedAmount(context.Background(), projectID)

		require.NoError(t, err)
		assert.Equal(t, 95.25, amount)
	})

	t.Run("both sources failing surfaces the primary error", func(t *testing.T) {
		primaryErr := errors.New("reports down")
		store := new(MockProgressStore)
		store.On("SumDailyReports", context.Background(), projectID).
			Return(int64(0), 0.0, primaryErr)
		store.On("SumSegmentsByStatus", context.Background(), projectID, completed).
			Return(0.0, errors.New("segments down"))

		svc := NewProgressService(store, completed)
		_, err := svc.ExecutedAmount(context.Background(), projectID)

		assert.ErrorIs(t, err, primaryErr)
	})

	t.Run("empty project yields zero", func(t *testing.T) {
		store := new(MockProgressStore)
		store.On("SumDailyReports", context.Background(), projectID).
			Return(int64(0), 0.0, nil)
		store.On("SumSegmentsByStatus", context.Background(), projectID, completed).
			Return(0.0, nil)

		svc := NewProgressService(store, completed)
		amount, err := svc.ExecutedAmount(context.Background(), projectID)

		require.NoError(t, err)
		assert.Equal(t, 0.0, amount)
	})

	t.Run("project progress pairs the figure with segments", func(t *testing.T) {
		segments := []model.StreetSegment{
			{ID: uuid.New(), ProjectID: projectID, Name: "Rua A", Status: model.SegmentStatusCompleted, ExecutedAmount: 120},
			{ID: uuid.New(), ProjectID: projectID, Name: "Rua B", Status: model.SegmentStatusInProgress, ExecutedAmount: 40},
		}
		store := new(MockProgressStore)
		store.On("SumDailyReports", context.Background(), projectID).
			Return(int64(0), 0.0, nil)
		store.On("SumSegmentsByStatus", context.Background(), projectID, completed).
			Return(120.0, nil)
		store.On("ListSegments", context.Background(), projectID).Return(segments, nil)

		svc := NewProgressService(store, completed)
		progress, err := svc.ProjectProgress(context.Background(), projectID)

		require.NoError(t, err)
		assert.Equal(t, 120.0, progress.ExecutedAmount)
		assert.Len(t, progress.Segments, 2)
	})

	t.Run("cancelled context is not masked by fallback", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		store := new(MockProgressStore)
		store.On("SumDailyReports", ctx, projectID).
			Return(int64(0), 0.0, context.Canceled)

		svc := NewProgressService(store, completed)
		_, err := svc.ExecutedAmount(ctx, projectID)

		assert.ErrorIs(t, err, context.Canceled)
		store.AssertNotCalled(t, "SumSegmentsByStatus")
	})
}
