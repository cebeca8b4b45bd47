package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pavetrack/billing-service/internal/model"
)

// ProgressRepository reads the two field-fact sources. Both collections are
// owned by the field-data services; this side only aggregates.
type ProgressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// SumDailyReports returns the report count alongside the executed sum so the
// caller can tell an empty source apart from a legitimately zero one.
func (r *ProgressRepository) SumDailyReports(ctx context.Context, projectID uuid.UUID) (int64, float64, error) {
	var row struct {
		ReportCount int64
		Total       float64
	}
	if err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) AS report_count, COALESCE(SUM(executed_amount), 0) AS total
		FROM daily_production_reports
		WHERE project_id = ?
	`, projectID).Scan(&row).Error; err != nil {
		return 0, 0, err
	}
	return row.ReportCount, row.Total, nil
}

func (r *ProgressRepository) SumSegmentsByStatus(ctx context.Context, projectID uuid.UUID, statuses []string) (float64, error) {
	if len(statuses) == 0 {
		return 0, nil
	}

	placeholders := make([]string, len(statuses))
	args := []interface{}{projectID}
	for i, status := range statuses {
		placeholders[i] = "?"
		args = append(args, status)
	}

	query := fmt.Sprintf(`
		SELECT COALESCE(SUM(executed_amount), 0)
		FROM project_segments
		WHERE project_id = ? AND status IN (%s)
	`, strings.Join(placeholders, ","))

	var total float64
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *ProgressRepository) ListSegments(ctx context.Context, projectID uuid.UUID) ([]model.StreetSegment, error) {
	var segments []model.StreetSegment
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, project_id, name, status, executed_amount
		FROM project_segments
		WHERE project_id = ?
		ORDER BY name ASC
	`, projectID).Scan(&segments).Error; err != nil {
		return nil, err
	}
	return segments, nil
}
