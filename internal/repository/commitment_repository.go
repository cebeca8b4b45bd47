package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pavetrack/billing-service/internal/model"
)

type CommitmentRepository struct {
	db *gorm.DB
}

func NewCommitmentRepository(db *gorm.DB) *CommitmentRepository {
	return &CommitmentRepository{db: db}
}

const commitmentColumns = `
	id,
	project_id,
	service_id,
	service_name,
	unit_kind,
	unit_price,
	quantity,
	line_total,
	observations,
	created_at,
	updated_at,
	deleted_at
`

func (r *CommitmentRepository) Create(ctx context.Context, c model.ServiceCommitment) (*model.ServiceCommitment, error) {
	var saved model.ServiceCommitment
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO project_service_commitments
			(project_id, service_id, service_name, unit_kind, unit_price, quantity, line_total, observations)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+commitmentColumns+`
	`, c.ProjectID, c.ServiceID, c.ServiceName, c.UnitKind, c.UnitPrice, c.Quantity, c.LineTotal, c.Observations).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *CommitmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ServiceCommitment, error) {
	var c model.ServiceCommitment
	if err := r.db.WithContext(ctx).Raw(`
		SELECT `+commitmentColumns+`
		FROM project_service_commitments
		WHERE id = ? AND deleted_at IS NULL
		LIMIT 1
	`, id).Scan(&c).Error; err != nil {
		return nil, err
	}
	if c.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (r *CommitmentRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.ServiceCommitment, error) {
	var commitments []model.ServiceCommitment
	if err := r.db.WithContext(ctx).Raw(`
		SELECT `+commitmentColumns+`
		FROM project_service_commitments
		WHERE project_id = ? AND deleted_at IS NULL
		ORDER BY created_at ASC
	`, projectID).Scan(&commitments).Error; err != nil {
		return nil, err
	}
	return commitments, nil
}

// UpdatePricing writes quantity, unit price and the recomputed line total in
// one statement so the factors and the product are never persisted out of
// sync.
func (r *CommitmentRepository) UpdatePricing(
	ctx context.Context,
	id uuid.UUID,
	quantity, unitPrice, lineTotal float64,
	observations *string,
) (int64, error) {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE project_service_commitments
		SET quantity = ?, unit_price = ?, line_total = ?, observations = ?, updated_at = NOW()
		WHERE id = ? AND deleted_at IS NULL
	`, quantity, unitPrice, lineTotal, observations, id)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *CommitmentRepository) SoftDelete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE project_service_commitments
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = ? AND deleted_at IS NULL
	`, id)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
