package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pavetrack/billing-service/internal/model"
)

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

const serviceDefinitionColumns = `
	id,
	name,
	description,
	category,
	default_unit,
	base_price,
	active,
	created_at,
	deleted_at
`

func (r *CatalogRepository) ListActive(ctx context.Context) ([]model.ServiceDefinition, error) {
	var defs []model.ServiceDefinition
	if err := r.db.WithContext(ctx).Raw(`
		SELECT `+serviceDefinitionColumns+`
		FROM service_definitions
		WHERE active = TRUE AND deleted_at IS NULL
		ORDER BY name ASC
	`).Scan(&defs).Error; err != nil {
		return nil, err
	}
	return defs, nil
}

// GetByID resolves a definition regardless of its tombstone so historical
// commitments can still display the service name.
func (r *CatalogRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ServiceDefinition, error) {
	var def model.ServiceDefinition
	if err := r.db.WithContext(ctx).Raw(`
		SELECT `+serviceDefinitionColumns+`
		FROM service_definitions
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&def).Error; err != nil {
		return nil, err
	}
	if def.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &def, nil
}

func (r *CatalogRepository) Create(ctx context.Context, def model.ServiceDefinition) (*model.ServiceDefinition, error) {
	var saved model.ServiceDefinition
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO service_definitions (name, description, category, default_unit, base_price, active)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING `+serviceDefinitionColumns+`
	`, def.Name, def.Description, def.Category, def.DefaultUnit, def.BasePrice, def.Active).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

type ServiceDefinitionPatch struct {
	Name        *string
	Description *string
	Category    *model.ServiceCategory
	DefaultUnit *model.UnitKind
	BasePrice   *float64
}

// Update patches an active definition. Missing or deactivated rows are left
// untouched and reported through the returned row count.
func (r *CatalogRepository) Update(ctx context.Context, id uuid.UUID, patch ServiceDefinitionPatch) (int64, error) {
	var sets []string
	var args []interface{}
	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, *patch.Category)
	}
	if patch.DefaultUnit != nil {
		sets = append(sets, "default_unit = ?")
		args = append(args, *patch.DefaultUnit)
	}
	if patch.BasePrice != nil {
		sets = append(sets, "base_price = ?")
		args = append(args, *patch.BasePrice)
	}
	if len(sets) == 0 {
		return 0, nil
	}
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE service_definitions
		SET %s
		WHERE id = ? AND deleted_at IS NULL
	`, strings.Join(sets, ", "))

	result := r.db.WithContext(ctx).Exec(query, args...)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *CatalogRepository) Deactivate(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE service_definitions
		SET active = FALSE, deleted_at = NOW()
		WHERE id = ? AND deleted_at IS NULL
	`, id)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
