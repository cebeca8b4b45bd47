package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pavetrack/billing-service/internal/model"
	"github.com/pavetrack/billing-service/internal/repository"
)

type CatalogStore interface {
	ListActive(ctx context.Context) ([]model.ServiceDefinition, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.ServiceDefinition, error)
	Create(ctx context.Context, def model.ServiceDefinition) (*model.ServiceDefinition, error)
	Update(ctx context.Context, id uuid.UUID, patch repository.ServiceDefinitionPatch) (int64, error)
	Deactivate(ctx context.Context, id uuid.UUID) (int64, error)
}

type CatalogService struct {
	store CatalogStore
}

func NewCatalogService(store CatalogStore) *CatalogService {
	return &CatalogService{store: store}
}

type CreateDefinitionInput struct {
	Name        string
	Description *string
	Category    model.ServiceCategory
	DefaultUnit model.UnitKind
	BasePrice   *float64
}

func (s *CatalogService) ListActive(ctx context.Context) ([]model.ServiceDefinition, error) {
	return s.store.ListActive(ctx)
}

func (s *CatalogService) GetByID(ctx context.Context, id uuid.UUID) (*model.ServiceDefinition, error) {
	def, err := s.store.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return def, nil
}

func (s *CatalogService) Create(ctx context.Context, input CreateDefinitionInput) (*model.ServiceDefinition, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !input.Category.Valid() {
		return nil, fmt.Errorf("%w: invalid category", ErrInvalidInput)
	}
	if !input.DefaultUnit.Valid() {
		return nil, fmt.Errorf("%w: invalid default unit", ErrInvalidInput)
	}
	if input.BasePrice != nil && *input.BasePrice < 0 {
		return nil, fmt.Errorf("%w: base price must not be negative", ErrInvalidInput)
	}

	return s.store.Create(ctx, model.ServiceDefinition{
		Name:        name,
		Description: input.Description,
		Category:    input.Category,
		DefaultUnit: input.DefaultUnit,
		BasePrice:   input.BasePrice,
		Active:      true,
	})
}

// Update patches a definition. A missing or already-deactivated target is a
// no-op success so repeated calls stay idempotent.
func (s *CatalogService) Update(ctx context.Context, id uuid.UUID, patch repository.ServiceDefinitionPatch) error {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
	}
	if patch.Category != nil && !patch.Category.Valid() {
		return fmt.Errorf("%w: invalid category", ErrInvalidInput)
	}
	if patch.DefaultUnit != nil && !patch.DefaultUnit.Valid() {
		return fmt.Errorf("%w: invalid default unit", ErrInvalidInput)
	}
	if patch.BasePrice != nil && *patch.BasePrice < 0 {
		return fmt.Errorf("%w: base price must not be negative", ErrInvalidInput)
	}

	_, err := s.store.Update(ctx, id, patch)
	return err
}

// Deactivate tombstones a definition. The row stays resolvable by ID so
// historical commitments keep their display name. Deactivating a missing or
// already-deactivated definition succeeds without writing.
func (s *CatalogService) Deactivate(ctx context.Context, id uuid.UUID) error {
	_, err := s.store.Deactivate(ctx, id)
	return err
}
