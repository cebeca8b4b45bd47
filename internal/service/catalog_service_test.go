package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pavetrack/billing-service/internal/model"
	"github.com/pavetrack/billing-service/internal/repository"
)

func TestCatalogService_Create(t *testing.T) {
	t.Run("new definitions start active", func(t *testing.T) {
		store := new(MockCatalogStore)
		store.On("Create", context.Background(), mock.MatchedBy(func(def model.ServiceDefinition) bool {
			return def.Name == "Asphalt priming" &&
				def.Category == model.CategoryPriming &&
				def.DefaultUnit == model.UnitSquareMeter &&
				def.Active
		})).Return(&model.ServiceDefinition{ID: uuid.New()}, nil)

		svc := NewCatalogService(store)
		_, err := svc.Create(context.Background(), CreateDefinitionInput{
			Name:        "  Asphalt priming  ",
			Category:    model.CategoryPriming,
			DefaultUnit: model.UnitSquareMeter,
			BasePrice:   ptrFloat(4.50),
		})

		require.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		svc := NewCatalogService(new(MockCatalogStore))

		_, err := svc.Create(context.Background(), CreateDefinitionInput{
			Name: "   ", Category: model.CategoryPaving, DefaultUnit: model.UnitSquareMeter,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = svc.Create(context.Background(), CreateDefinitionInput{
			Name: "Paving", Category: "INVALID", DefaultUnit: model.UnitSquareMeter,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = svc.Create(context.Background(), CreateDefinitionInput{
			Name: "Paving", Category: model.CategoryPaving, DefaultUnit: "HOUR",
		})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = svc.Create(context.Background(), CreateDefinitionInput{
			Name: "Paving", Category: model.CategoryPaving, DefaultUnit: model.UnitSquareMeter,
			BasePrice: ptrFloat(-1),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestCatalogService_GetByID(t *testing.T) {
	id := uuid.New()

	t.Run("maps record-not-found", func(t *testing.T) {
		store := new(MockCatalogStore)
		store.On("GetByID", context.Background(), id).Return(nil, gorm.ErrRecordNotFound)

		svc := NewCatalogService(store)
		_, err := svc.GetByID(context.Background(), id)

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("tombstoned definitions still resolve", func(t *testing.T) {
		deactivated := &model.ServiceDefinition{ID: id, Name: "Old service", Active: false}
		store := new(MockCatalogStore)
		store.On("GetByID", context.Background(), id).Return(deactivated, nil)

		svc := NewCatalogService(store)
		def, err := svc.GetByID(context.Background(), id)

		require.NoError(t, err)
		assert.Equal(t, "Old service", def.Name)
		assert.False(t, def.Active)
	})
}

func TestCatalogService_Update(t *testing.T) {
	id := uuid.New()

	t.Run("missing target is a no-op success", func(t *testing.T) {
		store := new(MockCatalogStore)
		store.On("Update", context.Background(), id, mock.Anything).Return(int64(0), nil)

		svc := NewCatalogService(store)
		err := svc.Update(context.Background(), id, repository.ServiceDefinitionPatch{
			BasePrice: ptrFloat(38.00),
		})

		assert.NoError(t, err)
	})

	t.Run("validates patched fields", func(t *testing.T) {
		svc := NewCatalogService(new(MockCatalogStore))

		empty := "  "
		err := svc.Update(context.Background(), id, repository.ServiceDefinitionPatch{Name: &empty})
		assert.ErrorIs(t, err, ErrInvalidInput)

		err = svc.Update(context.Background(), id, repository.ServiceDefinitionPatch{BasePrice: ptrFloat(-5)})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestCatalogService_Deactivate(t *testing.T) {
	id := uuid.New()

	t.Run("repeated deactivation stays a success", func(t *testing.T) {
		store := new(MockCatalogStore)
		store.On("Deactivate", context.Background(), id).Return(int64(1), nil).Once()
		store.On("Deactivate", context.Background(), id).Return(int64(0), nil)

		svc := NewCatalogService(store)
		assert.NoError(t, svc.Deactivate(context.Background(), id))
		assert.NoError(t, svc.Deactivate(context.Background(), id))
	})
}
