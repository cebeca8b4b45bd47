package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pavetrack/billing-service/internal/model"
	"github.com/pavetrack/billing-service/internal/repository"
)

type MockCatalogStore struct {
	mock.Mock
}

func (m *MockCatalogStore) ListActive(ctx context.Context) ([]model.ServiceDefinition, error) {
	args := m.Called(ctx)
	defs, _ := args.Get(0).([]model.ServiceDefinition)
	return defs, args.Error(1)
}

func (m *MockCatalogStore) GetByID(ctx context.Context, id uuid.UUID) (*model.ServiceDefinition, error) {
	args := m.Called(ctx, id)
	def, _ := args.Get(0).(*model.ServiceDefinition)
	return def, args.Error(1)
}

func (m *MockCatalogStore) Create(ctx context.Context, def model.ServiceDefinition) (*model.ServiceDefinition, error) {
	args := m.Called(ctx, def)
	saved, _ := args.Get(0).(*model.ServiceDefinition)
	return saved, args.Error(1)
}

func (m *MockCatalogStore) Update(ctx context.Context, id uuid.UUID, patch repository.ServiceDefinitionPatch) (int64, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCatalogStore) Deactivate(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type MockCommitmentStore struct {
	mock.Mock
}

func (m *MockCommitmentStore) Create(ctx context.Context, c model.ServiceCommitment) (*model.ServiceCommitment, error) {
	args := m.Called(ctx, c)
	saved, _ := args.Get(0).(*model.ServiceCommitment)
	return saved, args.Error(1)
}

func (m *MockCommitmentStore) GetByID(ctx context.Context, id uuid.UUID) (*model.ServiceCommitment, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*model.ServiceCommitment)
	return c, args.Error(1)
}

func (m *MockCommitmentStore) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.ServiceCommitment, error) {
	args := m.Called(ctx, projectID)
	commitments, _ := args.Get(0).([]model.ServiceCommitment)
	return commitments, args.Error(1)
}

func (m *MockCommitmentStore) UpdatePricing(ctx context.Context, id uuid.UUID, quantity, unitPrice, lineTotal float64, observations *string) (int64, error) {
	args := m.Called(ctx, id, quantity, unitPrice, lineTotal, observations)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommitmentStore) SoftDelete(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type MockProgressStore struct {
	mock.Mock
}

func (m *MockProgressStore) SumDailyReports(ctx context.Context, projectID uuid.UUID) (int64, float64, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).(int64), args.Get(1).(float64), args.Error(2)
}

func (m *MockProgressStore) SumSegmentsByStatus(ctx context.Context, projectID uuid.UUID, statuses []string) (float64, error) {
	args := m.Called(ctx, projectID, statuses)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockProgressStore) ListSegments(ctx context.Context, projectID uuid.UUID) ([]model.StreetSegment, error) {
	args := m.Called(ctx, projectID)
	segments, _ := args.Get(0).([]model.StreetSegment)
	return segments, args.Error(1)
}

type MockExecutedAmountSource struct {
	mock.Mock
}

func (m *MockExecutedAmountSource) ExecutedAmount(ctx context.Context, projectID uuid.UUID) (float64, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).(float64), args.Error(1)
}

type MockProjectStore struct {
	mock.Mock
}

func (m *MockProjectStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	args := m.Called(ctx, id)
	project, _ := args.Get(0).(*model.Project)
	return project, args.Error(1)
}

type MockFuelStore struct {
	mock.Mock
}

func (m *MockFuelStore) Create(ctx context.Context, p model.FuelPurchase) (*model.FuelPurchase, error) {
	args := m.Called(ctx, p)
	saved, _ := args.Get(0).(*model.FuelPurchase)
	return saved, args.Error(1)
}

func (m *MockFuelStore) GetByID(ctx context.Context, id uuid.UUID) (*model.FuelPurchase, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*model.FuelPurchase)
	return p, args.Error(1)
}

func (m *MockFuelStore) SetExpenseID(ctx context.Context, purchaseID, expenseID uuid.UUID) error {
	args := m.Called(ctx, purchaseID, expenseID)
	return args.Error(0)
}

func (m *MockFuelStore) UpdateAmounts(ctx context.Context, id uuid.UUID, liters, pricePerLiter, totalAmount float64) (int64, error) {
	args := m.Called(ctx, id, liters, pricePerLiter, totalAmount)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFuelStore) ListUnlinked(ctx context.Context) ([]model.FuelPurchase, error) {
	args := m.Called(ctx)
	purchases, _ := args.Get(0).([]model.FuelPurchase)
	return purchases, args.Error(1)
}

type MockExpenseStore struct {
	mock.Mock
}

func (m *MockExpenseStore) Create(ctx context.Context, e model.Expense) (*model.Expense, error) {
	args := m.Called(ctx, e)
	saved, _ := args.Get(0).(*model.Expense)
	return saved, args.Error(1)
}

func (m *MockExpenseStore) SumByCategory(ctx context.Context, projectID uuid.UUID) ([]model.ExpenseCategoryTotal, error) {
	args := m.Called(ctx, projectID)
	totals, _ := args.Get(0).([]model.ExpenseCategoryTotal)
	return totals, args.Error(1)
}
