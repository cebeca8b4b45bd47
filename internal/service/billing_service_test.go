package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pavetrack/billing-service/internal/model"
)

type stubGenerator struct {
	content []byte
	err     error
}

func (g stubGenerator) Generate(model.ProjectBillingSummary) ([]byte, error) {
	return g.content, g.err
}

func TestBillingService_ProjectSummary(t *testing.T) {
	projectID := uuid.New()
	project := &model.Project{
		ID:              projectID,
		Name:            "Rua das Flores",
		PlannedQuantity: 500,
	}
	commitments := []model.ServiceCommitment{
		{UnitKind: model.UnitSquareMeter, UnitPrice: 30.00, Quantity: 300, LineTotal: 9000},
		{UnitKind: model.UnitSquareMeter, UnitPrice: 15.00, Quantity: 300, LineTotal: 4500},
		{UnitKind: model.UnitService, UnitPrice: 2500, Quantity: 1, LineTotal: 2500},
	}

	newService := func(projects *MockProjectStore, store *MockCommitmentStore, expenses *MockExpenseStore, progress *MockExecutedAmountSource) *BillingService {
		return NewBillingService(projects, store, expenses, progress, stubGenerator{}, stubGenerator{})
	}

	t.Run("reconciles forecast, executed and expenses", func(t *testing.T) {
		projects := new(MockProjectStore)
		projects.On("GetByID", context.Background(), projectID).Return(project, nil)

		store := new(MockCommitmentStore)
		store.On("ListByProject", context.Background(), projectID).Return(commitments, nil)

		progress := new(MockExecutedAmountSource)
		progress.On("ExecutedAmount", context.Background(), projectID).Return(300.0, nil)

		expenses := new(MockExpenseStore)
		expenses.On("SumByCategory", context.Background(), projectID).Return([]model.ExpenseCategoryTotal{
			{Category: model.ExpenseFuel, Total: 1200.50},
			{Category: model.ExpenseMaterials, Total: 4300.00},
		}, nil)

		svc := newService(projects, store, expenses, progress)
		summary, err := svc.ProjectSummary(context.Background(), projectID)

		require.NoError(t, err)
		// combined rate 45.00/m2: planned 500 m2, executed 300 m2, fixed 2500.
		assert.Equal(t, 25000.00, summary.ForecastTotal)
		assert.Equal(t, 16000.00, summary.ExecutedTotal)
		assert.Equal(t, 300.0, summary.ExecutedAmount)
		assert.Equal(t, 5500.50, summary.ExpenseTotal)
		assert.Len(t, summary.ExpensesByCategory, 2)
	})

	t.Run("missing project", func(t *testing.T) {
		projects := new(MockProjectStore)
		projects.On("GetByID", context.Background(), projectID).Return(nil, gorm.ErrRecordNotFound)

		svc := newService(projects, new(MockCommitmentStore), new(MockExpenseStore), new(MockExecutedAmountSource))
		_, err := svc.ProjectSummary(context.Background(), projectID)

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestBillingService_ExportSummary(t *testing.T) {
	projectID := uuid.New()
	project := &model.Project{ID: projectID, Name: "Av. Brasil 2026"}

	projects := new(MockProjectStore)
	projects.On("GetByID", context.Background(), projectID).Return(project, nil)

	store := new(MockCommitmentStore)
	store.On("ListByProject", context.Background(), projectID).Return([]model.ServiceCommitment(nil), nil)

	progress := new(MockExecutedAmountSource)
	progress.On("ExecutedAmount", context.Background(), projectID).Return(0.0, nil)

	expenses := new(MockExpenseStore)
	expenses.On("SumByCategory", context.Background(), projectID).Return([]model.ExpenseCategoryTotal(nil), nil)

	svc := NewBillingService(projects, store, expenses, progress,
		stubGenerator{content: []byte("xlsx-bytes")},
		stubGenerator{content: []byte("pdf-bytes")})

	excel, err := svc.ExportSummary(context.Background(), projectID)
	require.NoError(t, err)
	assert.Equal(t, "billing-Av--Brasil-2026.xlsx", excel.FileName)
	assert.Equal(t, []byte("xlsx-bytes"), excel.Content)

	pdf, err := svc.ExportSummaryPDF(context.Background(), projectID)
	require.NoError(t, err)
	assert.Equal(t, "billing-Av--Brasil-2026.pdf", pdf.FileName)
	assert.Equal(t, []byte("pdf-bytes"), pdf.Content)
}

func TestSanitizeFileName(t *testing.T) {
	assert.Equal(t, "Rua-das-Flores", sanitizeFileName("Rua das Flores"))
	assert.Equal(t, "obra_12", sanitizeFileName("obra_12"))
	assert.Equal(t, "", sanitizeFileName("///"))
}
