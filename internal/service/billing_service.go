package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pavetrack/billing-service/internal/model"
)

type ProjectStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
}

type ExpenseSummaryStore interface {
	SumByCategory(ctx context.Context, projectID uuid.UUID) ([]model.ExpenseCategoryTotal, error)
}

type ExcelGenerator interface {
	Generate(summary model.ProjectBillingSummary) ([]byte, error)
}

type PDFGenerator interface {
	Generate(summary model.ProjectBillingSummary) ([]byte, error)
}

// BillingService assembles the reconciled financial view of a project:
// forecast from the planned quantity, executed from the aggregator figure,
// expenses from the ledger.
type BillingService struct {
	projects    ProjectStore
	commitments CommitmentStore
	expenses    ExpenseSummaryStore
	progress    ExecutedAmountSource
	excel       ExcelGenerator
	pdf         PDFGenerator
}

func NewBillingService(
	projects ProjectStore,
	commitments CommitmentStore,
	expenses ExpenseSummaryStore,
	progress ExecutedAmountSource,
	excel ExcelGenerator,
	pdf PDFGenerator,
) *BillingService {
	return &BillingService{
		projects:    projects,
		commitments: commitments,
		expenses:    expenses,
		progress:    progress,
		excel:       excel,
		pdf:         pdf,
	}
}

func (s *BillingService) ProjectSummary(ctx context.Context, projectID uuid.UUID) (*model.ProjectBillingSummary, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	commitments, err := s.commitments.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	executed, err := s.progress.ExecutedAmount(ctx, projectID)
	if err != nil {
		return nil, err
	}

	categoryTotals, err := s.expenses.SumByCategory(ctx, projectID)
	if err != nil {
		return nil, err
	}
	expenseTotal := 0.0
	for _, ct := range categoryTotals {
		expenseTotal += ct.Total
	}

	return &model.ProjectBillingSummary{
		Project:            *project,
		Commitments:        commitments,
		ExecutedAmount:     executed,
		ForecastTotal:      ForecastTotal(commitments, project.PlannedQuantity),
		ExecutedTotal:      ExecutedTotal(commitments, executed),
		ExpenseTotal:       expenseTotal,
		ExpensesByCategory: categoryTotals,
	}, nil
}

type ExportResult struct {
	FileName string
	Content  []byte
}

func (s *BillingService) ExportSummary(ctx context.Context, projectID uuid.UUID) (*ExportResult, error) {
	summary, err := s.ProjectSummary(ctx, projectID)
	if err != nil {
		return nil, err
	}
	content, err := s.excel.Generate(*summary)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		FileName: buildExportFileName(summary.Project, "xlsx"),
		Content:  content,
	}, nil
}

func (s *BillingService) ExportSummaryPDF(ctx context.Context, projectID uuid.UUID) (*ExportResult, error) {
	summary, err := s.ProjectSummary(ctx, projectID)
	if err != nil {
		return nil, err
	}
	content, err := s.pdf.Generate(*summary)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		FileName: buildExportFileName(summary.Project, "pdf"),
		Content:  content,
	}, nil
}

func buildExportFileName(project model.Project, extension string) string {
	name := sanitizeFileName(project.Name)
	if name == "" {
		name = project.ID.String()
	}
	return fmt.Sprintf("billing-%s.%s", name, extension)
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= 'A' && r <= 'Z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "-")
}
