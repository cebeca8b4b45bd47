package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pavetrack/billing-service/internal/model"
)

type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(ctx context.Context, e model.Expense) (*model.Expense, error) {
	var saved model.Expense
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO expenses
			(project_id, category, description, amount, expense_date, equipment_id, fuel_purchase_id, supplier)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING
			id,
			project_id,
			category,
			description,
			amount,
			expense_date,
			equipment_id,
			fuel_purchase_id,
			supplier,
			created_at
	`, e.ProjectID, e.Category, e.Description, e.Amount, e.ExpenseDate, e.EquipmentID, e.FuelPurchaseID, e.Supplier).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *ExpenseRepository) SumByCategory(ctx context.Context, projectID uuid.UUID) ([]model.ExpenseCategoryTotal, error) {
	var totals []model.ExpenseCategoryTotal
	if err := r.db.WithContext(ctx).Raw(`
		SELECT category, COALESCE(SUM(amount), 0) AS total
		FROM expenses
		WHERE project_id = ?
		GROUP BY category
		ORDER BY category ASC
	`, projectID).Scan(&totals).Error; err != nil {
		return nil, err
	}
	return totals, nil
}
