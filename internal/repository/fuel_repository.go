package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pavetrack/billing-service/internal/model"
)

type FuelRepository struct {
	db *gorm.DB
}

func NewFuelRepository(db *gorm.DB) *FuelRepository {
	return &FuelRepository{db: db}
}

const fuelPurchaseColumns = `
	id,
	equipment_id,
	project_id,
	liters,
	price_per_liter,
	total_amount,
	purchase_date,
	gas_station,
	odometer,
	observations,
	expense_id,
	created_at
`

func (r *FuelRepository) Create(ctx context.Context, p model.FuelPurchase) (*model.FuelPurchase, error) {
	var saved model.FuelPurchase
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO fuel_purchases
			(equipment_id, project_id, liters, price_per_liter, total_amount, purchase_date, gas_station, odometer, observations)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+fuelPurchaseColumns+`
	`, p.EquipmentID, p.ProjectID, p.Liters, p.PricePerLiter, p.TotalAmount, p.PurchaseDate, p.GasStation, p.Odometer, p.Observations).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *FuelRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.FuelPurchase, error) {
	var p model.FuelPurchase
	if err := r.db.WithContext(ctx).Raw(`
		SELECT `+fuelPurchaseColumns+`
		FROM fuel_purchases
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&p).Error; err != nil {
		return nil, err
	}
	if p.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r *FuelRepository) SetExpenseID(ctx context.Context, purchaseID, expenseID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE fuel_purchases
		SET expense_id = ?
		WHERE id = ?
	`, expenseID, purchaseID).Error
}

// UpdateAmounts rewrites liters, price and the recomputed total in one
// statement. The linked expense is deliberately left alone.
func (r *FuelRepository) UpdateAmounts(ctx context.Context, id uuid.UUID, liters, pricePerLiter, totalAmount float64) (int64, error) {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE fuel_purchases
		SET liters = ?, price_per_liter = ?, total_amount = ?
		WHERE id = ?
	`, liters, pricePerLiter, totalAmount, id)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ListUnlinked returns purchases that should carry a project expense but do
// not, so operators can re-run the linkage for them.
func (r *FuelRepository) ListUnlinked(ctx context.Context) ([]model.FuelPurchase, error) {
	var purchases []model.FuelPurchase
	if err := r.db.WithContext(ctx).Raw(`
		SELECT `+fuelPurchaseColumns+`
		FROM fuel_purchases
		WHERE project_id IS NOT NULL AND expense_id IS NULL
		ORDER BY purchase_date ASC, created_at ASC
	`).Scan(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}
