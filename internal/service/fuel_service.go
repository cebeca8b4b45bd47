package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/pavetrack/billing-service/internal/model"
)

type FuelStore interface {
	Create(ctx context.Context, p model.FuelPurchase) (*model.FuelPurchase, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.FuelPurchase, error)
	SetExpenseID(ctx context.Context, purchaseID, expenseID uuid.UUID) error
	UpdateAmounts(ctx context.Context, id uuid.UUID, liters, pricePerLiter, totalAmount float64) (int64, error)
	ListUnlinked(ctx context.Context) ([]model.FuelPurchase, error)
}

type ExpenseStore interface {
	Create(ctx context.Context, e model.Expense) (*model.Expense, error)
}

// FuelService records fuel purchases and links each project-bound purchase to
// exactly one generated ledger expense. The two writes are deliberately not
// transactional: a purchase whose expense failed stays recorded and queryable
// for repair.
type FuelService struct {
	fuel     FuelStore
	expenses ExpenseStore
	log      zerolog.Logger
}

func NewFuelService(fuel FuelStore, expenses ExpenseStore, log zerolog.Logger) *FuelService {
	return &FuelService{
		fuel:     fuel,
		expenses: expenses,
		log:      log,
	}
}

type RecordFuelPurchaseInput struct {
	EquipmentID   uuid.UUID
	ProjectID     *uuid.UUID
	Liters        float64
	PricePerLiter float64
	PurchaseDate  time.Time
	GasStation    string
	Odometer      *float64
	Observations  *string
}

// RecordFuelPurchase persists the purchase with total = liters × price, then,
// when a project is attached, creates the fuel expense and back-links it.
// An expense failure is reported via ErrExpenseLinkFailed together with the
// already-recorded purchase; it never rolls the purchase back.
func (s *FuelService) RecordFuelPurchase(ctx context.Context, input RecordFuelPurchaseInput) (*model.FuelPurchase, error) {
	if input.EquipmentID == uuid.Nil {
		return nil, fmt.Errorf("%w: equipment_id is required", ErrInvalidInput)
	}
	if input.Liters <= 0 {
		return nil, fmt.Errorf("%w: liters must be positive", ErrInvalidInput)
	}
	if input.PricePerLiter <= 0 {
		return nil, fmt.Errorf("%w: price_per_liter must be positive", ErrInvalidInput)
	}
	if input.GasStation == "" {
		return nil, fmt.Errorf("%w: gas_station is required", ErrInvalidInput)
	}

	purchaseDate := input.PurchaseDate
	if purchaseDate.IsZero() {
		purchaseDate = time.Now().UTC()
	}

	purchase, err := s.fuel.Create(ctx, model.FuelPurchase{
		EquipmentID:   input.EquipmentID,
		ProjectID:     input.ProjectID,
		Liters:        input.Liters,
		PricePerLiter: input.PricePerLiter,
		TotalAmount:   LineTotal(input.Liters, input.PricePerLiter),
		PurchaseDate:  purchaseDate,
		GasStation:    input.GasStation,
		Odometer:      input.Odometer,
		Observations:  input.Observations,
	})
	if err != nil {
		return nil, err
	}

	if purchase.ProjectID == nil {
		// general-use refueling, nothing to ledger
		return purchase, nil
	}

	if err := s.linkExpense(ctx, purchase); err != nil {
		s.log.Warn().
			Err(err).
			Str("fuel_purchase_id", purchase.ID.String()).
			Str("project_id", purchase.ProjectID.String()).
			Msg("fuel expense linkage failed")
		return purchase, fmt.Errorf("%w: %v", ErrExpenseLinkFailed, err)
	}
	return purchase, nil
}

func (s *FuelService) linkExpense(ctx context.Context, purchase *model.FuelPurchase) error {
	expense, err := s.expenses.Create(ctx, model.Expense{
		ProjectID:      *purchase.ProjectID,
		Category:       model.ExpenseFuel,
		Description:    fmt.Sprintf("Refueling - %s", purchase.GasStation),
		Amount:         purchase.TotalAmount,
		ExpenseDate:    purchase.PurchaseDate,
		EquipmentID:    &purchase.EquipmentID,
		FuelPurchaseID: &purchase.ID,
		Supplier:       &purchase.GasStation,
	})
	if err != nil {
		return err
	}
	if err := s.fuel.SetExpenseID(ctx, purchase.ID, expense.ID); err != nil {
		return err
	}
	purchase.ExpenseID = &expense.ID
	return nil
}

type UpdateFuelPurchaseInput struct {
	Liters        *float64
	PricePerLiter *float64
}

// UpdateFuelPurchase rewrites liters/price and recomputes the total from the
// effective pair. The linked expense amount is intentionally not
// resynchronized; that gap is a known limitation carried over from the
// original ledger behavior.
func (s *FuelService) UpdateFuelPurchase(ctx context.Context, id uuid.UUID, input UpdateFuelPurchaseInput) (*model.FuelPurchase, error) {
	current, err := s.fuel.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	liters := current.Liters
	if input.Liters != nil {
		liters = *input.Liters
	}
	price := current.PricePerLiter
	if input.PricePerLiter != nil {
		price = *input.PricePerLiter
	}
	if liters <= 0 {
		return nil, fmt.Errorf("%w: liters must be positive", ErrInvalidInput)
	}
	if price <= 0 {
		return nil, fmt.Errorf("%w: price_per_liter must be positive", ErrInvalidInput)
	}

	if _, err := s.fuel.UpdateAmounts(ctx, id, liters, price, LineTotal(liters, price)); err != nil {
		return nil, err
	}
	return s.fuel.GetByID(ctx, id)
}

// ListUnlinked exposes purchases in the partial-linkage state (project set,
// expense missing) so operators can reconcile them.
func (s *FuelService) ListUnlinked(ctx context.Context) ([]model.FuelPurchase, error) {
	return s.fuel.ListUnlinked(ctx)
}

// RelinkExpense re-runs the expense step for one purchase. Already-linked or
// general-use purchases are left alone.
func (s *FuelService) RelinkExpense(ctx context.Context, purchaseID uuid.UUID) (*model.FuelPurchase, error) {
	purchase, err := s.fuel.GetByID(ctx, purchaseID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if purchase.ProjectID == nil {
		return nil, fmt.Errorf("%w: purchase has no project", ErrInvalidInput)
	}
	if purchase.ExpenseID != nil {
		return purchase, nil
	}

	if err := s.linkExpense(ctx, purchase); err != nil {
		return purchase, fmt.Errorf("%w: %v", ErrExpenseLinkFailed, err)
	}
	return purchase, nil
}
