package model

import (
	"time"

	"github.com/google/uuid"
)

type ExpenseCategory string

const (
	ExpenseFuel        ExpenseCategory = "FUEL"
	ExpenseMaterials   ExpenseCategory = "MATERIALS"
	ExpenseMaintenance ExpenseCategory = "MAINTENANCE"
	ExpenseOther       ExpenseCategory = "OTHER"
)

// FuelPurchase records one refueling of a piece of equipment. TotalAmount is
// always Liters × PricePerLiter. When the purchase is tied to a project,
// ExpenseID points at the ledger expense generated for it; a purchase with
// ProjectID set and ExpenseID nil is a detectable partial-linkage state.
type FuelPurchase struct {
	ID            uuid.UUID
	EquipmentID   uuid.UUID
	ProjectID     *uuid.UUID
	Liters        float64
	PricePerLiter float64
	TotalAmount   float64
	PurchaseDate  time.Time
	GasStation    string
	Odometer      *float64
	Observations  *string
	ExpenseID     *uuid.UUID
	CreatedAt     time.Time
}

// Expense is a project ledger entry. Fuel expenses are created exclusively by
// the fuel linker and carry a back-reference to their purchase.
type Expense struct {
	ID             uuid.UUID
	ProjectID      uuid.UUID
	Category       ExpenseCategory
	Description    string
	Amount         float64
	ExpenseDate    time.Time
	EquipmentID    *uuid.UUID
	FuelPurchaseID *uuid.UUID
	Supplier       *string
	CreatedAt      time.Time
}

// ExpenseCategoryTotal is a per-category aggregate for the billing summary.
type ExpenseCategoryTotal struct {
	Category ExpenseCategory
	Total    float64
}
