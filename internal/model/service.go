package model

import (
	"time"

	"github.com/google/uuid"
)

type ServiceCategory string

const (
	CategoryPaving         ServiceCategory = "PAVING"
	CategoryPriming        ServiceCategory = "PRIMING"
	CategoryWaterproofing  ServiceCategory = "WATERPROOFING"
	CategoryMobilization   ServiceCategory = "MOBILIZATION"
	CategoryDemobilization ServiceCategory = "DEMOBILIZATION"
	CategoryOther          ServiceCategory = "OTHER"
)

func (c ServiceCategory) Valid() bool {
	switch c {
	case CategoryPaving, CategoryPriming, CategoryWaterproofing,
		CategoryMobilization, CategoryDemobilization, CategoryOther:
		return true
	}
	return false
}

type UnitKind string

const (
	UnitSquareMeter UnitKind = "M2"
	UnitCubicMeter  UnitKind = "M3"
	UnitTon         UnitKind = "TON"
	UnitDaily       UnitKind = "DAILY"
	UnitTrip        UnitKind = "TRIP"
	UnitService     UnitKind = "SERVICE"
)

// RateBased reports whether the unit prices work that scales with measured
// field progress. The remaining kinds are fixed fees earned in full once
// committed.
func (u UnitKind) RateBased() bool {
	switch u {
	case UnitSquareMeter, UnitCubicMeter, UnitTon:
		return true
	}
	return false
}

func (u UnitKind) Valid() bool {
	switch u {
	case UnitSquareMeter, UnitCubicMeter, UnitTon, UnitDaily, UnitTrip, UnitService:
		return true
	}
	return false
}

// ServiceDefinition is a catalog entry for a billable service. Definitions
// are soft-deleted only: commitments keep referencing them for display after
// deactivation.
type ServiceDefinition struct {
	ID          uuid.UUID
	Name        string
	Description *string
	Category    ServiceCategory
	DefaultUnit UnitKind
	BasePrice   *float64
	Active      bool
	CreatedAt   time.Time
	DeletedAt   *time.Time
}
