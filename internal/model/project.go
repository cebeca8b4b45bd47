package model

import (
	"time"

	"github.com/google/uuid"
)

type ProjectStatus string

const (
	ProjectStatusPlanning   ProjectStatus = "PLANNING"
	ProjectStatusInProgress ProjectStatus = "IN_PROGRESS"
	ProjectStatusCompleted  ProjectStatus = "COMPLETED"
	ProjectStatusCancelled  ProjectStatus = "CANCELLED"
)

type Project struct {
	ID   uuid.UUID
	Name string
	// PlannedQuantity is the contracted total in m², entered at planning
	// time. Forecast billing multiplies against it; it is never derived
	// from field data.
	PlannedQuantity float64
	Status          ProjectStatus
	CreatedAt       time.Time
}

// DailyReport is a field-production fact owned by the field-data collaborators.
// The billing core only reads it.
type DailyReport struct {
	ID             uuid.UUID
	ProjectID      uuid.UUID
	ReportDate     time.Time
	ExecutedAmount float64
	TonsApplied    float64
}

type SegmentStatus string

const (
	SegmentStatusPlanned    SegmentStatus = "PLANNED"
	SegmentStatusReleased   SegmentStatus = "RELEASED"
	SegmentStatusInProgress SegmentStatus = "IN_PROGRESS"
	SegmentStatusPaved      SegmentStatus = "PAVED"
	SegmentStatusCompleted  SegmentStatus = "COMPLETED"
)

// StreetSegment is the coarser per-street completion record, used as the
// executed-quantity fallback when no daily reports exist yet.
type StreetSegment struct {
	ID             uuid.UUID
	ProjectID      uuid.UUID
	Name           string
	Status         SegmentStatus
	ExecutedAmount float64
}

// ProjectProgress is the aggregated executed figure together with the
// per-street records behind the fallback path.
type ProjectProgress struct {
	ExecutedAmount float64
	Segments       []StreetSegment
}
