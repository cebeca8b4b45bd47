package model

import (
	"time"

	"github.com/google/uuid"
)

// ServiceCommitment is a priced catalog service attached to one project.
// UnitPrice and UnitKind are snapshots taken at attach time so later catalog
// edits never reprice history. LineTotal is always Quantity × UnitPrice and
// is recomputed together with any write that touches either factor.
type ServiceCommitment struct {
	ID           uuid.UUID
	ProjectID    uuid.UUID
	ServiceID    uuid.UUID
	ServiceName  string
	UnitKind     UnitKind
	UnitPrice    float64
	Quantity     float64
	LineTotal    float64
	Observations *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}
