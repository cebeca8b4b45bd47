package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pavetrack/billing-service/internal/model"
)

type CommitmentStore interface {
	Create(ctx context.Context, c model.ServiceCommitment) (*model.ServiceCommitment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.ServiceCommitment, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.ServiceCommitment, error)
	UpdatePricing(ctx context.Context, id uuid.UUID, quantity, unitPrice, lineTotal float64, observations *string) (int64, error)
	SoftDelete(ctx context.Context, id uuid.UUID) (int64, error)
}

type DefinitionResolver interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.ServiceDefinition, error)
}

// CommitmentService manages priced service instances attached to projects and
// keeps their line totals synchronized with the field-progress signal.
type CommitmentService struct {
	store    CommitmentStore
	catalog  DefinitionResolver
	progress ExecutedAmountSource
}

func NewCommitmentService(store CommitmentStore, catalog DefinitionResolver, progress ExecutedAmountSource) *CommitmentService {
	return &CommitmentService{
		store:    store,
		catalog:  catalog,
		progress: progress,
	}
}

type AttachInput struct {
	ProjectID uuid.UUID
	ServiceID uuid.UUID
	// UnitKind and UnitPrice override the catalog defaults when set.
	UnitKind     *model.UnitKind
	UnitPrice    *float64
	Quantity     float64
	Observations *string
}

// Attach creates a commitment from a catalog definition, snapshotting name,
// unit and price so later catalog edits never reprice it. Fixed-fee kinds
// require a positive quantity up front; rate-based kinds start from whatever
// the aggregator currently reports for the project, possibly zero.
func (s *CommitmentService) Attach(ctx context.Context, input AttachInput) (*model.ServiceCommitment, error) {
	if input.ProjectID == uuid.Nil {
		return nil, fmt.Errorf("%w: project_id is required", ErrInvalidInput)
	}

	def, err := s.catalog.GetByID(ctx, input.ServiceID)
	if err != nil {
		if err == gorm.ErrRecordNotFound || err == ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	unitKind := def.DefaultUnit
	if input.UnitKind != nil {
		unitKind = *input.UnitKind
	}
	if !unitKind.Valid() {
		return nil, fmt.Errorf("%w: invalid unit kind", ErrInvalidInput)
	}

	unitPrice := 0.0
	if def.BasePrice != nil {
		unitPrice = *def.BasePrice
	}
	if input.UnitPrice != nil {
		unitPrice = *input.UnitPrice
	}
	if unitPrice < 0 {
		return nil, fmt.Errorf("%w: unit price must not be negative", ErrInvalidInput)
	}

	quantity := input.Quantity
	if unitKind.RateBased() {
		executed, err := s.progress.ExecutedAmount(ctx, input.ProjectID)
		if err != nil {
			return nil, err
		}
		quantity = executed
	} else if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	return s.store.Create(ctx, model.ServiceCommitment{
		ProjectID:    input.ProjectID,
		ServiceID:    def.ID,
		ServiceName:  def.Name,
		UnitKind:     unitKind,
		UnitPrice:    unitPrice,
		Quantity:     quantity,
		LineTotal:    LineTotal(quantity, unitPrice),
		Observations: input.Observations,
	})
}

type EditInput struct {
	Quantity     *float64
	UnitPrice    *float64
	Observations *string
}

// Edit patches quantity, price or observations. The line total is recomputed
// and written in the same statement as its factors. An empty observations
// string clears the field.
func (s *CommitmentService) Edit(ctx context.Context, id uuid.UUID, input EditInput) (*model.ServiceCommitment, error) {
	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	quantity := current.Quantity
	if input.Quantity != nil {
		quantity = *input.Quantity
	}
	unitPrice := current.UnitPrice
	if input.UnitPrice != nil {
		unitPrice = *input.UnitPrice
	}
	observations := current.Observations
	if input.Observations != nil {
		if *input.Observations == "" {
			observations = nil
		} else {
			observations = input.Observations
		}
	}

	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", ErrInvalidInput)
	}
	if !current.UnitKind.RateBased() && quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if unitPrice < 0 {
		return nil, fmt.Errorf("%w: unit price must not be negative", ErrInvalidInput)
	}

	if _, err := s.store.UpdatePricing(ctx, id, quantity, unitPrice, LineTotal(quantity, unitPrice), observations); err != nil {
		return nil, err
	}
	return s.store.GetByID(ctx, id)
}

func (s *CommitmentService) Remove(ctx context.Context, id uuid.UUID) error {
	rows, err := s.store.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *CommitmentService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.ServiceCommitment, error) {
	return s.store.ListByProject(ctx, projectID)
}

// RecalculateForProject pins every rate-based commitment of the project to
// the given executed amount. Fixed-fee commitments are untouched. Quantities
// are compared before writing, so running it twice with the same figure does
// not produce a second round of writes. Returns the number of rows updated.
func (s *CommitmentService) RecalculateForProject(ctx context.Context, projectID uuid.UUID, executedAmount float64) (int, error) {
	if executedAmount < 0 {
		return 0, fmt.Errorf("%w: executed amount must not be negative", ErrInvalidInput)
	}

	commitments, err := s.store.ListByProject(ctx, projectID)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, c := range commitments {
		if !c.UnitKind.RateBased() {
			continue
		}
		if c.Quantity == executedAmount {
			continue
		}
		total := LineTotal(executedAmount, c.UnitPrice)
		if _, err := s.store.UpdatePricing(ctx, c.ID, executedAmount, c.UnitPrice, total, c.Observations); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}

// SyncProject reads the aggregator and pushes its figure into the project's
// commitments. This is the hook collaborators call when new field data lands.
func (s *CommitmentService) SyncProject(ctx context.Context, projectID uuid.UUID) (int, error) {
	executed, err := s.progress.ExecutedAmount(ctx, projectID)
	if err != nil {
		return 0, err
	}
	return s.RecalculateForProject(ctx, projectID, executed)
}
