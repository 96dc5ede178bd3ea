package sequence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/vsinha/prodseq/pkg/application/dto"
	"github.com/vsinha/prodseq/pkg/domain/entities"
	"github.com/vsinha/prodseq/pkg/domain/repositories"
	"github.com/vsinha/prodseq/pkg/infrastructure/events"
	"github.com/vsinha/prodseq/pkg/infrastructure/logging"
)

// ErrNoPartsForSelection is returned when the catalog has no part in the requested cell and family
var ErrNoPartsForSelection = errors.New("no parts found for selection")

// Exclusion reasons
const (
	ReasonBadDateColumn = "bad_date_column"
)

// MetricsRecorder receives per-recomputation measurements
type MetricsRecorder interface {
	RecordRecompute(cell, family string, state entities.StabilizerState, elapsed time.Duration)
	RecordExcluded(reason string)
	SetSequenceLength(cell, family string, n int)
}

// Request selects what to sequence and on which day
type Request struct {
	Cell   string
	Family string
	Today  time.Time
}

// Service runs the full sequencing pipeline for one cell and family selection
type Service struct {
	catalog    repositories.CatalogRepository
	demand     repositories.DemandRepository
	simulator  *Simulator
	containers *ContainerCalculator
	topN       int

	eventStore events.EventStore
	metrics    MetricsRecorder
	now        func() time.Time
}

// Option configures a Service
type Option func(*Service)

// WithEventStore publishes sequencing events to store
func WithEventStore(store events.EventStore) Option {
	return func(s *Service) { s.eventStore = store }
}

// WithMetrics records recompute measurements on m
func WithMetrics(m MetricsRecorder) Option {
	return func(s *Service) { s.metrics = m }
}

// WithTopN overrides the number of requirements shown
func WithTopN(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topN = n
		}
	}
}

// WithClock overrides the wall clock used for timings and event timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a sequencing service over loaded catalog and demand data
func NewService(
	catalog repositories.CatalogRepository,
	demand repositories.DemandRepository,
	lookAheadDays int,
	opts ...Option,
) *Service {
	s := &Service{
		catalog:    catalog,
		demand:     demand,
		simulator:  NewSimulator(lookAheadDays),
		containers: NewContainerCalculator(catalog),
		topN:       DefaultTopN,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Compute recomputes the production sequence for req, stabilized against the
// session's stored sequence. Recomputations sharing snapshots must be serialized.
func (s *Service) Compute(
	ctx context.Context,
	req Request,
	snapshots repositories.SnapshotRepository,
) (*dto.SequenceResult, error) {
	start := s.now()
	logger := logging.FromContext(ctx).WithFields(logrus.Fields{
		"cell":   req.Cell,
		"family": req.Family,
	})

	parts, err := s.catalog.GetPartsForSelection(req.Cell, req.Family)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve parts for %s/%s: %w", req.Cell, req.Family, err)
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("cell %q family %q: %w", req.Cell, req.Family, ErrNoPartsForSelection)
	}

	schema := s.demand.GetSchema()
	if schema == nil {
		return nil, fmt.Errorf("demand data not loaded")
	}

	result := &dto.SequenceResult{
		Cell:        req.Cell,
		Family:      req.Family,
		Today:       entities.CalendarDay(req.Today),
		RatePerHour: selectionRate(parts),
	}

	var shortages []entities.ShortageEvent
	for _, part := range parts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, ok := s.demand.GetDemandRecord(part.PartNumber)
		if !ok {
			continue
		}
		result.PartsAnalyzed++

		partEvents, err := s.simulator.Simulate(record, schema)
		if err != nil {
			s.exclude(result, logger, part.PartNumber, err)
			continue
		}
		shortages = append(shortages, partEvents...)
	}

	requirements := AggregateShortages(shortages)
	s.containers.Apply(requirements)
	result.Candidates = len(requirements)

	ranked := RankRequirements(requirements, s.topN)
	stabilizer := NewStabilizer(snapshots, s.topN)

	var previous *entities.SequenceSnapshot
	if stored, ok := snapshots.GetSnapshot(req.Today); ok && len(stored.Entries) > 0 {
		previous = stored
	}

	sequence, state, err := stabilizer.Stabilize(req.Today, ranked)
	if err != nil {
		return nil, err
	}

	result.State = state
	result.Requirements = s.decorate(sequence)
	result.ComputedAt = s.now()

	logger.WithFields(logrus.Fields{
		"state":        state.String(),
		"requirements": len(result.Requirements),
		"candidates":   result.Candidates,
		"excluded":     len(result.Excluded),
	}).Info("sequence recomputed")

	s.publish(logger, result, previous)
	if s.metrics != nil {
		s.metrics.RecordRecompute(req.Cell, req.Family, state, result.ComputedAt.Sub(start))
		s.metrics.SetSequenceLength(req.Cell, req.Family, len(result.Requirements))
	}

	return result, nil
}

// Cells returns the distinct catalog cells
func (s *Service) Cells() []string {
	return s.catalog.Cells()
}

// Families returns the distinct catalog families
func (s *Service) Families() []string {
	return s.catalog.Families()
}

// CellInfo returns the production rate per hour of a cell and family selection
func (s *Service) CellInfo(cell, family string) (decimal.Decimal, error) {
	parts, err := s.catalog.GetPartsForSelection(cell, family)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to resolve parts for %s/%s: %w", cell, family, err)
	}
	if len(parts) == 0 {
		return decimal.Zero, fmt.Errorf("cell %q family %q: %w", cell, family, ErrNoPartsForSelection)
	}
	return selectionRate(parts), nil
}

func (s *Service) exclude(result *dto.SequenceResult, logger logrus.FieldLogger, partNumber entities.PartNumber, err error) {
	result.Excluded = append(result.Excluded, dto.ExcludedPart{
		PartNumber: partNumber,
		Reason:     err.Error(),
	})
	logger.WithField("part", partNumber).WithError(err).Warn("part excluded from analysis")

	if s.metrics != nil {
		s.metrics.RecordExcluded(ReasonBadDateColumn)
	}
	s.append(logger, result, events.PartExcludedEvent, events.PartExcluded{
		Cell:       result.Cell,
		Family:     result.Family,
		PartNumber: partNumber,
		Reason:     err.Error(),
	})
}

// decorate numbers the sequence and copies catalog presentation attributes
func (s *Service) decorate(sequence []entities.ProductionRequirement) []entities.ProductionRequirement {
	out := make([]entities.ProductionRequirement, len(sequence))
	for i, req := range sequence {
		req.Rank = i + 1
		if part, err := s.catalog.GetPart(req.PartNumber); err == nil && part != nil {
			req.Color = part.Color
			req.Description = part.Description
		}
		out[i] = req
	}
	return out
}

func (s *Service) publish(logger logrus.FieldLogger, result *dto.SequenceResult, previous *entities.SequenceSnapshot) {
	s.append(logger, result, events.SequenceComputedEvent, events.SequenceComputed{
		Cell:         result.Cell,
		Family:       result.Family,
		Day:          result.Today,
		State:        result.State,
		Requirements: result.Requirements,
	})

	switch {
	case result.State == entities.PullAheadOverride:
		var pulled []entities.PartNumber
		for _, req := range result.Requirements {
			if req.Flags.PullAhead {
				pulled = append(pulled, req.PartNumber)
			}
		}
		s.append(logger, result, events.SequencePulledAheadEvent, events.SequencePulledAhead{
			Cell:           result.Cell,
			Family:         result.Family,
			Day:            result.Today,
			PreviousOrder:  snapshotOrder(previous),
			NewOrder:       partNumbers(result.Requirements),
			PulledAheadFor: pulled,
		})
	case result.State == entities.ActiveLocked && previous != nil:
		s.append(logger, result, events.SequenceLockedEvent, events.SequenceLocked{
			Cell:   result.Cell,
			Family: result.Family,
			Day:    result.Today,
			Order:  partNumbers(result.Requirements),
		})
	}
}

func (s *Service) append(logger logrus.FieldLogger, result *dto.SequenceResult, eventType string, data any) {
	if s.eventStore == nil {
		return
	}
	stream := events.StreamFor(result.Cell, result.Family)
	if err := s.eventStore.AppendEvent(stream, events.NewEvent(eventType, stream, data, s.now())); err != nil {
		logger.WithError(err).WithField("event", eventType).Warn("failed to publish event")
	}
}

// selectionRate returns the rate of the first part; every part of a cell shares it
func selectionRate(parts []*entities.Part) decimal.Decimal {
	if len(parts) == 0 {
		return decimal.Zero
	}
	return parts[0].RatePerHour
}

func partNumbers(reqs []entities.ProductionRequirement) []entities.PartNumber {
	out := make([]entities.PartNumber, len(reqs))
	for i, req := range reqs {
		out[i] = req.PartNumber
	}
	return out
}

func snapshotOrder(snapshot *entities.SequenceSnapshot) []entities.PartNumber {
	if snapshot == nil {
		return nil
	}
	out := make([]entities.PartNumber, len(snapshot.Entries))
	for i, entry := range snapshot.Entries {
		out[i] = entry.PartNumber
	}
	return out
}
