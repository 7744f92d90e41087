// Package resolver serves the configuration resolver over the table loaded at
// startup, adding logging and metrics around every query.
package resolver

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/ktg84478/erovista/internal/domain"
	"github.com/ktg84478/erovista/internal/observability"
)

const (
	opCapacity = "capacity"
	opSizes    = "sizes"
	opValues   = "values"

	outcomeHit     = "hit"
	outcomeMiss    = "miss"
	outcomeInvalid = "invalid"
	outcomeError   = "error"
)

// Service answers resolver queries against one immutable reference table.
type Service struct {
	table   atomic.Pointer[domain.Table]
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Service with no table installed. It is not ready until Install is called.
func New(logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{logger: logger, metrics: metrics}
}

// Install sets the table the service answers from. It is called once at startup.
func (s *Service) Install(t *domain.Table) {
	s.table.Store(t)
	s.metrics.DatasetRows.Set(float64(t.Len()))
	s.metrics.DatasetLoaded.Set(1)
	s.logger.Info("reference table installed", "rows", t.Len(), "materials", t.Materials())
}

// CheckReadiness returns nil once a non-empty table is installed.
func (s *Service) CheckReadiness(_ context.Context) error {
	t := s.table.Load()
	if t == nil {
		return errors.New("reference table not loaded")
	}
	if t.Len() == 0 {
		return errors.New("reference table is empty")
	}
	return nil
}

// Materials returns the materials of the installed table.
func (s *Service) Materials() []string {
	return s.current().Materials()
}

// RowCount returns the number of normalized rows in the installed table.
func (s *Service) RowCount() int {
	return s.current().Len()
}

// LookupCapacity runs a capacity lookup (exact five-field match).
func (s *Service) LookupCapacity(ctx context.Context, key domain.CapacityKey) ([]domain.MaterialCapacity, error) {
	start := time.Now()
	res, err := s.current().LookupCapacity(key)
	outcome := outcomeHit
	if err == nil {
		outcome = outcomeMiss
		for _, mc := range res {
			if mc.Status != domain.StatusNoMatch {
				outcome = outcomeHit
				break
			}
		}
	}
	s.observe(ctx, opCapacity, start, outcome, err,
		"mount_type", key.MountType,
		"fixture_configuration", key.FixtureConfiguration,
		"pole_size", key.PoleSize,
		"pole_height_ft", key.PoleHeightFt,
		"wind_speed_mph", key.WindSpeedMPH,
	)
	return res, err
}

// ResolveSizes runs a size resolution against a minimum EPA.
func (s *Service) ResolveSizes(ctx context.Context, q domain.SizeQuery) ([]domain.MaterialSizes, error) {
	start := time.Now()
	res, err := s.current().ResolveSizes(q)
	outcome := outcomeHit
	if err == nil {
		outcome = outcomeMiss
		for _, ms := range res {
			if ms.Status == domain.StatusSolved {
				outcome = outcomeHit
				break
			}
		}
	}
	s.observe(ctx, opSizes, start, outcome, err,
		"mount_type", q.MountType,
		"fixture_configuration", q.FixtureConfiguration,
		"pole_height_ft", q.PoleHeightFt,
		"wind_speed_mph", q.WindSpeedMPH,
		"min_epa", q.MinEPA,
	)
	return res, err
}

// AllowedValues lists the legal values for field given the upstream selection.
func (s *Service) AllowedValues(ctx context.Context, field domain.Field, sel domain.Selection) ([]string, error) {
	start := time.Now()
	res, err := s.current().AllowedValues(field, sel)
	outcome := outcomeHit
	if err == nil && len(res) == 0 {
		outcome = outcomeMiss
	}
	s.observe(ctx, opValues, start, outcome, err, "field", field.String(), "values", len(res))
	return res, err
}

// current returns the installed table, or an empty one before Install.
func (s *Service) current() *domain.Table {
	if t := s.table.Load(); t != nil {
		return t
	}
	return &domain.Table{}
}

func (s *Service) observe(ctx context.Context, op string, start time.Time, outcome string, err error, attrs ...any) {
	s.metrics.ResolverDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	attrs = append(attrs, "operation", op)
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		outcome = outcomeInvalid
		s.logger.WarnContext(ctx, "resolver rejected input", append(attrs, "error", err)...)
	case err != nil:
		outcome = outcomeError
		s.logger.ErrorContext(ctx, "resolver failed", append(attrs, "error", err)...)
	default:
		s.logger.DebugContext(ctx, "resolver query", append(attrs, "outcome", outcome)...)
	}
	s.metrics.ResolverRequests.WithLabelValues(op, outcome).Inc()
}
