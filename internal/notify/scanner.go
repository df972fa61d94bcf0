package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/medstock/medstock/internal/medicinal/domain"
	"github.com/medstock/medstock/pkg/logger"
)

// Scanner partitions active stock into the two urgency bands. Records whose
// notify watermark has not lapsed are excluded by the store queries, so a
// scan inside the cooldown window returns nothing for already-notified rows.
type Scanner struct {
	repo domain.MedicinalRepository
}

// tracedScans is implemented by stores that trace their scan queries.
type tracedScans interface {
	FindExpiredWithContext(ctx context.Context, now time.Time) ([]domain.Medicinal, error)
	FindExpiringSoonWithContext(ctx context.Context, now time.Time, days int) ([]domain.Medicinal, error)
}

// NewScanner creates a new expiry scanner
func NewScanner(repo domain.MedicinalRepository) *Scanner {
	return &Scanner{repo: repo}
}

// Scan returns the expired and soon-to-expire bands as of now. The bands are
// mutually exclusive: expiry takes precedence, and the store's soon query
// starts at the following calendar day.
func (s *Scanner) Scan(ctx context.Context, now time.Time, horizonDays int) ([]domain.Medicinal, []domain.Medicinal, error) {
	var (
		expired, soon []domain.Medicinal
		err           error
	)

	if traced, ok := s.repo.(tracedScans); ok {
		expired, err = traced.FindExpiredWithContext(ctx, now)
	} else {
		expired, err = s.repo.FindExpired(now)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query expired band: %w", err)
	}

	if traced, ok := s.repo.(tracedScans); ok {
		soon, err = traced.FindExpiringSoonWithContext(ctx, now, horizonDays)
	} else {
		soon, err = s.repo.FindExpiringSoon(now, horizonDays)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query expiring band: %w", err)
	}

	logger.Debug(ctx).
		Int("expired", len(expired)).
		Int("soon", len(soon)).
		Int("horizon_days", horizonDays).
		Msg("Expiry scan completed")

	return expired, soon, nil
}
