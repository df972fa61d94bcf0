package repository

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/medstock/medstock/internal/medicinal/domain"
)

var tracer = otel.Tracer("medicinal-repository")

// GormMedicinalRepositoryWithTracing wraps GormMedicinalRepository with tracing
type GormMedicinalRepositoryWithTracing struct {
	*GormMedicinalRepository
}

// NewGormMedicinalRepositoryWithTracing creates a new repository with tracing
func NewGormMedicinalRepositoryWithTracing(db *gorm.DB) *GormMedicinalRepositoryWithTracing {
	return &GormMedicinalRepositoryWithTracing{
		GormMedicinalRepository: NewGormMedicinalRepository(db),
	}
}

// CreateWithContext traces a create including its duplicate check
func (r *GormMedicinalRepositoryWithTracing) CreateWithContext(ctx context.Context, m *domain.Medicinal) error {
	_, span := tracer.Start(ctx, "repository.Create",
		trace.WithAttributes(
			attribute.String("medicinal.name", m.Name),
			attribute.String("medicinal.category", m.Category),
			attribute.String("medicinal.batch_number", m.BatchNumber),
		),
	)
	defer span.End()

	err := r.GormMedicinalRepository.Create(m)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.Int("medicinal.id", int(m.ID)))
	return nil
}

// FindExpiredWithContext traces an expired-band scan query
func (r *GormMedicinalRepositoryWithTracing) FindExpiredWithContext(ctx context.Context, now time.Time) ([]domain.Medicinal, error) {
	_, span := tracer.Start(ctx, "repository.FindExpired")
	defer span.End()

	list, err := r.GormMedicinalRepository.FindExpired(now)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("medicinal.expired_count", len(list)))
	return list, nil
}

// FindExpiringSoonWithContext traces a soon-band scan query
func (r *GormMedicinalRepositoryWithTracing) FindExpiringSoonWithContext(ctx context.Context, now time.Time, days int) ([]domain.Medicinal, error) {
	_, span := tracer.Start(ctx, "repository.FindExpiringSoon",
		trace.WithAttributes(attribute.Int("medicinal.horizon_days", days)),
	)
	defer span.End()

	list, err := r.GormMedicinalRepository.FindExpiringSoon(now, days)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("medicinal.soon_count", len(list)))
	return list, nil
}

// MarkNotifiedWithContext traces the bulk watermark update
func (r *GormMedicinalRepositoryWithTracing) MarkNotifiedWithContext(ctx context.Context, ids []uint, watermark time.Time) error {
	_, span := tracer.Start(ctx, "repository.MarkNotified",
		trace.WithAttributes(attribute.Int("medicinal.batch_size", len(ids))),
	)
	defer span.End()

	if err := r.GormMedicinalRepository.MarkNotified(ids, watermark); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
