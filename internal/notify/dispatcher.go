package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/medstock/medstock/internal/medicinal/domain"
	"github.com/medstock/medstock/internal/sms"
	"github.com/medstock/medstock/kafka"
	"github.com/medstock/medstock/pkg/logger"
)

// RenotifyCooldown is how long a record stays silenced after a dispatch.
// The watermark is deliberately written as dispatch time + cooldown, i.e. a
// suppress-until instant rather than a last-seen one: scans compare it
// against their own now, so a record notified mid-cycle cannot be picked up
// again until the window lapses. If the bulk update fails the watermark
// stays stale and the record is re-notified on a later cycle; delivery is
// at-least-once by design.
const RenotifyCooldown = 24 * time.Hour

// Band labels an urgency class in outbound messages.
type Band string

const (
	BandExpired Band = "expired"
	BandSoon    Band = "expiring_soon"
)

func (b Band) label() string {
	if b == BandExpired {
		return "已过期"
	}
	return "即将过期"
}

// EventPublisher mirrors the kafka publisher surface the dispatcher needs.
type EventPublisher interface {
	PublishExpiryAlert(ctx context.Context, event kafka.ExpiryAlertEvent) error
}

// tracedMark is implemented by stores that trace the watermark update.
type tracedMark interface {
	MarkNotifiedWithContext(ctx context.Context, ids []uint, watermark time.Time) error
}

// Dispatcher converts scan results into queued notifications and advances
// the notify watermark for every record it managed to enqueue.
type Dispatcher struct {
	repo   domain.MedicinalRepository
	queue  *Queue
	events EventPublisher // optional
	cfg    Config
	now    func() time.Time
}

// NewDispatcher creates a new notification dispatcher. events may be nil.
func NewDispatcher(repo domain.MedicinalRepository, queue *Queue, events EventPublisher, cfg Config) *Dispatcher {
	return &Dispatcher{
		repo:   repo,
		queue:  queue,
		events: events,
		cfg:    cfg,
		now:    time.Now,
	}
}

func (d *Dispatcher) message(m domain.Medicinal, band Band) sms.Message {
	return sms.Message{
		Phones:       d.cfg.Phones,
		TemplateCode: d.cfg.TemplateCode,
		SignName:     d.cfg.SignName,
		Param: sms.Param{
			Name: fmt.Sprintf("%s:%s(%s)", band.label(), m.Name, m.Category),
			Code: fmt.Sprintf("%s/%s", m.BatchNumber, m.Validity.Format("2006-01-02")),
		},
	}
}

// Dispatch enqueues one message per candidate and returns how many were
// handed off. The watermark update covers enqueued candidates only, so a
// failed enqueue leaves that record eligible for the next cycle.
func (d *Dispatcher) Dispatch(ctx context.Context, candidates []domain.Medicinal, band Band) int {
	if len(candidates) == 0 {
		return 0
	}

	enqueued := make([]uint, 0, len(candidates))
	for _, m := range candidates {
		if err := d.queue.Enqueue(d.message(m, band)); err != nil {
			logger.Error(ctx).
				Err(err).
				Uint("id", m.ID).
				Str("band", string(band)).
				Msg("Failed to enqueue notification")
			continue
		}
		enqueued = append(enqueued, m.ID)
		notificationsEnqueued.WithLabelValues(string(band)).Inc()

		if d.events != nil {
			if err := d.events.PublishExpiryAlert(ctx, kafka.ExpiryAlertEvent{
				MedicinalID: m.ID,
				Name:        m.Name,
				BatchNumber: m.BatchNumber,
				Category:    m.Category,
				Validity:    m.Validity.Format("2006-01-02"),
				Band:        string(band),
			}); err != nil {
				logger.Warn(ctx).Err(err).Uint("id", m.ID).Msg("Failed to publish expiry alert event")
			}
		}
	}

	if len(enqueued) > 0 {
		watermark := d.now().Add(RenotifyCooldown)
		mark := d.repo.MarkNotified
		if traced, ok := d.repo.(tracedMark); ok {
			mark = func(ids []uint, w time.Time) error {
				return traced.MarkNotifiedWithContext(ctx, ids, w)
			}
		}
		if err := mark(enqueued, watermark); err != nil {
			// Stale watermark: these records will be re-scanned and possibly
			// re-notified next cycle.
			logger.Error(ctx).
				Err(err).
				Int("batch", len(enqueued)).
				Msg("Failed to advance notify watermark")
		}
	}

	logger.Info(ctx).
		Str("band", string(band)).
		Int("candidates", len(candidates)).
		Int("enqueued", len(enqueued)).
		Msg("Notifications dispatched")

	return len(enqueued)
}
