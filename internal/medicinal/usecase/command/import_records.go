package command

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/medstock/medstock/internal/ingest"
	"github.com/medstock/medstock/internal/medicinal/domain"
	"github.com/medstock/medstock/kafka"
	"github.com/medstock/medstock/pkg/logger"
)

// ErrUnsupportedFormat rejects uploads before any parsing is attempted.
var ErrUnsupportedFormat = errors.New("unsupported upload format, expected .csv")

// ImportSummary reports the outcome of one upload. Attempted counts data
// rows evaluated, Accepted the rows that passed validation, Created the
// records actually inserted (duplicates fail individually).
type ImportSummary struct {
	Category  string `json:"category"`
	Attempted int    `json:"attempted"`
	Accepted  int    `json:"accepted"`
	Created   int    `json:"created"`
}

// ImportEventPublisher mirrors the kafka publisher surface import needs.
type ImportEventPublisher interface {
	PublishImportCompleted(ctx context.Context, event kafka.ImportCompletedEvent) error
}

// tracedCreate is implemented by stores that trace inserts.
type tracedCreate interface {
	CreateWithContext(ctx context.Context, m *domain.Medicinal) error
}

// ImportRecordsHandler ingests a tabular upload into the catalog
type ImportRecordsHandler struct {
	repo   domain.MedicinalRepository
	events ImportEventPublisher // optional
}

// NewImportRecordsHandler creates a new import handler. events may be nil.
func NewImportRecordsHandler(repo domain.MedicinalRepository, events ImportEventPublisher) *ImportRecordsHandler {
	return &ImportRecordsHandler{repo: repo, events: events}
}

// Handle runs the full ingestion pipeline for one uploaded file: encoding
// normalization, row parsing, classification, per-row validation, and
// duplicate-tolerant inserts. Row-level failures are absorbed into the
// summary counters; only format and store errors abort the upload.
func (h *ImportRecordsHandler) Handle(ctx context.Context, filename string, data []byte) (*ImportSummary, error) {
	if strings.ToLower(filepath.Ext(filename)) != ".csv" {
		return nil, ErrUnsupportedFormat
	}

	rows, err := ingest.ReadRows(ingest.NormalizeEncoding(data))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	classification := ingest.Classify(rows)
	result := ingest.Ingest(rows, classification)

	summary := &ImportSummary{
		Category:  classification.Category,
		Attempted: result.Attempted,
		Accepted:  result.Accepted,
	}

	create := h.repo.Create
	if traced, ok := h.repo.(tracedCreate); ok {
		create = func(m *domain.Medicinal) error {
			return traced.CreateWithContext(ctx, m)
		}
	}

	for _, rec := range result.Records {
		m := &domain.Medicinal{
			Category:    rec.Category,
			Name:        rec.Name,
			BatchNumber: rec.BatchNumber,
			Spec:        rec.Spec,
			Count:       rec.Count,
			Validity:    domain.DateOf(rec.Validity),
		}
		if err := create(m); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				logger.Warn(ctx).
					Str("name", rec.Name).
					Str("batch_number", rec.BatchNumber).
					Msg("Skipping duplicate row")
				continue
			}
			return summary, fmt.Errorf("failed to insert row: %w", err)
		}
		summary.Created++
	}

	logger.Info(ctx).
		Str("filename", filename).
		Str("category", summary.Category).
		Int("attempted", summary.Attempted).
		Int("accepted", summary.Accepted).
		Int("created", summary.Created).
		Msg("Upload ingested")

	if h.events != nil {
		if err := h.events.PublishImportCompleted(ctx, kafka.ImportCompletedEvent{
			Filename:  filename,
			Category:  summary.Category,
			Attempted: summary.Attempted,
			Accepted:  summary.Accepted,
			Created:   summary.Created,
		}); err != nil {
			logger.Warn(ctx).Err(err).Msg("Failed to publish import event")
		}
	}

	return summary, nil
}
