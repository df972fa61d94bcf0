package query

import (
	"fmt"
	"time"

	"github.com/medstock/medstock/internal/medicinal/domain"
)

// ExpiringMedicinalQuery asks for the urgency bands as of now
type ExpiringMedicinalQuery struct {
	Days int
}

// ExpiringMedicinalResult holds the two mutually exclusive urgency bands
type ExpiringMedicinalResult struct {
	Expired []domain.Medicinal `json:"expired"`
	Soon    []domain.Medicinal `json:"soon"`
}

// ExpiringMedicinalHandler handles the on-demand expiry band query
type ExpiringMedicinalHandler struct {
	repo domain.MedicinalRepository
}

// NewExpiringMedicinalHandler creates a new expiring medicinal handler
func NewExpiringMedicinalHandler(repo domain.MedicinalRepository) *ExpiringMedicinalHandler {
	return &ExpiringMedicinalHandler{repo: repo}
}

// Handle executes the expiring medicinal query
func (h *ExpiringMedicinalHandler) Handle(q ExpiringMedicinalQuery) (*ExpiringMedicinalResult, error) {
	if q.Days <= 0 {
		q.Days = 30
	}
	now := time.Now()

	expired, err := h.repo.FindExpired(now)
	if err != nil {
		return nil, fmt.Errorf("failed to query expired medicinals: %w", err)
	}

	soon, err := h.repo.FindExpiringSoon(now, q.Days)
	if err != nil {
		return nil, fmt.Errorf("failed to query expiring medicinals: %w", err)
	}

	return &ExpiringMedicinalResult{Expired: expired, Soon: soon}, nil
}
