package query

import (
	"fmt"

	"github.com/medstock/medstock/internal/medicinal/domain"
)

// GetMedicinalHandler handles fetching a single catalog record
type GetMedicinalHandler struct {
	repo domain.MedicinalRepository
}

// NewGetMedicinalHandler creates a new get medicinal handler
func NewGetMedicinalHandler(repo domain.MedicinalRepository) *GetMedicinalHandler {
	return &GetMedicinalHandler{repo: repo}
}

// Handle fetches a record by id
func (h *GetMedicinalHandler) Handle(id uint) (*domain.Medicinal, error) {
	m, err := h.repo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("medicinal not found: %w", err)
	}
	return m, nil
}
