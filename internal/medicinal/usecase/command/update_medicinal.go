package command

import (
	"fmt"
	"time"

	"github.com/medstock/medstock/internal/medicinal/domain"
)

// UpdateMedicinalCommand represents the command to update a catalog record
type UpdateMedicinalCommand struct {
	ID          uint
	Category    string
	Name        string
	BatchNumber string
	Spec        string
	Count       string
	Validity    time.Time
}

// UpdateMedicinalHandler handles update medicinal command
type UpdateMedicinalHandler struct {
	repo domain.MedicinalRepository
}

// NewUpdateMedicinalHandler creates a new update medicinal handler
func NewUpdateMedicinalHandler(repo domain.MedicinalRepository) *UpdateMedicinalHandler {
	return &UpdateMedicinalHandler{repo: repo}
}

// Handle executes the update medicinal command
func (h *UpdateMedicinalHandler) Handle(cmd UpdateMedicinalCommand) (*domain.Medicinal, error) {
	m, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, fmt.Errorf("medicinal not found: %w", err)
	}

	if cmd.Name != "" {
		m.Name = cmd.Name
	}
	if cmd.Category != "" {
		m.Category = cmd.Category
	}
	if cmd.BatchNumber != "" {
		m.BatchNumber = cmd.BatchNumber
	}
	if cmd.Spec != "" {
		m.Spec = cmd.Spec
	}
	if cmd.Count != "" {
		m.Count = cmd.Count
	}
	if !cmd.Validity.IsZero() {
		m.Validity = domain.DateOf(cmd.Validity)
	}

	if err := h.repo.Update(m); err != nil {
		return nil, fmt.Errorf("failed to update medicinal: %w", err)
	}

	return m, nil
}
