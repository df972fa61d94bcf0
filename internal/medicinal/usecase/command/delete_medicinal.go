package command

import (
	"fmt"

	"github.com/medstock/medstock/internal/medicinal/domain"
)

// DeleteMedicinalHandler handles soft deletion of a catalog record
type DeleteMedicinalHandler struct {
	repo domain.MedicinalRepository
}

// NewDeleteMedicinalHandler creates a new delete medicinal handler
func NewDeleteMedicinalHandler(repo domain.MedicinalRepository) *DeleteMedicinalHandler {
	return &DeleteMedicinalHandler{repo: repo}
}

// Handle soft deletes a record; the row stays queryable for recovery.
func (h *DeleteMedicinalHandler) Handle(id uint) error {
	if _, err := h.repo.FindByID(id); err != nil {
		return fmt.Errorf("medicinal not found: %w", err)
	}
	if err := h.repo.SoftDelete(id); err != nil {
		return fmt.Errorf("failed to delete medicinal: %w", err)
	}
	return nil
}

// RecoverMedicinalHandler restores a soft-deleted catalog record
type RecoverMedicinalHandler struct {
	repo domain.MedicinalRepository
}

// NewRecoverMedicinalHandler creates a new recover medicinal handler
func NewRecoverMedicinalHandler(repo domain.MedicinalRepository) *RecoverMedicinalHandler {
	return &RecoverMedicinalHandler{repo: repo}
}

// Handle restores a soft-deleted record
func (h *RecoverMedicinalHandler) Handle(id uint) error {
	if _, err := h.repo.FindByID(id); err != nil {
		return fmt.Errorf("medicinal not found: %w", err)
	}
	if err := h.repo.Recover(id); err != nil {
		return fmt.Errorf("failed to recover medicinal: %w", err)
	}
	return nil
}
