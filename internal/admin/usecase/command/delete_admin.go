package command

import (
	"fmt"

	"github.com/medstock/medstock/internal/admin/domain"
)

// DeleteAdminHandler handles soft deletion of an admin account
type DeleteAdminHandler struct {
	repo domain.AdminRepository
}

// NewDeleteAdminHandler creates a new delete admin handler
func NewDeleteAdminHandler(repo domain.AdminRepository) *DeleteAdminHandler {
	return &DeleteAdminHandler{repo: repo}
}

// Handle soft deletes an admin. System accounts cannot be deleted.
func (h *DeleteAdminHandler) Handle(id uint) error {
	admin, err := h.repo.FindByID(id)
	if err != nil {
		return fmt.Errorf("admin not found: %w", err)
	}

	if admin.IsSys {
		return fmt.Errorf("system account cannot be deleted")
	}

	if err := h.repo.SoftDelete(id); err != nil {
		return fmt.Errorf("failed to delete admin: %w", err)
	}
	return nil
}
