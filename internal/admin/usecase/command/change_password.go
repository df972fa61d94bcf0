package command

import (
	"fmt"

	"github.com/medstock/medstock/internal/admin/domain"
	"github.com/medstock/medstock/pkg/auth"
)

// ChangePasswordCommand represents the command to change an admin password
type ChangePasswordCommand struct {
	AdminID     uint
	OldPassword string
	NewPassword string
}

// ChangePasswordHandler handles change password command
type ChangePasswordHandler struct {
	repo domain.AdminRepository
}

// NewChangePasswordHandler creates a new change password handler
func NewChangePasswordHandler(repo domain.AdminRepository) *ChangePasswordHandler {
	return &ChangePasswordHandler{repo: repo}
}

// Handle executes the change password command
func (h *ChangePasswordHandler) Handle(cmd ChangePasswordCommand) error {
	if len(cmd.NewPassword) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}

	admin, err := h.repo.FindByID(cmd.AdminID)
	if err != nil {
		return fmt.Errorf("admin not found: %w", err)
	}

	if !auth.CheckPassword(admin.Password, cmd.OldPassword) {
		return fmt.Errorf("invalid credentials")
	}

	hash, err := auth.HashPassword(cmd.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin.Password = hash
	if err := h.repo.Update(admin); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
