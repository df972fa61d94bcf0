package command

import (
	"fmt"

	"github.com/medstock/medstock/internal/admin/domain"
	"github.com/medstock/medstock/pkg/auth"
)

// CreateAdminCommand represents the command to create an admin account
type CreateAdminCommand struct {
	Username string
	Password string
	IsSys    bool
}

// CreateAdminHandler handles create admin command
type CreateAdminHandler struct {
	repo domain.AdminRepository
}

// NewCreateAdminHandler creates a new create admin handler
func NewCreateAdminHandler(repo domain.AdminRepository) *CreateAdminHandler {
	return &CreateAdminHandler{repo: repo}
}

// Handle executes the create admin command
func (h *CreateAdminHandler) Handle(cmd CreateAdminCommand) (*domain.Admin, error) {
	if cmd.Username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if len(cmd.Password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters")
	}

	if existing, _ := h.repo.FindByUsername(cmd.Username); existing != nil {
		return nil, fmt.Errorf("username already exists")
	}

	hash, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &domain.Admin{
		Username: cmd.Username,
		Password: hash,
		IsSys:    cmd.IsSys,
	}

	if err := h.repo.Create(admin); err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	return admin, nil
}
