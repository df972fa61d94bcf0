package command

import (
	"context"
	"fmt"

	"github.com/medstock/medstock/internal/admin/domain"
	"github.com/medstock/medstock/internal/admin/session"
	"github.com/medstock/medstock/pkg/auth"
)

// LoginAdminCommand represents the command to log an admin in
type LoginAdminCommand struct {
	Username string
	Password string
}

// LoginResponse represents the response after successful login
type LoginResponse struct {
	Token string        `json:"token"`
	Admin *domain.Admin `json:"admin"`
}

// LoginAdminHandler handles admin login command
type LoginAdminHandler struct {
	repo     domain.AdminRepository
	sessions *session.Store
}

// NewLoginAdminHandler creates a new login admin handler
func NewLoginAdminHandler(repo domain.AdminRepository, sessions *session.Store) *LoginAdminHandler {
	return &LoginAdminHandler{repo: repo, sessions: sessions}
}

// Handle executes the login admin command. The issued token is bound to a
// redis session so it can be revoked on logout.
func (h *LoginAdminHandler) Handle(ctx context.Context, cmd LoginAdminCommand) (*LoginResponse, error) {
	if cmd.Username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if cmd.Password == "" {
		return nil, fmt.Errorf("password is required")
	}

	admin, err := h.repo.FindByUsername(cmd.Username)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	if !auth.CheckPassword(admin.Password, cmd.Password) {
		return nil, fmt.Errorf("invalid credentials")
	}

	token, sessionID, err := auth.GenerateToken(admin.ID, admin.Username, admin.IsSys)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	if err := h.sessions.Create(ctx, sessionID, admin.ID, auth.TokenTTL); err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}

	return &LoginResponse{
		Token: token,
		Admin: admin,
	}, nil
}
