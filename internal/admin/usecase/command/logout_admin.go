package command

import (
	"context"
	"fmt"

	"github.com/medstock/medstock/internal/admin/session"
)

// LogoutAdminHandler handles admin logout command
type LogoutAdminHandler struct {
	sessions *session.Store
}

// NewLogoutAdminHandler creates a new logout admin handler
func NewLogoutAdminHandler(sessions *session.Store) *LogoutAdminHandler {
	return &LogoutAdminHandler{sessions: sessions}
}

// Handle revokes the session backing the presented token
func (h *LogoutAdminHandler) Handle(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("session id is required")
	}
	if err := h.sessions.Revoke(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to log out: %w", err)
	}
	return nil
}
