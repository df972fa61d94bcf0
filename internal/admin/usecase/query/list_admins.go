package query

import (
	"fmt"

	"github.com/medstock/medstock/internal/admin/domain"
)

// ListAdminsQuery represents the query to list admin accounts
type ListAdminsQuery struct {
	Limit  int
	Offset int
}

// ListAdminsHandler handles list admins query
type ListAdminsHandler struct {
	repo domain.AdminRepository
}

// NewListAdminsHandler creates a new list admins handler
func NewListAdminsHandler(repo domain.AdminRepository) *ListAdminsHandler {
	return &ListAdminsHandler{repo: repo}
}

// Handle executes the list admins query
func (h *ListAdminsHandler) Handle(q ListAdminsQuery) ([]domain.Admin, error) {
	if q.Limit == 0 {
		q.Limit = 30
	}
	if q.Limit > 100 {
		q.Limit = 100
	}

	admins, err := h.repo.FindAll(q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}

	return admins, nil
}
