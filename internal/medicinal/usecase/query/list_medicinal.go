package query

import (
	"fmt"

	"github.com/medstock/medstock/internal/medicinal/domain"
)

// ListMedicinalQuery represents the paged catalog query
type ListMedicinalQuery struct {
	Keyword  string
	IsDel    bool
	Page     int
	PageSize int
}

// ListMedicinalResult carries one page plus the total match count
type ListMedicinalResult struct {
	List     []domain.Medicinal `json:"list"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}

// ListMedicinalHandler handles the paged catalog query
type ListMedicinalHandler struct {
	repo domain.MedicinalRepository
}

// NewListMedicinalHandler creates a new list medicinal handler
func NewListMedicinalHandler(repo domain.MedicinalRepository) *ListMedicinalHandler {
	return &ListMedicinalHandler{repo: repo}
}

// Handle executes the list medicinal query
func (h *ListMedicinalHandler) Handle(q ListMedicinalQuery) (*ListMedicinalResult, error) {
	if q.PageSize == 0 {
		q.PageSize = 30
	}
	if q.PageSize > 100 {
		q.PageSize = 100
	}
	if q.Page < 0 {
		q.Page = 0
	}

	filter := domain.ListFilter{
		Keyword:  q.Keyword,
		IsDel:    q.IsDel,
		Page:     q.Page,
		PageSize: q.PageSize,
	}

	list, total, err := h.repo.FindAll(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list medicinals: %w", err)
	}

	return &ListMedicinalResult{
		List:     list,
		Total:    total,
		Page:     q.Page,
		PageSize: q.PageSize,
	}, nil
}
