package command

import (
	"fmt"
	"time"

	"github.com/medstock/medstock/internal/medicinal/domain"
)

// CreateMedicinalCommand represents the command to create a catalog record
type CreateMedicinalCommand struct {
	Category    string
	Name        string
	BatchNumber string
	Spec        string
	Count       string
	Validity    time.Time
}

// CreateMedicinalHandler handles create medicinal command
type CreateMedicinalHandler struct {
	repo domain.MedicinalRepository
}

// NewCreateMedicinalHandler creates a new create medicinal handler
func NewCreateMedicinalHandler(repo domain.MedicinalRepository) *CreateMedicinalHandler {
	return &CreateMedicinalHandler{repo: repo}
}

func orSentinel(s string) string {
	if s == "" {
		return domain.SentinelEmpty
	}
	return s
}

// Handle executes the create medicinal command
func (h *CreateMedicinalHandler) Handle(cmd CreateMedicinalCommand) (*domain.Medicinal, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if cmd.Validity.IsZero() {
		return nil, fmt.Errorf("validity date is required")
	}

	m := &domain.Medicinal{
		Category:    orSentinel(cmd.Category),
		Name:        cmd.Name,
		BatchNumber: orSentinel(cmd.BatchNumber),
		Spec:        orSentinel(cmd.Spec),
		Count:       orSentinel(cmd.Count),
		Validity:    domain.DateOf(cmd.Validity),
	}

	if err := h.repo.Create(m); err != nil {
		if err == domain.ErrDuplicate {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create medicinal: %w", err)
	}

	return m, nil
}
