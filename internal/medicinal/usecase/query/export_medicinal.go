package query

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/medstock/medstock/internal/medicinal/domain"
)

const exportSheet = "Sheet1"

// Header labels match the spreadsheets the import side understands, so an
// exported file round-trips through the upload pipeline.
var exportHeaders = []string{"药箱", "药品名称", "批号", "规格", "数量", "有效期"}

// ExportMedicinalHandler renders the catalog as an xlsx workbook
type ExportMedicinalHandler struct {
	repo domain.MedicinalRepository
}

// NewExportMedicinalHandler creates a new export medicinal handler
func NewExportMedicinalHandler(repo domain.MedicinalRepository) *ExportMedicinalHandler {
	return &ExportMedicinalHandler{repo: repo}
}

// Handle builds a workbook with every active record
func (h *ExportMedicinalHandler) Handle() (*excelize.File, error) {
	list, _, err := h.repo.FindAll(domain.ListFilter{IsDel: false, PageSize: -1})
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog for export: %w", err)
	}

	f := excelize.NewFile()
	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, m := range list {
		values := []interface{}{
			m.Category,
			m.Name,
			m.BatchNumber,
			m.Spec,
			m.Count,
			m.Validity.Format("2006-01-02"),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("failed to address cell: %w", err)
			}
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	return f, nil
}
