package ingest

import "strings"

// Semantic fields a header row can map to.
const (
	FieldName        = "name"
	FieldValidity    = "validity"
	FieldCount       = "count"
	FieldBatchNumber = "batch_number"
	FieldSpec        = "spec"
)

// Keyword sets matched case- and whitespace-insensitively against header
// cells. Real uploads label columns inconsistently, so matching is by
// substring against a few known spellings per field.
var headerKeywords = map[string][]string{
	FieldName:        {"药品", "名称", "药名", "项目", "型号"},
	FieldValidity:    {"有效期", "有效期至", "效期", "有效", "日期"},
	FieldCount:       {"数量", "基数", "数"},
	FieldBatchNumber: {"批号", "批号号"},
	FieldSpec:        {"规格"},
}

// ColumnMap maps a semantic field to its column index in the upload.
type ColumnMap map[string]int

// Column returns the mapped index for a field and whether it was found.
func (m ColumnMap) Column(field string) (int, bool) {
	i, ok := m[field]
	return i, ok
}

// Classification is the per-upload result of scanning for the category and
// header rows. When Found is false no data rows exist and ingestion yields
// zero attempted and zero accepted records; that is an empty result, not an
// error.
type Classification struct {
	Category string
	Columns  ColumnMap
	DataFrom int
	Found    bool
}

func nonEmptyCells(row []string) int {
	n := 0
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			n++
		}
	}
	return n
}

func matchField(cell string, field string) bool {
	cell = strings.ToLower(strings.Join(strings.Fields(cell), ""))
	if cell == "" {
		return false
	}
	for _, kw := range headerKeywords[field] {
		if strings.Contains(cell, kw) {
			return true
		}
	}
	return false
}

func findColumn(row []string, field string) (int, bool) {
	for i, cell := range row {
		if matchField(cell, field) {
			return i, true
		}
	}
	return 0, false
}

// isCategoryRow reports whether a row is a leading category label: a
// non-empty first cell with every other cell blank.
func isCategoryRow(row []string) bool {
	if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
		return false
	}
	for _, cell := range row[1:] {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Classify scans rows in order for an optional category row followed by a
// header row. The header is accepted once the name and validity keywords
// resolve to different columns; indices are fixed from that point on.
// Classify is pure: re-running it over the same rows yields the same result.
func Classify(rows [][]string) Classification {
	var c Classification

	for i, row := range rows {
		// Too narrow to be a category, header, or data row.
		if len(row) < 2 {
			continue
		}

		if c.Category == "" && isCategoryRow(row) {
			c.Category = strings.TrimSpace(row[0])
			continue
		}

		columns := ColumnMap{}
		for field := range headerKeywords {
			if idx, ok := findColumn(row, field); ok {
				columns[field] = idx
			}
		}

		nameIdx, hasName := columns.Column(FieldName)
		validityIdx, hasValidity := columns.Column(FieldValidity)
		if hasName && hasValidity && nameIdx != validityIdx {
			c.Columns = columns
			c.DataFrom = i + 1
			c.Found = true
			return c
		}
	}

	return c
}
