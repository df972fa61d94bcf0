package ingest

import (
	"strings"
	"time"

	"github.com/medstock/medstock/internal/medicinal/domain"
	"github.com/medstock/medstock/pkg/logger"
)

// Rows containing any of these markers are signature or footer lines, not
// stock data; they are skipped without counting toward the attempted total.
var skipKeywords = []string{"签名"}

// Record is one validated candidate produced from a classified data row.
type Record struct {
	Category    string
	Name        string
	BatchNumber string
	Spec        string
	Count       string
	Validity    time.Time
}

// Result summarizes one ingestion run. Attempted counts data rows that were
// evaluated; Accepted counts the subset that produced a Record.
type Result struct {
	Records   []Record
	Attempted int
	Accepted  int
}

func cellAt(row []string, columns ColumnMap, field string) string {
	idx, ok := columns.Column(field)
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func textOrSentinel(row []string, columns ColumnMap, field string) string {
	if v := cellAt(row, columns, field); v != "" {
		return v
	}
	return domain.SentinelEmpty
}

func isSkipRow(row []string) bool {
	for _, cell := range row {
		for _, kw := range skipKeywords {
			if strings.Contains(cell, kw) {
				return true
			}
		}
	}
	return false
}

// Ingest converts classified data rows into candidate records. Row-level
// failures are absorbed into the counters; they never abort the run.
func Ingest(rows [][]string, c Classification) Result {
	var res Result
	if !c.Found || c.DataFrom >= len(rows) {
		return res
	}

	category := c.Category
	if category == "" {
		category = domain.SentinelEmpty
	}

	for _, row := range rows[c.DataFrom:] {
		if nonEmptyCells(row) == 0 {
			continue
		}
		if isSkipRow(row) {
			continue
		}
		res.Attempted++

		name := cellAt(row, c.Columns, FieldName)
		if name == "" {
			logger.Logger.Warn().
				Strs("row", row).
				Msg("skipping row with empty name")
			continue
		}

		rawValidity := cellAt(row, c.Columns, FieldValidity)
		validity, err := ParseDate(rawValidity)
		if err != nil {
			if rawValidity == "无" {
				validity = NoValidityDate
			} else {
				logger.Logger.Warn().
					Str("name", name).
					Str("validity", rawValidity).
					Msg("skipping row with unparseable validity")
				continue
			}
		}

		res.Records = append(res.Records, Record{
			Category:    category,
			Name:        name,
			BatchNumber: textOrSentinel(row, c.Columns, FieldBatchNumber),
			Spec:        textOrSentinel(row, c.Columns, FieldSpec),
			Count:       textOrSentinel(row, c.Columns, FieldCount),
			Validity:    validity,
		})
		res.Accepted++
	}

	return res
}
