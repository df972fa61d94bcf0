package ingest

import (
	"fmt"
	"strings"
	"time"
)

// NoValidityDate is substituted when a validity cell reads "无" (none):
// such stock is treated as effectively non-expiring.
var NoValidityDate = time.Date(2099, 12, 31, 0, 0, 0, 0, time.Local)

var dateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	"2006/01/02",
	"2006/1/2",
	"2006.01.02",
	"2006.1.2",
	"20060102",
	"2006年01月02日",
	"2006年1月2日",
	"2006年01月",
	"2006年1月",
	"2006-01",
	"2006/01",
}

// ParseDate parses a validity cell using a permissive layout list.
// Month-only values resolve to the first day of that month.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
