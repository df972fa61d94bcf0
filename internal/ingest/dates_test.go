package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate_Layouts(t *testing.T) {
	cases := []struct {
		in       string
		expected time.Time
	}{
		{"2026-01-02", time.Date(2026, 1, 2, 0, 0, 0, 0, time.Local)},
		{"2026-1-2", time.Date(2026, 1, 2, 0, 0, 0, 0, time.Local)},
		{"2026/01/02", time.Date(2026, 1, 2, 0, 0, 0, 0, time.Local)},
		{"2026.1.2", time.Date(2026, 1, 2, 0, 0, 0, 0, time.Local)},
		{"20260102", time.Date(2026, 1, 2, 0, 0, 0, 0, time.Local)},
		{"2026年01月02日", time.Date(2026, 1, 2, 0, 0, 0, 0, time.Local)},
		{"2026年1月2日", time.Date(2026, 1, 2, 0, 0, 0, 0, time.Local)},
		{" 2026-01-02 ", time.Date(2026, 1, 2, 0, 0, 0, 0, time.Local)},
	}

	for _, tc := range cases {
		got, err := ParseDate(tc.in)
		require.NoError(t, err, "ParseDate(%q)", tc.in)
		assert.True(t, got.Equal(tc.expected), "ParseDate(%q) = %v", tc.in, got)
	}
}

func TestParseDate_MonthOnlyResolvesToFirstDay(t *testing.T) {
	for _, in := range []string{"2026-05", "2026/05", "2026年5月", "2026年05月"} {
		got, err := ParseDate(in)
		require.NoError(t, err, "ParseDate(%q)", in)
		assert.True(t, got.Equal(time.Date(2026, 5, 1, 0, 0, 0, 0, time.Local)), "ParseDate(%q) = %v", in, got)
	}
}

func TestParseDate_Rejects(t *testing.T) {
	for _, in := range []string{"", "   ", "无", "not-a-date", "2026年"} {
		_, err := ParseDate(in)
		assert.Error(t, err, "ParseDate(%q)", in)
	}
}
