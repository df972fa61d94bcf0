package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_CategoryThenHeader(t *testing.T) {
	rows := [][]string{
		{"类目A", "", "", ""},
		{"药品名称", "批号", "规格", "数量", "有效期"},
		{"阿莫西林", "B123", "0.25g", "20", "2026-01-01"},
	}

	c := Classify(rows)
	require.True(t, c.Found)
	assert.Equal(t, "类目A", c.Category)
	assert.Equal(t, 2, c.DataFrom)

	nameIdx, ok := c.Columns.Column(FieldName)
	require.True(t, ok)
	assert.Equal(t, 0, nameIdx)

	validityIdx, ok := c.Columns.Column(FieldValidity)
	require.True(t, ok)
	assert.Equal(t, 4, validityIdx)

	batchIdx, ok := c.Columns.Column(FieldBatchNumber)
	require.True(t, ok)
	assert.Equal(t, 1, batchIdx)

	specIdx, ok := c.Columns.Column(FieldSpec)
	require.True(t, ok)
	assert.Equal(t, 2, specIdx)

	countIdx, ok := c.Columns.Column(FieldCount)
	require.True(t, ok)
	assert.Equal(t, 3, countIdx)
}

func TestClassify_HeaderWithoutCategory(t *testing.T) {
	rows := [][]string{
		{"项目", "有效期至"},
		{"碘伏", "2025-06"},
	}

	c := Classify(rows)
	require.True(t, c.Found)
	assert.Empty(t, c.Category)
	assert.Equal(t, 1, c.DataFrom)
}

func TestClassify_SameColumnForNameAndValidity(t *testing.T) {
	// "药品有效期" matches both keyword sets in one cell; without a second
	// column resolving the other field, no header exists.
	rows := [][]string{
		{"药品有效期", "数量"},
		{"阿莫西林", "20"},
	}

	c := Classify(rows)
	assert.False(t, c.Found)
}

func TestClassify_NarrowRowsSkipped(t *testing.T) {
	rows := [][]string{
		{"某某医院"},
		{"药品名称", "有效期"},
		{"纱布", "2027-03-01"},
	}

	c := Classify(rows)
	require.True(t, c.Found)
	// Single-cell rows cannot be category rows; the category stays unset.
	assert.Empty(t, c.Category)
	assert.Equal(t, 2, c.DataFrom)
}

func TestClassify_NoHeaderAnywhere(t *testing.T) {
	rows := [][]string{
		{"a", "b", "c"},
		{"1", "2", "3"},
	}

	c := Classify(rows)
	assert.False(t, c.Found)
	assert.Equal(t, 0, c.DataFrom)
}

func TestClassify_Deterministic(t *testing.T) {
	rows := [][]string{
		{"急救箱", ""},
		{"药品", "批号", "有效期"},
		{"布洛芬", "X1", "2026-05-01"},
	}

	first := Classify(rows)
	second := Classify(rows)
	assert.Equal(t, first, second)
}
