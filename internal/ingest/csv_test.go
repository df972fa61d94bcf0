package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRows_StripsBOMAndTrims(t *testing.T) {
	data := []byte("\xef\xbb\xbf药品 , 有效期 \n 阿莫西林,2026-01-01\n")

	rows, err := ReadRows(data)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"药品", "有效期"}, rows[0])
	assert.Equal(t, []string{"阿莫西林", "2026-01-01"}, rows[1])
}

func TestReadRows_RaggedRows(t *testing.T) {
	data := []byte("a,b,c\nd\ne,f\n")

	rows, err := ReadRows(data)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Len(t, rows[0], 3)
	assert.Len(t, rows[1], 1)
	assert.Len(t, rows[2], 2)
}

func TestReadRows_LazyQuotes(t *testing.T) {
	data := []byte("name,note\npill,a \"stray\" quote\n")

	rows, err := ReadRows(data)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, `a "stray" quote`, rows[1][1])
}
