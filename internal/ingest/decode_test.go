package ingest

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEncoding_UTF8Passthrough(t *testing.T) {
	in := []byte("药品名称,有效期\n")
	assert.Equal(t, in, NormalizeEncoding(in))
}

func TestNormalizeEncoding_DecodesGBK(t *testing.T) {
	// "药品" in GBK
	in := []byte{0xD2, 0xA9, 0xC6, 0xB7}
	assert.Equal(t, []byte("药品"), NormalizeEncoding(in))
}

func TestNormalizeEncoding_GarbageYieldsValidUTF8(t *testing.T) {
	in := []byte{0xFF, 0xFE, 0x81, 0x00, 0xD2}
	out := NormalizeEncoding(in)
	assert.True(t, utf8.Valid(out))
}
