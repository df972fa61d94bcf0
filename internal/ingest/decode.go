package ingest

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"

	"github.com/medstock/medstock/pkg/logger"
)

// NormalizeEncoding converts a legacy GBK byte stream to UTF-8. Region-made
// spreadsheet exports commonly save CSV in GBK; data that is already valid
// UTF-8 is returned untouched. Decoding is best-effort: unmappable sequences
// are replaced, never fatal.
func NormalizeEncoding(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}

	decoder := simplifiedchinese.GBK.NewDecoder()
	decoded, _, err := transform.Bytes(decoder, data)
	if err != nil {
		// The GBK decoder substitutes U+FFFD for bad sequences and keeps
		// going; an error here still leaves usable output.
		logger.Logger.Warn().
			Err(err).
			Int("size", len(data)).
			Msg("GBK decode hit unmappable sequences, continuing with replacement")
	}
	if len(decoded) == 0 {
		return data
	}
	return bytes.ToValidUTF8(decoded, []byte("�"))
}
