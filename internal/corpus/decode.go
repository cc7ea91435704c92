package corpus

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Encoding names reported by DecodeText.
const (
	EncodingUTF8 = "utf-8"
	EncodingCP51 = "windows-1251"
)

// DecodeText converts raw file bytes to a UTF-8 string. Valid UTF-8 passes
// through; anything else is decoded as Windows-1251, the dominant encoding
// of published Russian legal corpora. A leading BOM is dropped either way.
func DecodeText(data []byte) (string, string, error) {
	if utf8.Valid(data) {
		return strings.TrimPrefix(string(data), "\uFEFF"), EncodingUTF8, nil
	}
	decoded, err := charmap.Windows1251.NewDecoder().Bytes(data)
	if err != nil {
		return "", EncodingCP51, err
	}
	return strings.TrimPrefix(string(decoded), "\uFEFF"), EncodingCP51, nil
}
