package importer

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeText normalizes raw file bytes to UTF-8 and reports the encoding
// that was used. A UTF-8 byte order mark is stripped (spreadsheet tools
// commonly write one). Bytes that are not valid UTF-8 are assumed to come
// from a legacy Windows-1252 export, the usual case for steel cut lists
// saved from older spreadsheet software; ISO 8859-1 is the final
// fallback since every byte sequence decodes under it.
func DecodeText(data []byte) ([]byte, string) {
	if bytes.HasPrefix(data, utf8BOM) {
		return bytes.TrimPrefix(data, utf8BOM), "utf-8-sig"
	}
	if utf8.Valid(data) {
		return data, "utf-8"
	}

	if decoded, err := charmap.Windows1252.NewDecoder().Bytes(data); err == nil {
		return decoded, "windows-1252"
	}
	decoded, _ := charmap.ISO8859_1.NewDecoder().Bytes(data)
	return decoded, "iso-8859-1"
}
