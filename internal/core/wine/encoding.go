package wine

import (
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DecodeOutput converts raw bytes captured from a wine child into UTF-8
// text. Wine's reg.exe writes UTF-16LE with a BOM; other tools emit plain
// UTF-8 or Windows-1252. Decoding is best-effort: on a transform failure
// the raw bytes are returned as-is.
func DecodeOutput(data []byte) string {
	if enc := bomEncoding(data); enc != nil {
		decoded, _, err := transform.Bytes(enc.NewDecoder(), data)
		if err == nil {
			return string(decoded)
		}
		return string(data)
	}

	if utf8.Valid(data) {
		return string(data)
	}

	// No BOM and not UTF-8: assume the Windows default code page.
	decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}

// bomEncoding sniffs a UTF-16 byte order mark
func bomEncoding(data []byte) encoding.Encoding {
	if len(data) < 2 {
		return nil
	}
	if data[0] == 0xFF && data[1] == 0xFE {
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	}
	if data[0] == 0xFE && data[1] == 0xFF {
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	}
	return nil
}
