package services

import (
	"bytes"
	"sort"
	"unicode/utf16"
)

// CanonicalRecord is the flat set of fields a signature binds. A nil value
// is an absent field and encodes as null.
type CanonicalRecord map[string]*string

const hexDigits = "0123456789abcdef"

// EncodeCanonical is the single encoding used by both Generate and Verify:
//
//	{"a": "x", "b": null}
//
// Keys are sorted by code point, separators are ", " and ": ", and every
// byte outside printable ASCII is written as a \uXXXX escape (lowercase hex,
// surrogate pairs above the BMP). Only short escapes for \" \\ \n \r \t \b \f
// are used.
func EncodeCanonical(rec CanonicalRecord) []byte {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteString(", ")
		}
		writeString(&buf, k)
		buf.WriteString(": ")
		if v := rec[k]; v == nil {
			buf.WriteString("null")
		} else {
			writeString(&buf, *v)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes()
}

func writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		default:
			switch {
			case r >= 0x20 && r <= 0x7e:
				buf.WriteByte(byte(r))
			case r > 0xffff:
				hi, lo := utf16.EncodeRune(r)
				writeUnicodeEscape(buf, hi)
				writeUnicodeEscape(buf, lo)
			default:
				writeUnicodeEscape(buf, r)
			}
		}
	}
	buf.WriteByte('"')
}

func writeUnicodeEscape(buf *bytes.Buffer, r rune) {
	buf.WriteString(`\u`)
	buf.WriteByte(hexDigits[(r>>12)&0xf])
	buf.WriteByte(hexDigits[(r>>8)&0xf])
	buf.WriteByte(hexDigits[(r>>4)&0xf])
	buf.WriteByte(hexDigits[r&0xf])
}
