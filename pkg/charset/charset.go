// Package charset names the text encodings a roster file may be written in.
// Configuration validation and the roster loader share this table.
package charset

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var byName = map[string]encoding.Encoding{
	"utf-8":        unicode.UTF8BOM,
	"utf8":         unicode.UTF8BOM,
	"utf-16":       unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM),
	"windows-1254": charmap.Windows1254,
	"cp1254":       charmap.Windows1254,
	"iso-8859-9":   charmap.ISO8859_9,
	"latin5":       charmap.ISO8859_9,
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
	"iso-8859-1":   charmap.ISO8859_1,
	"latin1":       charmap.ISO8859_1,
}

// Lookup returns the encoding registered under name (case-insensitive).
func Lookup(name string) (encoding.Encoding, bool) {
	enc, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	return enc, ok
}

// Known reports whether name can be used as a candidate encoding.
func Known(name string) bool {
	_, ok := Lookup(name)
	return ok
}

// IsUTF8 reports whether name is one of the UTF-8 spellings.
func IsUTF8(name string) bool {
	enc, ok := Lookup(name)
	return ok && enc == unicode.UTF8BOM
}
