package response

import (
	"net/url"
	"strings"
)

// ContentDisposition builds an attachment header that keeps non-ASCII file names
// intact (RFC 6266 filename*), with an ASCII fallback for old clients.
func ContentDisposition(filename string) string {
	fallback := strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e || r == '"' || r == '\\' {
			return '_'
		}
		return r
	}, filename)
	encoded := strings.ReplaceAll(url.QueryEscape(filename), "+", "%20")
	return `attachment; filename="` + fallback + `"; filename*=UTF-8''` + encoded
}
