package browser

import "strings"

// Cookie is one browser cookie taken from a raw Cookie header.
type Cookie struct {
	Name  string
	Value string
}

// ParseCookieHeader splits a raw Cookie header ("c_user=1; xs=abc") into
// discrete cookies. Entries without an equals sign are skipped and names and
// values are trimmed, so a header pasted straight from browser devtools
// works as-is. An empty header yields no cookies.
func ParseCookieHeader(header string) []Cookie {
	parts := strings.Split(header, ";")
	cookies := make([]Cookie, 0, len(parts))
	for _, part := range parts {
		name, value, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		cookies = append(cookies, Cookie{Name: name, Value: strings.TrimSpace(value)})
	}
	return cookies
}
