package binder

import (
	"strconv"
	"strings"
)

// EscapeIdentifier escapes value for use as a CSS identifier, following the
// CSSOM CSS.escape() algorithm. The result can be placed after "#" in a
// selector and matches exactly the element whose id is value.
func EscapeIdentifier(value string) string {
	runes := []rune(value)
	var b strings.Builder
	b.Grow(len(value) + 8)

	for idx, r := range runes {
		switch {
		case r == 0:
			b.WriteRune('\uFFFD')
		case (r >= 0x1 && r <= 0x1F) || r == 0x7F,
			idx == 0 && isDigit(r),
			idx == 1 && isDigit(r) && runes[0] == '-':
			writeCodePoint(&b, r)
		case idx == 0 && r == '-' && len(runes) == 1:
			b.WriteString(`\-`)
		case r >= 0x80 || r == '-' || r == '_' || isDigit(r) || isLetter(r):
			b.WriteRune(r)
		default:
			b.WriteByte('\\')
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IDSelector returns the "#id" selector for elementID.
func IDSelector(elementID string) string {
	return "#" + EscapeIdentifier(elementID)
}

func writeCodePoint(b *strings.Builder, r rune) {
	b.WriteByte('\\')
	b.WriteString(strconv.FormatInt(int64(r), 16))
	b.WriteByte(' ')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
