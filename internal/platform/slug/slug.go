package slug

import (
	"strings"
	"unicode"
)

const maxRunes = 64

// Make turns a display name into a file-name safe slug. Letters and digits
// from any script survive lower-cased; every other run of runes becomes one
// hyphen. Names with nothing usable yield "untitled".
func Make(name string) string {
	var b strings.Builder
	pendingHyphen := false
	n := 0
	for _, r := range strings.TrimSpace(name) {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			pendingHyphen = b.Len() > 0
			continue
		}
		need := 1
		if pendingHyphen {
			need = 2
		}
		if n+need > maxRunes {
			break
		}
		if pendingHyphen {
			b.WriteByte('-')
			n++
			pendingHyphen = false
		}
		b.WriteRune(unicode.ToLower(r))
		n++
	}
	if b.Len() == 0 {
		return "untitled"
	}
	return b.String()
}
