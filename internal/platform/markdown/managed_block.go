package markdown

import "strings"

// A managed block is the text between a start and an end marker that the
// program owns and regenerates; everything around it belongs to the user.

// ReplaceManagedBlock swaps the block's content for generated, appending a
// new block after the body when the markers are absent or out of order.
func ReplaceManagedBlock(body, startMarker, endMarker, generated string) string {
	block := startMarker + "\n" + generated + "\n" + endMarker
	if before, after, ok := cutBlock(body, startMarker, endMarker); ok {
		return before + block + after
	}
	switch {
	case strings.TrimSpace(body) == "":
		return block + "\n"
	case strings.HasSuffix(body, "\n"):
		return body + "\n" + block + "\n"
	default:
		return body + "\n\n" + block + "\n"
	}
}

// ManagedBlock returns the block's content without its markers.
func ManagedBlock(body, startMarker, endMarker string) (string, bool) {
	_, afterStart, ok := strings.Cut(body, startMarker)
	if !ok {
		return "", false
	}
	inner, _, ok := strings.Cut(afterStart, endMarker)
	if !ok {
		return "", false
	}
	return strings.Trim(inner, "\n"), true
}

// cutBlock returns the text before the start marker and after the end marker.
func cutBlock(body, startMarker, endMarker string) (string, string, bool) {
	start := strings.Index(body, startMarker)
	if start < 0 {
		return "", "", false
	}
	end := strings.Index(body[start:], endMarker)
	if end < 0 {
		return "", "", false
	}
	return body[:start], body[start+end+len(endMarker):], true
}
