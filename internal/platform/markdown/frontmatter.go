package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const fence = "---"

// SplitFrontmatter separates a leading YAML block fenced by "---" lines from
// the markdown body. Content without an opening fence is all body. CRLF line
// endings are normalized first so files edited on Windows parse the same.
func SplitFrontmatter(content string) (map[string]any, string, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	header, rest, ok := strings.Cut(content, "\n")
	if !ok || strings.TrimRight(header, " \t") != fence {
		return map[string]any{}, content, nil
	}

	var raw strings.Builder
	for rest != "" {
		line, next, more := strings.Cut(rest, "\n")
		if strings.TrimRight(line, " \t") == fence {
			meta := map[string]any{}
			if err := yaml.Unmarshal([]byte(raw.String()), &meta); err != nil {
				return nil, "", fmt.Errorf("unmarshal frontmatter: %w", err)
			}
			if !more {
				next = ""
			}
			return meta, next, nil
		}
		raw.WriteString(line)
		raw.WriteByte('\n')
		rest = next
	}
	return nil, "", fmt.Errorf("invalid frontmatter: no closing %q line", fence)
}

// RenderFrontmatter writes meta as a fenced YAML block followed by a blank
// line and body.
func RenderFrontmatter(meta map[string]any, body string) (string, error) {
	var buf bytes.Buffer
	buf.WriteString(fence + "\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(meta); err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}
	buf.WriteString(fence + "\n")
	if !strings.HasPrefix(body, "\n") {
		buf.WriteByte('\n')
	}
	buf.WriteString(body)
	return buf.String(), nil
}
