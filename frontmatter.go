package mdparse

import "strings"

const frontMatterDelimiter = "---"

// SplitFrontMatter extracts a leading front-matter block delimited by "---"
// lines. The block is read as flat "key: value" pairs; nested structures and
// multi-line values are not supported. When the text has no complete block
// the metadata is empty and the text is returned unchanged. Delimiter lines
// may end in "\r"; other carriage returns are left in the body.
func SplitFrontMatter(text string) (map[string]string, string) {
	meta := make(map[string]string)

	lines := strings.Split(text, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], " \t\r") != frontMatterDelimiter {
		return meta, text
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], " \t\r") == frontMatterDelimiter {
			end = i
			break
		}
	}
	if end < 0 {
		return meta, text
	}

	for _, line := range lines[1:end] {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		key, value, found := strings.Cut(trimmed, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		meta[key] = unquote(strings.TrimSpace(value))
	}

	return meta, strings.Join(lines[end+1:], "\n")
}

// unquote removes one matching pair of surrounding quotes.
func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
