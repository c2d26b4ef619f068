package highlight

import "strings"

// Widen grows [start, start+length) to cover the first case-insensitive
// occurrence of any phrase that contains start. Phrases must already be
// lower-cased. When case folding changes the byte length of content, or no
// occurrence contains start, the span is returned unchanged.
func Widen(content string, start, length int, phrases []string) (int, int) {
	if len(phrases) == 0 {
		return start, length
	}
	lower := strings.ToLower(content)
	if len(lower) != len(content) {
		return start, length
	}

	for _, phrase := range phrases {
		if phrase == "" {
			continue
		}
		for from := 0; from < len(lower); {
			i := strings.Index(lower[from:], phrase)
			if i < 0 {
				break
			}
			occ := from + i
			if occ > start {
				break
			}
			if start < occ+len(phrase) {
				end := max(occ+len(phrase), start+length)
				return occ, end - occ
			}
			from = occ + 1
		}
	}
	return start, length
}
