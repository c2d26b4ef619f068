package highlight

import "strings"

// Preview is the window of content shown around one match.
//
// 0 <= Start <= MatchStart <= MatchEnd <= End <= len(content).
type Preview struct {
	Start      int
	MatchStart int
	MatchEnd   int
	End        int

	// Leading and Trailing report whether text was cut on that side.
	Leading  bool
	Trailing bool
}

// Bounds computes the preview window for [start, start+length) of content.
func Bounds(content string, start, length int) Preview {
	s, e := Span(content, start, length)
	p := Preview{MatchStart: s, MatchEnd: e}
	p.Start, p.Leading = scanBack(content, s)
	p.End, p.Trailing = scanForward(content, e)
	return p
}

// scanBack moves left from start one word at a time. A '.' closer than the
// nearest space ends the scan just after the dot.
func scanBack(content string, start int) (int, bool) {
	pos := start
	for range maxWordsBefore {
		if pos < 2 {
			return 0, false
		}
		head := content[:pos-1]
		space := strings.LastIndexByte(head, ' ')
		dot := strings.LastIndexByte(head, '.')

		if dot > 0 && dot > space {
			return dot + 1, false
		}
		if space < 0 {
			return 0, false
		}
		pos = space + 1
	}
	return pos, true
}

// scanForward moves right from end one word at a time. A '.' closer than the
// next space ends the scan at the dot.
func scanForward(content string, end int) (int, bool) {
	pos := end
	for range maxWordsAfter {
		space, dot := -1, -1
		if from := pos + 1; from <= len(content) {
			if i := strings.IndexByte(content[from:], ' '); i >= 0 {
				space = from + i
			}
			if i := strings.IndexByte(content[from:], '.'); i >= 0 {
				dot = from + i
			}
		}

		if dot > 0 && dot < space {
			return dot, false
		}
		if space < 0 {
			return len(content), false
		}
		pos = space
	}
	return pos, true
}

// Render composes the preview with the match wrapped in highlight markup.
func (p Preview) Render(content string) string {
	var b strings.Builder
	b.Grow(p.End - p.Start + len(OpenTag) + len(CloseTag) + len(LeadingEllipsis) + len(TrailingEllipsis))

	if p.Leading {
		b.WriteString(LeadingEllipsis)
	}
	b.WriteString(content[p.Start:p.MatchStart])
	b.WriteString(OpenTag)
	b.WriteString(content[p.MatchStart:p.MatchEnd])
	b.WriteString(CloseTag)
	b.WriteString(content[p.MatchEnd:p.End])
	if p.Trailing {
		b.WriteString(TrailingEllipsis)
	}
	return b.String()
}
