// Package runewidth wraps terminal text by display width.
package runewidth

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

// listMarker matches the marker of a numbered or flagged report line so
// continuation lines hang under the text rather than the marker.
var listMarker = regexp.MustCompile(`^(\d+\.|!|-|\*) `)

// Wrap breaks every line of s longer than width display columns at word
// boundaries. Continuation lines keep the line's indentation, plus the
// width of a leading list marker. Words wider than width are left whole.
// A width of zero or less returns s unchanged.
func Wrap(s string, width int) string {
	if width <= 0 {
		return s
	}

	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, wrapLine(line, width)...)
	}
	return strings.Join(out, "\n")
}

func wrapLine(line string, width int) []string {
	if runewidth.StringWidth(line) <= width {
		return []string{line}
	}

	body := strings.TrimLeft(line, " \t")
	indent := line[:len(line)-len(body)]
	hang := indent
	if m := listMarker.FindString(body); m != "" {
		hang += strings.Repeat(" ", runewidth.StringWidth(m))
	}

	words := strings.Fields(body)
	if len(words) == 0 {
		return []string{line}
	}

	var (
		lines []string
		cur   strings.Builder
	)
	cur.WriteString(indent)
	curWidth := runewidth.StringWidth(indent)
	empty := true
	for _, w := range words {
		ww := runewidth.StringWidth(w)
		if !empty && curWidth+1+ww > width {
			lines = append(lines, cur.String())
			cur.Reset()
			cur.WriteString(hang)
			curWidth = runewidth.StringWidth(hang)
			empty = true
		}
		if !empty {
			cur.WriteByte(' ')
			curWidth++
		}
		cur.WriteString(w)
		curWidth += ww
		empty = false
	}
	return append(lines, cur.String())
}
