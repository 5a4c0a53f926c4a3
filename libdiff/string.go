package libdiff

import (
	"strconv"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// String renders a character level diff of two strings, deletions as [-x-]
// and insertions as {+y+}. When more than half of the text changed the old and
// new values are shown instead.
func String(from, to string) string {
	dmp := diffpatch.New()
	doMultiLine := strings.Contains(from, "\n") && strings.Contains(to, "\n")
	diffs := dmp.DiffMain(from, to, doMultiLine)
	diffs = dmp.DiffCleanupSemantic(diffs)
	diffSize := 0
	for _, d := range diffs {
		if d.Type != diffpatch.DiffEqual {
			diffSize += len(d.Text)
		}
	}
	if diffSize > max(len(from), len(to))/2 {
		return strconv.Quote(from) + " -> " + strconv.Quote(to)
	}
	var buf strings.Builder
	buf.WriteByte('"')
	for _, d := range diffs {
		q := strconv.Quote(d.Text)
		txt := q[1 : len(q)-1]
		switch d.Type {
		case diffpatch.DiffDelete:
			buf.WriteString("[-" + txt + "-]")
		case diffpatch.DiffInsert:
			buf.WriteString("{+" + txt + "+}")
		default:
			buf.WriteString(txt)
		}
	}
	buf.WriteByte('"')
	return buf.String()
}
