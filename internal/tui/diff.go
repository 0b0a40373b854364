package tui

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"fobs/pkg/obstable"
)

// changedLines returns the indexes of the lines of after that are new or
// modified relative to before.
func changedLines(before, after obstable.Document) map[int]bool {
	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(terminated(before), terminated(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArray)

	changed := map[int]bool{}
	line := 0
	for _, d := range diffs {
		n := strings.Count(d.Text, "\n")
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			for i := 0; i < n; i++ {
				changed[line+i] = true
			}
			line += n
		case diffmatchpatch.DiffEqual:
			line += n
		}
	}
	return changed
}

// terminated joins doc with every line ending in '\n', so the last line
// compares equal to an identical line in the middle of a document.
func terminated(doc obstable.Document) string {
	var b strings.Builder
	for _, l := range doc {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return b.String()
}
