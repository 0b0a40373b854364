package rewrite

import "fobs/pkg/obstable"

// LineRewriter lets you copy or transform a document at the granularity of
// whole lines, walking it once from top to bottom.
type LineRewriter interface {
	// CopyLinesUntil writes original lines up to lineIndex-1 unchanged,
	// positioning the scanner at lineIndex.
	CopyLinesUntil(lineIndex int)

	// ReplaceLine consumes the current original line and writes newLines
	// (each without a trailing '\n') in its place.
	ReplaceLine(newLines []string)

	// CopyRemainingLines writes all leftover original lines.
	CopyRemainingLines()

	// Line returns the current original line, false at EOF.
	Line() (string, bool)

	// LineNo returns the 0-based index of the current original line.
	LineNo() int

	// Document returns the rewritten document.
	Document() obstable.Document
}

var _ LineRewriter = (*ScannerRewriter)(nil)

// LineFunc transforms one selected line into the lines that replace it.
// Returning the line itself leaves it unchanged.
type LineFunc func(line string) []string

// RangeSpec selects the lines a LineFunc is applied to. The zero value
// selects every line of the document.
type RangeSpec struct {
	// First marks a candidate start of range. Nil matches every line.
	First *Pattern
	// Last marks the end of range. Nil matches no line, so the range
	// extends to the end of the document.
	Last *Pattern
	// Line must also match for an in-range line to be transformed.
	// Nil matches every line.
	Line *Pattern
	// MatchOccurrence is the 1-based match of First that starts the range.
	// Values below 1 mean 1.
	MatchOccurrence int
	// SkipCount lines, counted from the start line itself, are passed
	// through before transformation begins.
	SkipCount int
	// ExcludeLast leaves the line matching Last untouched.
	ExcludeLast bool
}

func (s RangeSpec) startsAt(line string) bool {
	return s.First == nil || s.First.MatchString(line)
}

func (s RangeSpec) endsAt(line string) bool {
	return s.Last != nil && s.Last.MatchString(line)
}

func (s RangeSpec) selects(line string) bool {
	return s.Line == nil || s.Line.MatchString(line)
}

func (s RangeSpec) occurrence() int {
	if s.MatchOccurrence < 1 {
		return 1
	}
	return s.MatchOccurrence
}

// Apply runs fn over the lines of doc selected by spec and returns the
// rewritten document. doc itself is never modified.
//
// Lines before the chosen occurrence of First are copied. SkipCount lines
// starting at that occurrence are copied next. From there every line
// matching Line is transformed until a line matching Last closes the range;
// that line is transformed too unless ExcludeLast is set. The rest of the
// document is copied.
func Apply(doc obstable.Document, fn LineFunc, spec RangeSpec) obstable.Document {
	rw := NewScannerRewriter(doc)
	if start, ok := rangeStart(doc, spec); ok {
		rw.CopyLinesUntil(start + max(spec.SkipCount, 0))
		transformRange(rw, fn, spec)
	}
	rw.CopyRemainingLines()
	return rw.Document()
}

// rangeStart returns the index of the line that opens the range.
func rangeStart(doc obstable.Document, spec RangeSpec) (int, bool) {
	counter := 1
	for i, line := range doc {
		if !spec.startsAt(line) {
			continue
		}
		if counter < spec.occurrence() {
			counter++
			continue
		}
		return i, true
	}
	return 0, false
}

func transformRange(rw LineRewriter, fn LineFunc, spec RangeSpec) {
	for {
		line, ok := rw.Line()
		if !ok {
			return
		}
		last := spec.endsAt(line)
		if last && spec.ExcludeLast {
			return
		}
		if spec.selects(line) {
			rw.ReplaceLine(fn(line))
		} else {
			rw.CopyLinesUntil(rw.LineNo() + 1)
		}
		if last {
			return
		}
	}
}
