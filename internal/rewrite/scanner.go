package rewrite

import (
	"strings"

	"fobs/pkg/obstable"
)

// ScannerRewriter implements LineRewriter over an in-memory document.
// The source is consumed front to back exactly once.
type ScannerRewriter struct {
	src    obstable.Document
	output obstable.Document
	lineNo int // how many source lines have been consumed so far
}

// NewScannerRewriter constructs a ScannerRewriter reading from src.
func NewScannerRewriter(src obstable.Document) *ScannerRewriter {
	return &ScannerRewriter{
		src:    src,
		output: make(obstable.Document, 0, len(src)),
	}
}

// CopyLinesUntil writes source lines [lineNo..lineIndex-1] unchanged and
// positions the scanner at lineIndex. Indexes past the end stop at EOF.
func (rw *ScannerRewriter) CopyLinesUntil(lineIndex int) {
	if lineIndex > len(rw.src) {
		lineIndex = len(rw.src)
	}
	if lineIndex <= rw.lineNo {
		return
	}
	rw.output = append(rw.output, rw.src[rw.lineNo:lineIndex]...)
	rw.lineNo = lineIndex
}

// ReplaceLine consumes the current source line and writes newLines in its
// place. Elements holding '\n' are split so every output element stays a
// single line.
func (rw *ScannerRewriter) ReplaceLine(newLines []string) {
	if rw.Done() {
		return
	}
	for _, nl := range newLines {
		rw.output = append(rw.output, strings.Split(nl, "\n")...)
	}
	rw.lineNo++
}

// CopyRemainingLines writes all source lines from the current position through EOF.
func (rw *ScannerRewriter) CopyRemainingLines() {
	rw.CopyLinesUntil(len(rw.src))
}

// Line returns the current source line without consuming it.
func (rw *ScannerRewriter) Line() (string, bool) {
	if rw.Done() {
		return "", false
	}
	return rw.src[rw.lineNo], true
}

// LineNo returns the index of the current source line.
func (rw *ScannerRewriter) LineNo() int { return rw.lineNo }

// Done reports whether every source line has been consumed.
func (rw *ScannerRewriter) Done() bool { return rw.lineNo >= len(rw.src) }

// Document returns the rewritten document.
func (rw *ScannerRewriter) Document() obstable.Document {
	return rw.output
}
