package rewrite

import (
	"strings"

	"fobs/pkg/obstable"
)

// Insertion positions understood by Insert.
const (
	Below = "below"
	Above = "above"
)

// Deletion modes understood by Delete.
const (
	Remove     = "remove"
	CommentOut = "comment out"
)

// Defaults used when an action leaves the parameter out.
const (
	DefaultPosition  = Below
	DefaultMode      = CommentOut
	DefaultMark      = "#"
	DefaultSeparator = "="
)

// Replace substitutes every match of old with the expansion of tmpl in
// each selected line.
func Replace(doc obstable.Document, old *Pattern, tmpl Template, spec RangeSpec) obstable.Document {
	return Apply(doc, ReplaceFunc(old, tmpl), spec)
}

// ReplaceFunc is the single-line form of Replace.
func ReplaceFunc(old *Pattern, tmpl Template) LineFunc {
	return func(line string) []string {
		return []string{old.ReplaceAll(line, tmpl)}
	}
}

// Insert adds s below or above each selected line. Any other position
// leaves the document unchanged.
func Insert(doc obstable.Document, s, position string, spec RangeSpec) obstable.Document {
	return Apply(doc, InsertFunc(s, position), spec)
}

// InsertFunc is the single-line form of Insert.
func InsertFunc(s, position string) LineFunc {
	return func(line string) []string {
		switch position {
		case Below:
			return []string{line, s}
		case Above:
			return []string{s, line}
		default:
			return []string{line}
		}
	}
}

// Delete blanks (Remove) or comments out (CommentOut) each selected line.
// Commenting out skips lines that already start with mark. Any other mode
// leaves the document unchanged.
func Delete(doc obstable.Document, mode, mark string, spec RangeSpec) obstable.Document {
	return Apply(doc, DeleteFunc(mode, mark), spec)
}

// DeleteFunc is the single-line form of Delete.
func DeleteFunc(mode, mark string) LineFunc {
	return func(line string) []string {
		switch mode {
		case Remove:
			return []string{""}
		case CommentOut:
			if strings.HasPrefix(line, mark) {
				return []string{line}
			}
			return []string{mark + " " + line}
		default:
			return []string{line}
		}
	}
}

// Swap exchanges the values of the first line matching line1 and the first
// line matching line2, where each line has the form name<sep>value and is
// split at the first sep. The document is returned unchanged when either
// line is missing or has no separator.
func Swap(doc obstable.Document, line1, line2 *Pattern, sep string) obstable.Document {
	i1, ok1 := firstMatch(doc, line1)
	i2, ok2 := firstMatch(doc, line2)
	if !ok1 || !ok2 || i1 == i2 || sep == "" {
		return doc
	}

	name1, value1, ok1 := strings.Cut(doc[i1], sep)
	name2, value2, ok2 := strings.Cut(doc[i2], sep)
	if !ok1 || !ok2 {
		return doc
	}

	out := doc.Clone()
	out[i1] = name1 + sep + value2
	out[i2] = name2 + sep + value1
	return out
}

func firstMatch(doc obstable.Document, p *Pattern) (int, bool) {
	for i, line := range doc {
		if p.MatchString(line) {
			return i, true
		}
	}
	return 0, false
}
