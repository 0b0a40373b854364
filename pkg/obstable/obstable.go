package obstable

import "strings"

// Document is an obstable held as an ordered sequence of lines.
// Lines never contain '\n'; the separator is implied between elements.
type Document []string

// Parse splits text on '\n'. A trailing newline yields a final empty line,
// so Parse(s).String() == s for every s.
func Parse(text string) Document {
	return Document(strings.Split(text, "\n"))
}

// String joins the lines back into one text blob.
func (d Document) String() string {
	return strings.Join(d, "\n")
}

// Len returns the number of lines.
func (d Document) Len() int { return len(d) }

// Clone returns a copy that shares no backing array with d.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	copy(out, d)
	return out
}

// Equal reports whether both documents hold the same lines.
func (d Document) Equal(other Document) bool {
	if len(d) != len(other) {
		return false
	}
	for i := range d {
		if d[i] != other[i] {
			return false
		}
	}
	return true
}
