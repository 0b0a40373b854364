// Package substitute fills <name> tokens left in a converted obstable with
// values given on the command line as name=value.
package substitute

import (
	"log/slog"
	"strings"

	"fobs/internal/rewrite"
	"fobs/pkg/obstable"
)

// Pair is one parsed name=value statement.
type Pair struct {
	Name  string
	Value string
}

// Token returns the text the pair replaces, e.g. <freq>.
func (p Pair) Token() string {
	return "<" + p.Name + ">"
}

// Parse splits statements of the form name=value at the first '='.
// Statements without '=' or with an empty name are skipped with a warning.
func Parse(statements []string, log *slog.Logger) []Pair {
	pairs := make([]Pair, 0, len(statements))
	for _, s := range statements {
		name, value, ok := strings.Cut(s, "=")
		if !ok || name == "" {
			log.Warn("invalid substitution statement", "statement", s)
			continue
		}
		pairs = append(pairs, Pair{Name: name, Value: value})
	}
	return pairs
}

// Apply replaces every occurrence of each pair's token with its value, pair
// by pair, over the whole document. Names and values are taken literally.
func Apply(doc obstable.Document, pairs []Pair) obstable.Document {
	for _, p := range pairs {
		doc = rewrite.Replace(doc, rewrite.Literal(p.Token()), rewrite.LiteralTemplate(p.Value), rewrite.RangeSpec{})
	}
	return doc
}
