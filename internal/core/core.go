package core

import (
	"context"
	"log/slog"

	"fobs/internal/actions"
	"fobs/internal/substitute"
	"fobs/pkg/obstable"
)

// Step is one stage of a conversion: the document right after an action
// or a substitution ran.
type Step struct {
	Label    string
	Notes    []string
	Document obstable.Document
	Changed  bool
}

// Conversion records a source document and every intermediate document
// produced on the way to the converted one.
type Conversion struct {
	Source obstable.Document
	Steps  []Step
}

// Result returns the final document, or the source when nothing ran.
func (c *Conversion) Result() obstable.Document {
	if len(c.Steps) == 0 {
		return c.Source
	}
	return c.Steps[len(c.Steps)-1].Document
}

// Before returns the document step i started from.
func (c *Conversion) Before(i int) obstable.Document {
	if i <= 0 {
		return c.Source
	}
	return c.Steps[i-1].Document
}

// Options configure Convert.
type Options struct {
	Actions       []actions.Action
	Substitutions []substitute.Pair
	// Logger receives one debug record per step; nil discards.
	Logger *slog.Logger
}

// Convert runs the actions and then the substitutions over src, in order,
// the output of each step feeding the next. It stops early only when ctx
// is cancelled.
func Convert(ctx context.Context, src obstable.Document, opts Options) (*Conversion, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	conv := &Conversion{
		Source: src,
		Steps:  make([]Step, 0, len(opts.Actions)+len(opts.Substitutions)),
	}
	add := func(label string, notes []string, doc obstable.Document) {
		step := Step{
			Label:    label,
			Notes:    notes,
			Document: doc,
			Changed:  !doc.Equal(conv.Result()),
		}
		conv.Steps = append(conv.Steps, step)
		log.Debug("step applied", "n", len(conv.Steps), "step", label, "changed", step.Changed, "lines", doc.Len())
		for _, note := range notes {
			log.Warn("action has no effect", "step", label, "reason", note)
		}
	}

	for _, a := range opts.Actions {
		if err := ctx.Err(); err != nil {
			return conv, cancelled(err)
		}
		add(a.String(), a.Notes, a.Apply(conv.Result()))
	}
	for _, p := range opts.Substitutions {
		if err := ctx.Err(); err != nil {
			return conv, cancelled(err)
		}
		add("substitute "+p.Token()+"="+p.Value, nil, substitute.Apply(conv.Result(), []substitute.Pair{p}))
	}
	return conv, nil
}

func cancelled(err error) error {
	return &obstable.OpError{
		Op:   "core.convert",
		Kind: obstable.KindExecution,
		Err:  err,
	}
}
