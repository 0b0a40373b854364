// Package actions turns the records of an action file into operations on
// an obstable.
//
// An action file is a YAML sequence of flat mappings. Each mapping names an
// operator under "action" and carries its keyword parameters, with the
// range-selection parameters inline:
//
//	- action: delete
//	  mode: comment out
//	  first: ^SET BACKEND
//	  last: ^END
//	  nskip: 1
//	  exlast: true
package actions

import (
	"errors"
	"fmt"
	"strings"

	"fobs/internal/rewrite"
	"fobs/pkg/obstable"
)

// Reserved parameter names.
const (
	KeyAction          = "action"
	KeyFirst           = "first"
	KeyLast            = "last"
	KeyLine            = "line"
	KeyNMatch          = "nmatch"
	KeyMatchOccurrence = "matchOccurrence"
	KeyNSkip           = "nskip"
	KeySkipCount       = "skipCount"
	KeyExLast          = "exlast"
	KeyExcludeLast     = "excludeLast"
)

// Operator names an operation an action can run.
type Operator string

const (
	OpReplace Operator = "replace"
	OpInsert  Operator = "insert"
	OpDelete  Operator = "delete"
	OpSwap    Operator = "swap"
)

// Operators lists every known operator in documentation order.
var Operators = []Operator{OpReplace, OpInsert, OpDelete, OpSwap}

// ErrInvalidAction classifies every decoding failure.
var ErrInvalidAction = errors.New("invalid action")

// Record is one action as written in the action file: the operator name
// under "action" plus flattened keyword parameters.
type Record map[string]any

// Action is a decoded, validated record ready to run.
type Action struct {
	Operator Operator
	// Range is the zero RangeSpec for swap, which always sees the whole document.
	Range rewrite.RangeSpec
	// Notes holds remarks about parameters that make the action a no-op.
	Notes []string

	fields []field
	run    func(obstable.Document) obstable.Document
}

// Apply runs the action over doc and returns the result. It never fails;
// an action whose patterns match nothing returns doc unchanged.
func (a Action) Apply(doc obstable.Document) obstable.Document {
	if a.run == nil {
		return doc
	}
	return a.run(doc)
}

// String renders the action on one line, parameters in a fixed order.
func (a Action) String() string {
	var b strings.Builder
	b.WriteString(string(a.Operator))
	for _, f := range a.fields {
		fmt.Fprintf(&b, " %s=%s", f.key, f.value)
	}
	return b.String()
}

// Params returns the rendered value of every parameter the action was
// given, keyed by parameter name.
func (a Action) Params() map[string]string {
	out := make(map[string]string, len(a.fields))
	for _, f := range a.fields {
		out[f.key] = f.value
	}
	return out
}

// Decode validates rec and builds the Action it describes.
func Decode(rec Record) (Action, error) {
	a, err := decode(rec)
	if err != nil {
		return Action{}, fmt.Errorf("%w: %w", ErrInvalidAction, err)
	}
	return a, nil
}

func decode(rec Record) (Action, error) {
	name, ok := rec[KeyAction]
	if !ok {
		return Action{}, fmt.Errorf("%w %q", errMissing, KeyAction)
	}
	op, ok := name.(string)
	if !ok {
		return Action{}, fmt.Errorf("%q must be text, got %T", KeyAction, name)
	}

	ps := newParams(rec)
	a := Action{Operator: Operator(op)}
	var err error
	switch a.Operator {
	case OpReplace:
		err = decodeReplace(ps, &a)
	case OpInsert:
		err = decodeInsert(ps, &a)
	case OpDelete:
		err = decodeDelete(ps, &a)
	case OpSwap:
		err = decodeSwap(ps, &a)
	default:
		return Action{}, fmt.Errorf("unknown action %q (expected one of %s)", op, operatorList())
	}
	if err != nil {
		return Action{}, fmt.Errorf("%s: %w", op, err)
	}

	if extra := ps.unused(); len(extra) > 0 {
		return Action{}, fmt.Errorf("%s: unknown parameter(s) %s", op, strings.Join(extra, ", "))
	}
	a.fields = ps.fields
	return a, nil
}

func decodeReplace(ps *params, a *Action) error {
	old, err := ps.pattern("old", true)
	if err != nil {
		return err
	}
	repl, err := ps.str("new", "", true)
	if err != nil {
		return err
	}
	if a.Range, err = ps.rangeSpec(); err != nil {
		return err
	}
	tmpl := rewrite.ParseTemplate(repl)
	if err := old.CheckTemplate(tmpl); err != nil {
		return fmt.Errorf("parameter %q: %w", "new", err)
	}
	spec := a.Range
	a.run = func(doc obstable.Document) obstable.Document {
		return rewrite.Replace(doc, old, tmpl, spec)
	}
	return nil
}

func decodeInsert(ps *params, a *Action) error {
	s, err := ps.str("string", "", true)
	if err != nil {
		return err
	}
	position, err := ps.str("position", rewrite.DefaultPosition, false)
	if err != nil {
		return err
	}
	if position != rewrite.Below && position != rewrite.Above {
		a.Notes = append(a.Notes, fmt.Sprintf("position %q is neither %q nor %q, nothing is inserted", position, rewrite.Below, rewrite.Above))
	}
	if a.Range, err = ps.rangeSpec(); err != nil {
		return err
	}
	spec := a.Range
	a.run = func(doc obstable.Document) obstable.Document {
		return rewrite.Insert(doc, s, position, spec)
	}
	return nil
}

func decodeDelete(ps *params, a *Action) error {
	mode, err := ps.str("mode", rewrite.DefaultMode, false)
	if err != nil {
		return err
	}
	mark, err := ps.str("mark", rewrite.DefaultMark, false)
	if err != nil {
		return err
	}
	if mode != rewrite.Remove && mode != rewrite.CommentOut {
		a.Notes = append(a.Notes, fmt.Sprintf("mode %q is neither %q nor %q, nothing is deleted", mode, rewrite.Remove, rewrite.CommentOut))
	}
	if a.Range, err = ps.rangeSpec(); err != nil {
		return err
	}
	spec := a.Range
	a.run = func(doc obstable.Document) obstable.Document {
		return rewrite.Delete(doc, mode, mark, spec)
	}
	return nil
}

func decodeSwap(ps *params, a *Action) error {
	line1, err := ps.pattern("line1", true)
	if err != nil {
		return err
	}
	line2, err := ps.pattern("line2", true)
	if err != nil {
		return err
	}
	sep, err := ps.str("separator", rewrite.DefaultSeparator, false)
	if err != nil {
		return err
	}
	if sep == "" {
		a.Notes = append(a.Notes, "empty separator, nothing is swapped")
	}
	a.run = func(doc obstable.Document) obstable.Document {
		return rewrite.Swap(doc, line1, line2, sep)
	}
	return nil
}

func operatorList() string {
	names := make([]string, len(Operators))
	for i, op := range Operators {
		names[i] = string(op)
	}
	return strings.Join(names, ", ")
}
