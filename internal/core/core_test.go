package core

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"fobs/internal/actions"
	"fobs/internal/substitute"
	"fobs/pkg/obstable"
)

func mustActions(t *testing.T, yaml string) []actions.Action {
	t.Helper()
	acts, err := actions.Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return acts
}

func TestConvert(t *testing.T) {
	src := obstable.Parse("MODE=ASTE\nFREQ=<freq>\nEND")
	acts := mustActions(t, `
- action: replace
  old: ASTE
  new: FMLO
- action: delete
  first: NOPE
- action: insert
  string: x
  position: nowhere
`)

	var buf bytes.Buffer
	conv, err := Convert(context.Background(), src, Options{
		Actions:       acts,
		Substitutions: []substitute.Pair{{Name: "freq", Value: "115"}},
		Logger:        slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})),
	})
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	if got, want := conv.Result().String(), "MODE=FMLO\nFREQ=115\nEND"; got != want {
		t.Errorf("Result() = %q, want %q", got, want)
	}
	if len(conv.Steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(conv.Steps))
	}

	changed := []bool{true, false, false, true}
	for i, step := range conv.Steps {
		if step.Changed != changed[i] {
			t.Errorf("step %d (%s): Changed = %v, want %v", i, step.Label, step.Changed, changed[i])
		}
	}
	if conv.Steps[3].Label != "substitute <freq>=115" {
		t.Errorf("unexpected substitution label %q", conv.Steps[3].Label)
	}
	if !conv.Before(0).Equal(src) || !conv.Before(1).Equal(conv.Steps[0].Document) {
		t.Error("Before() does not return the previous document")
	}

	logs := buf.String()
	if strings.Count(logs, "step applied") != 4 {
		t.Errorf("expected one debug record per step:\n%s", logs)
	}
	if !strings.Contains(logs, "action has no effect") {
		t.Errorf("expected a warning for the no-op insert:\n%s", logs)
	}
}

func TestConvert_NothingToDo(t *testing.T) {
	src := obstable.Document{"a"}
	conv, err := Convert(context.Background(), src, Options{})
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if !conv.Result().Equal(src) {
		t.Errorf("Result() = %q, want the source", conv.Result())
	}
}

func TestConvert_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	acts := mustActions(t, "- action: delete\n")
	conv, err := Convert(ctx, obstable.Document{"a"}, Options{Actions: acts})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if !obstable.IsKind(err, obstable.KindExecution) {
		t.Errorf("expected an execution error, got %v", err)
	}
	if len(conv.Steps) != 0 {
		t.Errorf("no step should run after cancellation, got %d", len(conv.Steps))
	}
}
