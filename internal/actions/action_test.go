package actions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fobs/internal/rewrite"
	"fobs/pkg/obstable"
)

func TestDecode(t *testing.T) {
	doc := obstable.Document{"A", "B", "A", "C"}

	tests := []struct {
		name   string
		rec    Record
		str    string
		want   obstable.Document
		noted  bool
		assert func(t *testing.T, a Action)
	}{
		{
			name: "replace with range aliases",
			rec:  Record{"action": "replace", "old": "A", "new": "X", "first": "A", "matchOccurrence": 2},
			str:  `replace old="A" new="X" first="A" matchOccurrence=2`,
			want: obstable.Document{"A", "B", "X", "C"},
			assert: func(t *testing.T, a Action) {
				assert.Equal(t, 2, a.Range.MatchOccurrence)
				assert.Equal(t, "A", a.Range.First.String())
			},
		},
		{
			name: "replace with short range names",
			rec:  Record{"action": "replace", "old": ".", "new": "-", "first": "B", "nskip": 1, "last": "C", "exlast": true},
			str:  `replace old="." new="-" first="B" last="C" nskip=1 exlast=true`,
			want: obstable.Document{"A", "B", "-", "C"},
		},
		{
			name: "numeric replacement text",
			rec:  Record{"action": "replace", "old": "C", "new": 100},
			want: obstable.Document{"A", "B", "A", "100"},
		},
		{
			name: "insert defaults to below",
			rec:  Record{"action": "insert", "string": "new", "line": "^C$"},
			str:  `insert string="new" line="^C$"`,
			want: obstable.Document{"A", "B", "A", "C", "new"},
		},
		{
			name:  "insert at an unknown position",
			rec:   Record{"action": "insert", "string": "new", "position": "left"},
			want:  doc,
			noted: true,
		},
		{
			name: "delete defaults to comment out",
			rec:  Record{"action": "delete", "first": "C"},
			want: obstable.Document{"A", "B", "A", "# C"},
			assert: func(t *testing.T, a Action) {
				assert.Equal(t, map[string]string{"first": `"C"`}, a.Params())
			},
		},
		{
			name: "delete remove with string flags",
			rec:  Record{"action": "delete", "mode": "remove", "first": "B", "last": "A", "excludeLast": "true"},
			want: obstable.Document{"A", "", "A", "C"},
		},
		{
			name:  "delete with an unknown mode",
			rec:   Record{"action": "delete", "mode": "erase"},
			want:  doc,
			noted: true,
		},
		{
			name: "swap",
			rec:  Record{"action": "swap", "line1": "^x", "line2": "^y", "separator": ":"},
			str:  `swap line1="^x" line2="^y" separator=":"`,
			want: doc,
		},
		{
			name:  "swap with an empty separator",
			rec:   Record{"action": "swap", "line1": "A", "line2": "B", "separator": ""},
			want:  doc,
			noted: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Decode(tt.rec)
			require.NoError(t, err)
			if tt.str != "" {
				assert.Equal(t, tt.str, a.String())
			}
			assert.Equal(t, tt.want, a.Apply(doc))
			assert.Equal(t, tt.noted, len(a.Notes) > 0, "notes: %v", a.Notes)
			if tt.assert != nil {
				tt.assert(t, a)
			}
		})
	}
}

func TestDecode_Swap(t *testing.T) {
	a, err := Decode(Record{"action": "swap", "line1": "^ON", "line2": "^OFF"})
	require.NoError(t, err)
	assert.Equal(t, rewrite.RangeSpec{}, a.Range)

	got := a.Apply(obstable.Document{"ON=1", "OFF=2"})
	assert.Equal(t, obstable.Document{"ON=2", "OFF=1"}, got)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		msg  string
	}{
		{"missing action", Record{"old": "a"}, `missing required parameter "action"`},
		{"action is not text", Record{"action": 5}, `"action" must be text`},
		{"unknown action", Record{"action": "rotate"}, `unknown action "rotate"`},
		{"missing new", Record{"action": "replace", "old": "a"}, `missing required parameter "new"`},
		{"missing string", Record{"action": "insert"}, `missing required parameter "string"`},
		{"missing line2", Record{"action": "swap", "line1": "a"}, `missing required parameter "line2"`},
		{"unknown parameter", Record{"action": "delete", "colour": "red", "bold": true}, "unknown parameter(s) bold, colour"},
		{"bad pattern", Record{"action": "replace", "old": "(", "new": ""}, `parameter "old": invalid pattern`},
		{"group out of range", Record{"action": "replace", "old": "(a)", "new": `\10`}, `parameter "new": invalid group reference "10"`},
		{"unknown group name", Record{"action": "replace", "old": "(?P<k>a)", "new": `\g<v>`}, `invalid group reference "v"`},
		{"bad first", Record{"action": "delete", "first": "["}, `parameter "first": invalid pattern`},
		{"zero occurrence", Record{"action": "delete", "nmatch": 0}, "match occurrence must be 1 or more"},
		{"negative skip", Record{"action": "delete", "nskip": -1}, "skip count must not be negative"},
		{"fractional skip", Record{"action": "delete", "nskip": 1.5}, "not a whole number"},
		{"aliases together", Record{"action": "delete", "nmatch": 1, "matchOccurrence": 2}, "are aliases"},
		{"bad boolean", Record{"action": "delete", "exlast": "maybe"}, `"maybe" is not a boolean`},
		{"list as text", Record{"action": "insert", "string": []any{"a"}}, "expected text"},
		{"range on swap", Record{"action": "swap", "line1": "a", "line2": "b", "first": "c"}, "unknown parameter(s) first"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.rec)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidAction)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}
