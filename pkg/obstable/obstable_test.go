package obstable

import (
	"reflect"
	"testing"
)

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Document
	}{
		{name: "empty", text: "", want: Document{""}},
		{name: "single line", text: "SCAN", want: Document{"SCAN"}},
		{name: "trailing newline", text: "a\nb\n", want: Document{"a", "b", ""}},
		{name: "blank lines kept", text: "a\n\nb", want: Document{"a", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse() = %q, want %q", got, tt.want)
			}
			if got.String() != tt.text {
				t.Errorf("String() = %q, want %q", got.String(), tt.text)
			}
		})
	}
}

func TestCloneEqual(t *testing.T) {
	d := Parse("a\nb")
	c := d.Clone()
	if !d.Equal(c) {
		t.Fatal("clone should equal the original")
	}
	c[0] = "z"
	if d[0] != "a" {
		t.Error("Clone shares storage with the original")
	}
	if d.Equal(c) {
		t.Error("modified clone should differ")
	}
	if d.Equal(Document{"a"}) {
		t.Error("documents of different length compared equal")
	}
}
