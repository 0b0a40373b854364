package substitute

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"fobs/pkg/obstable"
)

func TestParse(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	got := Parse([]string{"freq=115.27", "broken", "=nameless", "expr=a=b", "empty="}, log)

	assert.Equal(t, []Pair{
		{Name: "freq", Value: "115.27"},
		{Name: "expr", Value: "a=b"},
		{Name: "empty", Value: ""},
	}, got)
	assert.Contains(t, buf.String(), "statement=broken")
	assert.Contains(t, buf.String(), `statement="=nameless"`)
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("level=WARN")))
}

func TestApply(t *testing.T) {
	doc := obstable.Document{"FREQ=<freq> GHz", "<freq>/<lo>", "SRC=<src.name>", "untouched"}

	got := Apply(doc, []Pair{
		{Name: "freq", Value: "115.27"},
		{Name: "lo", Value: `$1\1`},
		{Name: "src.name", Value: "OriKL"},
	})

	assert.Equal(t, obstable.Document{"FREQ=115.27 GHz", `115.27/$1\1`, "SRC=OriKL", "untouched"}, got)
	assert.Equal(t, "<freq>", doc[0][5:11], "input must not change")
}

func TestApply_NoPairs(t *testing.T) {
	doc := obstable.Document{"<freq>"}
	assert.Equal(t, doc, Apply(doc, nil))
}
