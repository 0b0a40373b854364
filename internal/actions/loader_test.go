package actions_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fobs/internal/actions"
	"fobs/pkg/obstable"
)

const obstableText = `SET ANTENNA
  RA=12:00:00
  DEC=+30:00:00
SET BACKEND
  MODE=ASTE
  CHANNELS=4096
END`

const actionFile = `
- action: replace
  old: ASTE
  new: FMLO

- action: delete
  mode: comment out
  first: ^SET BACKEND
  nskip: 1
  last: ^END
  exlast: true

- action: insert
  string: "  TSYS=ON"
  first: ^SET ANTENNA
  last: ^SET ANTENNA

- action: swap
  line1: "^  RA="
  line2: "^  DEC="
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAndRun(t *testing.T) {
	acts, err := actions.Load(writeFile(t, "actions.yaml", actionFile))
	require.NoError(t, err)
	require.Len(t, acts, 4)

	assert.Equal(t, actions.OpReplace, acts[0].Operator)
	assert.Equal(t, actions.OpSwap, acts[3].Operator)

	got := actions.Run(obstable.Parse(obstableText), acts)
	want := `SET ANTENNA
  TSYS=ON
  RA=+30:00:00
  DEC=12:00:00
SET BACKEND
#   MODE=FMLO
#   CHANNELS=4096
END`
	assert.Equal(t, want, got.String())
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := actions.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.True(t, obstable.IsKind(err, obstable.KindNotFound))
	})

	t.Run("not a sequence", func(t *testing.T) {
		_, err := actions.Load(writeFile(t, "map.yaml", "action: replace\n"))
		require.Error(t, err)
		assert.True(t, obstable.IsKind(err, obstable.KindInvalidConfig))
		assert.ErrorIs(t, err, actions.ErrInvalidAction)
	})

	t.Run("bad second action", func(t *testing.T) {
		body := "- action: delete\n- action: explode\n"
		_, err := actions.Load(writeFile(t, "bad.yaml", body))
		require.Error(t, err)
		assert.ErrorIs(t, err, obstable.ErrInvalidConfig)
		assert.Contains(t, err.Error(), "action #2")
	})
}

func TestParse_Empty(t *testing.T) {
	acts, err := actions.Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, acts)

	doc := obstable.Document{"x"}
	assert.Equal(t, doc, actions.Run(doc, acts))
}
