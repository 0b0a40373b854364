// Package obsfile reads obstables from disk and writes converted ones to a
// file or a stream.
package obsfile

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"fobs/pkg/obstable"
)

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Read loads the whole obstable at path. CRLF and lone CR line endings are
// read as '\n'.
func Read(path string) (obstable.Document, error) {
	path = ExpandPath(path)
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &obstable.OpError{
			Op:   "obsfile.read",
			Kind: obstable.KindNotFound,
			Path: path,
			Err:  err,
		}
	}
	return obstable.Parse(newlines.Replace(string(b))), nil
}

// Print writes doc to w followed by a newline.
func Print(w io.Writer, doc obstable.Document) error {
	_, err := fmt.Fprintln(w, doc.String())
	return err
}

// Write stores doc at path verbatim. An existing file is left alone unless
// force is set; that case returns an error of kind already_exists.
func Write(path string, doc obstable.Document, force bool) error {
	path = ExpandPath(path)
	if _, err := os.Stat(path); err == nil && !force {
		return &obstable.OpError{
			Op:   "obsfile.write",
			Kind: obstable.KindExists,
			Path: path,
			Err:  fs.ErrExist,
		}
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &obstable.OpError{Op: "obsfile.write", Kind: obstable.KindExecution, Path: path, Err: err}
	}

	if err := os.WriteFile(path, []byte(doc.String()), 0o644); err != nil {
		return &obstable.OpError{
			Op:   "obsfile.write",
			Kind: obstable.KindExecution,
			Path: path,
			Err:  err,
		}
	}
	return nil
}

// IsTerminal reports whether w is a terminal, so output may carry colour.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
