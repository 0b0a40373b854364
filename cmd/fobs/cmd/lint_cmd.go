package cmd

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"fobs/internal/actions"
	"fobs/internal/obsfile"
)

// lintEntry is the JSON form of one checked action.
type lintEntry struct {
	Index  int               `json:"index"`
	Action string            `json:"action"`
	Params map[string]string `json:"params"`
	Notes  []string          `json:"notes,omitempty"`
}

// newLintCmd validates an action file without touching any obstable.
func newLintCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "lint <actions>",
		Short: "Check an action file and list the actions it describes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			acts, err := actions.Load(obsfile.ExpandPath(args[0]))
			if err != nil {
				return err
			}
			if asJSON {
				return printLintJSON(cmd.OutOrStdout(), acts)
			}
			printLint(cmd.OutOrStdout(), acts)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the checked actions as JSON")
	return cmd
}

func printLint(w io.Writer, acts []actions.Action) {
	for i, a := range acts {
		fmt.Fprintf(w, "%d. %s\n", i+1, a)
		for _, n := range a.Notes {
			fmt.Fprintf(w, "   warning: %s\n", n)
		}
	}
	fmt.Fprintf(w, "%d action(s) OK\n", len(acts))
}

func printLintJSON(w io.Writer, acts []actions.Action) error {
	entries := make([]lintEntry, len(acts))
	for i, a := range acts {
		entries[i] = lintEntry{
			Index:  i + 1,
			Action: string(a.Operator),
			Params: a.Params(),
			Notes:  a.Notes,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}
