package actions

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"fobs/pkg/obstable"
)

// Load reads and decodes the action file at path.
func Load(path string) ([]Action, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &obstable.OpError{
			Op:   "actions.load",
			Kind: obstable.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	acts, err := Parse(b)
	if err != nil {
		return nil, &obstable.OpError{
			Op:   "actions.load",
			Kind: obstable.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}
	return acts, nil
}

// Parse decodes an action list from YAML. An empty input is an empty list.
func Parse(b []byte) ([]Action, error) {
	var recs []Record
	if err := yaml.Unmarshal(b, &recs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAction, err)
	}

	acts := make([]Action, 0, len(recs))
	for i, rec := range recs {
		a, err := Decode(rec)
		if err != nil {
			return nil, fmt.Errorf("action #%d: %w", i+1, err)
		}
		acts = append(acts, a)
	}
	return acts, nil
}

// Run applies acts to doc in order.
func Run(doc obstable.Document, acts []Action) obstable.Document {
	for _, a := range acts {
		doc = a.Apply(doc)
	}
	return doc
}
