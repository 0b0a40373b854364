package actions

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"fobs/internal/rewrite"
)

// errMissing is returned by lookups of required parameters that are absent.
var errMissing = errors.New("missing required parameter")

// params hands out the keyword parameters of one action record and keeps
// track of which ones were consumed, so leftovers can be reported.
type params struct {
	raw    Record
	used   map[string]bool
	fields []field
}

type field struct {
	key, value string
}

func newParams(raw Record) *params {
	return &params{raw: raw, used: map[string]bool{}}
}

// lookup returns the value stored under the first of keys (aliases of one
// parameter) and the key it was found under.
func (ps *params) lookup(keys ...string) (any, string, error) {
	var (
		found string
		value any
	)
	for _, k := range keys {
		v, ok := ps.raw[k]
		if !ok {
			continue
		}
		if found != "" {
			return nil, "", fmt.Errorf("parameters %q and %q are aliases, use only one", found, k)
		}
		found, value = k, v
		ps.used[k] = true
	}
	return value, found, nil
}

func (ps *params) record(key, value string) {
	ps.fields = append(ps.fields, field{key: key, value: value})
}

// str returns a text parameter, or def when it is absent and not required.
func (ps *params) str(key, def string, required bool) (string, error) {
	v, found, err := ps.lookup(key)
	if err != nil {
		return "", err
	}
	if found == "" {
		if required {
			return "", fmt.Errorf("%w %q", errMissing, key)
		}
		return def, nil
	}
	s, err := scalarText(v)
	if err != nil {
		return "", fmt.Errorf("parameter %q: %w", key, err)
	}
	ps.record(key, strconv.Quote(s))
	return s, nil
}

// pattern compiles a regular-expression parameter. A nil result means the
// parameter was absent.
func (ps *params) pattern(key string, required bool) (*rewrite.Pattern, error) {
	if _, ok := ps.raw[key]; !ok && !required {
		return nil, nil
	}
	expr, err := ps.str(key, "", required)
	if err != nil {
		return nil, err
	}
	pat, err := rewrite.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("parameter %q: invalid pattern: %w", key, err)
	}
	return pat, nil
}

func (ps *params) integer(def int, keys ...string) (int, error) {
	v, found, err := ps.lookup(keys...)
	if err != nil || found == "" {
		return def, err
	}
	var n int
	switch x := v.(type) {
	case int:
		n = x
	case int64:
		n = int(x)
	case uint64:
		if x > math.MaxInt32 {
			return 0, fmt.Errorf("parameter %q: %d is out of range", found, x)
		}
		n = int(x)
	case float64:
		if x != math.Trunc(x) {
			return 0, fmt.Errorf("parameter %q: %v is not a whole number", found, x)
		}
		n = int(x)
	case string:
		n, err = strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0, fmt.Errorf("parameter %q: %q is not a number", found, x)
		}
	default:
		return 0, fmt.Errorf("parameter %q: expected a number, got %T", found, v)
	}
	ps.record(found, strconv.Itoa(n))
	return n, nil
}

func (ps *params) boolean(def bool, keys ...string) (bool, error) {
	v, found, err := ps.lookup(keys...)
	if err != nil || found == "" {
		return def, err
	}
	var b bool
	switch x := v.(type) {
	case bool:
		b = x
	case string:
		b, err = strconv.ParseBool(strings.TrimSpace(x))
		if err != nil {
			return false, fmt.Errorf("parameter %q: %q is not a boolean", found, x)
		}
	default:
		return false, fmt.Errorf("parameter %q: expected a boolean, got %T", found, v)
	}
	ps.record(found, strconv.FormatBool(b))
	return b, nil
}

// rangeSpec reads the range-selection parameters shared by replace, insert
// and delete.
func (ps *params) rangeSpec() (rewrite.RangeSpec, error) {
	var (
		spec rewrite.RangeSpec
		err  error
	)
	if spec.First, err = ps.pattern(KeyFirst, false); err != nil {
		return spec, err
	}
	if spec.Last, err = ps.pattern(KeyLast, false); err != nil {
		return spec, err
	}
	if spec.Line, err = ps.pattern(KeyLine, false); err != nil {
		return spec, err
	}
	if spec.MatchOccurrence, err = ps.integer(1, KeyNMatch, KeyMatchOccurrence); err != nil {
		return spec, err
	}
	if spec.MatchOccurrence < 1 {
		return spec, fmt.Errorf("match occurrence must be 1 or more, got %d", spec.MatchOccurrence)
	}
	if spec.SkipCount, err = ps.integer(0, KeyNSkip, KeySkipCount); err != nil {
		return spec, err
	}
	if spec.SkipCount < 0 {
		return spec, fmt.Errorf("skip count must not be negative, got %d", spec.SkipCount)
	}
	spec.ExcludeLast, err = ps.boolean(false, KeyExLast, KeyExcludeLast)
	return spec, err
}

// unused returns the keys nobody asked for, sorted.
func (ps *params) unused() []string {
	var keys []string
	for k := range ps.raw {
		if k != KeyAction && !ps.used[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// scalarText renders a YAML scalar the way it reads in the action file.
func scalarText(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case bool:
		return strconv.FormatBool(x), nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case uint64:
		return strconv.FormatUint(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("expected text, got %T", v)
	}
}
