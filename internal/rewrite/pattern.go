package rewrite

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
)

// Pattern is a compiled regular expression matched against single lines.
// The syntax is that of Python's re module (look-around, named groups,
// backreferences), which is what existing action files are written in.
type Pattern struct {
	expr  string
	re    *regexp2.Regexp
	names map[string]int // Python group names to group numbers
}

// Compile parses expr into a Pattern. Python's (?P<name>...) groups and
// (?P=name) backreferences are accepted, and groups are numbered left to
// right as Python numbers them.
func Compile(expr string) (*Pattern, error) {
	translated, names := translateGroups(expr)
	re, err := regexp2.Compile(translated, regexp2.None)
	if err != nil {
		return nil, err
	}
	return &Pattern{expr: expr, re: re, names: names}, nil
}

// translateGroups rewrites an expression holding (?P<name> groups so that
// every capturing group carries its explicit number, (?<N>...), and
// (?P=name) becomes a numbered backreference. The engine would otherwise
// number named groups after the unnamed ones. Escaped characters and
// character classes are copied as is.
func translateGroups(expr string) (string, map[string]int) {
	if !strings.Contains(expr, "(?P<") {
		return expr, nil
	}
	names := make(map[string]int)
	var b strings.Builder
	b.Grow(len(expr) + 8)
	group := 0
	inClass := false
	for i := 0; i < len(expr); i++ {
		ch := expr[i]
		rest := expr[i:]
		switch {
		case ch == '\\' && i+1 < len(expr):
			b.WriteString(expr[i : i+2])
			i++
		case inClass:
			if ch == ']' {
				inClass = false
			}
			b.WriteByte(ch)
		case ch == '[':
			inClass = true
			b.WriteByte(ch)
			// ']' right after '[' or '[^' is a member, not the end
			j := i + 1
			if j < len(expr) && expr[j] == '^' {
				b.WriteByte('^')
				j++
			}
			if j < len(expr) && expr[j] == ']' {
				b.WriteByte(']')
				j++
			}
			i = j - 1
		case strings.HasPrefix(rest, "(?P<"):
			end := strings.IndexByte(rest, '>')
			if end < 0 {
				b.WriteByte(ch)
				continue
			}
			group++
			names[rest[len("(?P<"):end]] = group
			fmt.Fprintf(&b, "(?<%d>", group)
			i += end
		case strings.HasPrefix(rest, "(?P="):
			end := strings.IndexByte(rest, ')')
			if end < 0 {
				b.WriteByte(ch)
				continue
			}
			name := rest[len("(?P="):end]
			if n, ok := names[name]; ok {
				fmt.Fprintf(&b, `\k<%d>`, n)
			} else {
				// unknown or forward reference, left for the engine to reject
				b.WriteString(`\k<` + name + ">")
			}
			i += end
		case ch == '(' && !strings.HasPrefix(rest, "(?"):
			group++
			fmt.Fprintf(&b, "(?<%d>", group)
		default:
			b.WriteByte(ch)
		}
	}
	return b.String(), names
}

// MustCompile is like Compile but panics if expr cannot be parsed.
func MustCompile(expr string) *Pattern {
	p, err := Compile(expr)
	if err != nil {
		panic(`rewrite: Compile(` + expr + `): ` + err.Error())
	}
	return p
}

// Literal returns a Pattern matching s verbatim.
func Literal(s string) *Pattern {
	return MustCompile(regexp2.Escape(s))
}

// String returns the source text of the pattern.
func (p *Pattern) String() string {
	if p == nil {
		return ""
	}
	return p.expr
}

// MatchString reports whether the pattern matches anywhere in s.
// A match that errors out (only possible on timeout) counts as no match.
func (p *Pattern) MatchString(s string) bool {
	ok, err := p.re.MatchString(s)
	return err == nil && ok
}

// ReplaceAll substitutes every non-overlapping match in s, left to right.
// A template referring to a group the pattern lacks leaves s unchanged.
func (p *Pattern) ReplaceAll(s string, t Template) string {
	repl, err := p.bind(t)
	if err != nil {
		return s
	}
	out, err := p.re.Replace(s, repl, -1, -1)
	if err != nil {
		return s
	}
	return out
}

// CheckTemplate returns an error for the first group reference in t that
// the pattern does not define.
func (p *Pattern) CheckTemplate(t Template) error {
	_, err := p.bind(t)
	return err
}

// bind resolves the group references of t against the pattern, turning
// Python group names into the numbers the engine knows them by.
func (p *Pattern) bind(t Template) (string, error) {
	s := string(t)
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '$' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		if s[i+1] != '{' {
			// "$$" is copied whole so its second '$' is not read as a reference
			b.WriteString(s[i : i+2])
			i++
			continue
		}
		end := strings.IndexByte(s[i+2:], '}')
		if end < 0 {
			b.WriteByte(s[i])
			continue
		}
		ref := s[i+2 : i+2+end]
		n, ok := p.group(ref)
		if !ok {
			return "", fmt.Errorf("invalid group reference %q", ref)
		}
		b.WriteString("${" + n + "}")
		i += 2 + end
	}
	return b.String(), nil
}

func (p *Pattern) group(ref string) (string, bool) {
	if n, ok := p.names[ref]; ok {
		return strconv.Itoa(n), true
	}
	if n, err := strconv.Atoi(ref); err == nil {
		return ref, slices.Contains(p.re.GetGroupNumbers(), n)
	}
	return ref, slices.Contains(p.re.GetGroupNames(), ref)
}

// Template is a substitution template in the expansion syntax of the
// underlying engine: $1, ${name}, $$ for a literal dollar.
type Template string

// LiteralTemplate returns a template that expands to s verbatim.
func LiteralTemplate(s string) Template {
	return Template(strings.ReplaceAll(s, "$", "$$"))
}

// ParseTemplate converts a Python re.sub replacement string. Group
// references \1 .. \99, \g<1> and \g<name> are recognised; \n and \t expand
// to their control characters, \\ to a backslash; any other escaped
// character stands for itself. A dollar sign is literal.
func ParseTemplate(src string) Template {
	var b strings.Builder
	b.Grow(len(src))
	for i := 0; i < len(src); i++ {
		ch := src[i]
		switch {
		case ch == '$':
			b.WriteString("$$")
		case ch != '\\' || i+1 == len(src):
			b.WriteByte(ch)
		default:
			i++
			next := src[i]
			switch {
			case isDigit(next):
				j := i + 1
				if j < len(src) && isDigit(src[j]) {
					j++
				}
				b.WriteString("${" + src[i:j] + "}")
				i = j - 1
			case next == 'g' && i+1 < len(src) && src[i+1] == '<':
				end := strings.IndexByte(src[i+2:], '>')
				if end < 0 {
					b.WriteString(`\g`)
					continue
				}
				b.WriteString("${" + src[i+2:i+2+end] + "}")
				i += 2 + end
			case next == 'n':
				b.WriteByte('\n')
			case next == 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(next)
			}
		}
	}
	return Template(b.String())
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }
