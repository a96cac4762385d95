package routepath

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Wildcard is the pattern that matches every path.
const Wildcard = "*"

// defaultParamExpr matches a single path segment.
const defaultParamExpr = `[^/]+?`

// Pattern is a compiled Express-style route pattern.
type Pattern struct {
	raw   string
	re    *regexp.Regexp
	names []string
	any   bool
}

// Compile compiles an Express-style path pattern.
//
// Supported syntax:
//
//	/user/:id            named parameter, one segment
//	/user/:id(\d+)       named parameter with a custom expression
//	/file/(.*)           unnamed group, captured as "0", "1", ...
//	/static/*            wildcard, captured as an unnamed group
//	/a\:b                escaped literal
//	*                    any path, no parameters
//
// Anything after the first "?" is a query hint and is ignored, so custom
// expressions cannot contain "?" (no lazy quantifiers, no "(?:" groups) and
// cannot nest groups. Matching is case-insensitive and a single trailing
// slash is optional.
func Compile(pattern string) (*Pattern, error) {
	if pattern == Wildcard {
		return &Pattern{raw: pattern, any: true}, nil
	}
	if !strings.HasPrefix(pattern, "/") {
		return nil, &PatternError{Pattern: pattern, Reason: `pattern must start with "/" or be "*"`}
	}

	tpl, _, _ := strings.Cut(pattern, "?")
	expr, names, err := translate(tpl)
	if err != nil {
		return nil, &PatternError{Pattern: pattern, Reason: err.Error()}
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, &PatternError{Pattern: pattern, Reason: "invalid expression", Err: err}
	}
	if re.NumSubexp() != len(names) {
		return nil, &PatternError{Pattern: pattern, Reason: "capture count does not match parameter count"}
	}

	return &Pattern{raw: pattern, re: re, names: names}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the pattern as it was registered.
func (p *Pattern) String() string {
	return p.raw
}

// ParamNames returns the parameter names in capture order.
func (p *Pattern) ParamNames() []string {
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out
}

// Test reports whether path matches the pattern.
func (p *Pattern) Test(path string) bool {
	if p.any {
		return true
	}
	return p.re.MatchString(path)
}

// Exec matches path and returns the decoded parameters.
func (p *Pattern) Exec(path string) (map[string]string, bool) {
	if p.any {
		return map[string]string{}, true
	}
	m := p.re.FindStringSubmatch(path)
	if m == nil {
		return nil, false
	}
	params := make(map[string]string, len(p.names))
	for i, name := range p.names {
		params[name] = decode(m[i+1])
	}
	return params, true
}

// translate converts a pattern template into a regular expression.
func translate(tpl string) (string, []string, error) {
	tpl = TrimSlashes(tpl)

	var (
		b       strings.Builder
		names   []string
		seen    = make(map[string]bool)
		unnamed int
	)
	b.WriteString("(?i)^")

	addName := func(name string) error {
		if seen[name] {
			return fmt.Errorf("duplicate parameter %q", name)
		}
		seen[name] = true
		names = append(names, name)
		return nil
	}

	for i := 0; i < len(tpl); {
		switch c := tpl[i]; c {
		case '\\':
			if i+1 >= len(tpl) {
				return "", nil, fmt.Errorf("dangling escape at offset %d", i)
			}
			b.WriteString(regexp.QuoteMeta(tpl[i+1 : i+2]))
			i += 2

		case ':':
			j := i + 1
			for j < len(tpl) && isNameByte(tpl[j]) {
				j++
			}
			if j == i+1 {
				return "", nil, fmt.Errorf("missing parameter name at offset %d", i)
			}
			name := tpl[i+1 : j]
			expr := defaultParamExpr
			if j < len(tpl) && tpl[j] == '(' {
				group, end, err := readGroup(tpl, j)
				if err != nil {
					return "", nil, err
				}
				expr, j = group, end
			}
			if err := addName(name); err != nil {
				return "", nil, err
			}
			b.WriteString("(" + expr + ")")
			i = j

		case '(':
			group, end, err := readGroup(tpl, i)
			if err != nil {
				return "", nil, err
			}
			if err := addName(strconv.Itoa(unnamed)); err != nil {
				return "", nil, err
			}
			unnamed++
			b.WriteString("(" + group + ")")
			i = end

		case ')':
			return "", nil, fmt.Errorf("unbalanced \")\" at offset %d", i)

		case '*':
			if err := addName(strconv.Itoa(unnamed)); err != nil {
				return "", nil, err
			}
			unnamed++
			b.WriteString("(.*)")
			i++

		default:
			j := i
			for j < len(tpl) && !isSpecial(tpl[j]) {
				j++
			}
			b.WriteString(regexp.QuoteMeta(tpl[i:j]))
			i = j
		}
	}

	b.WriteString("/?$")
	return b.String(), names, nil
}

// readGroup reads a parenthesized expression starting at tpl[start] == '('.
// It returns the inner expression and the offset just past the closing paren.
func readGroup(tpl string, start int) (string, int, error) {
	depth := 0
	inClass := false
	for i := start; i < len(tpl); i++ {
		switch tpl[i] {
		case '\\':
			i++
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '(':
			if inClass {
				continue
			}
			if depth > 0 {
				return "", 0, fmt.Errorf("nested groups are not allowed at offset %d", i)
			}
			depth++
		case ')':
			if inClass {
				continue
			}
			depth--
			if depth == 0 {
				inner := tpl[start+1 : i]
				if inner == "" {
					return "", 0, fmt.Errorf("empty group at offset %d", start)
				}
				return inner, i + 1, nil
			}
		}
	}
	return "", 0, fmt.Errorf("unterminated group at offset %d", start)
}

func isNameByte(c byte) bool {
	return c == '_' || ('0' <= c && c <= '9') || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isSpecial(c byte) bool {
	switch c {
	case '\\', ':', '(', ')', '*':
		return true
	}
	return false
}

// decode URI-decodes a captured value, keeping the raw text when it is not
// valid percent-encoding.
func decode(raw string) string {
	v, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return v
}

// TrimSlashes removes a single trailing slash.
func TrimSlashes(path string) string {
	return strings.TrimSuffix(path, "/")
}

// SplitFragment splits a fragment into its path and query string at the
// first "?".
func SplitFragment(fragment string) (path, query string) {
	path, query, _ = strings.Cut(fragment, "?")
	return path, query
}
