package router

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/a-h/templ"
)

var (
	ErrInvalidPattern = errors.New("invalid route pattern")
	ErrDuplicateRoute = errors.New("duplicate route pattern")
	ErrNilComponent   = errors.New("route has no component")
)

// Route maps a path pattern to the component that renders it.
//
// Pattern segments are either literal ("about"), a named parameter
// (":slug") or a trailing wildcard ("*") that matches the rest of the path.
type Route struct {
	Pattern   string
	Name      string
	Component func() templ.Component
}

// Match is the result of resolving a request path against the table
type Match struct {
	Route  Route
	Params map[string]string
}

// Table is an ordered, immutable route table
type Table struct {
	routes   []Route
	segments [][]string
}

// New builds a route table. Routes are matched in declaration order.
func New(routes ...Route) (*Table, error) {
	t := &Table{
		routes:   make([]Route, 0, len(routes)),
		segments: make([][]string, 0, len(routes)),
	}
	seen := make(map[string]string, len(routes))

	for _, r := range routes {
		if r.Component == nil {
			return nil, fmt.Errorf("%w: %q", ErrNilComponent, r.Pattern)
		}

		segs, err := parsePattern(r.Pattern)
		if err != nil {
			return nil, err
		}

		key := shapeKey(segs)
		if prev, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: %q conflicts with %q", ErrDuplicateRoute, r.Pattern, prev)
		}
		seen[key] = r.Pattern

		t.routes = append(t.routes, r)
		t.segments = append(t.segments, segs)
	}

	return t, nil
}

// MustNew is like New but panics if the table is invalid
func MustNew(routes ...Route) *Table {
	t, err := New(routes...)
	if err != nil {
		panic(err)
	}
	return t
}

// Resolve finds the first route whose pattern matches p
func (t *Table) Resolve(p string) (Match, bool) {
	reqSegs := splitPath(cleanPath(p))

	for i, segs := range t.segments {
		params, ok := matchSegments(segs, reqSegs)
		if ok {
			return Match{Route: t.routes[i], Params: params}, true
		}
	}

	return Match{}, false
}

// Routes returns a copy of the table in declaration order
func (t *Table) Routes() []Route {
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}

// Len returns the number of routes in the table
func (t *Table) Len() int {
	return len(t.routes)
}

// IsLiteral reports whether a pattern has no parameter or wildcard segments
func IsLiteral(pattern string) bool {
	segs, err := parsePattern(pattern)
	if err != nil {
		return false
	}
	for _, s := range segs {
		if s == "*" || strings.HasPrefix(s, ":") {
			return false
		}
	}
	return true
}

func parsePattern(pattern string) ([]string, error) {
	if !strings.HasPrefix(pattern, "/") {
		return nil, fmt.Errorf("%w: %q must start with /", ErrInvalidPattern, pattern)
	}

	segs := splitPath(cleanPath(pattern))
	for i, s := range segs {
		switch {
		case s == "*":
			if i != len(segs)-1 {
				return nil, fmt.Errorf("%w: %q wildcard must be the last segment", ErrInvalidPattern, pattern)
			}
		case strings.HasPrefix(s, ":"):
			if len(s) == 1 {
				return nil, fmt.Errorf("%w: %q has an unnamed parameter", ErrInvalidPattern, pattern)
			}
		case strings.Contains(s, "*"):
			return nil, fmt.Errorf("%w: %q wildcard must be a whole segment", ErrInvalidPattern, pattern)
		}
	}

	return segs, nil
}

// shapeKey erases parameter names so "/a/:x" and "/a/:y" collide
func shapeKey(segs []string) string {
	parts := make([]string, len(segs))
	for i, s := range segs {
		if strings.HasPrefix(s, ":") {
			parts[i] = ":"
			continue
		}
		parts[i] = s
	}
	return "/" + strings.Join(parts, "/")
}

func matchSegments(pattern, req []string) (map[string]string, bool) {
	var params map[string]string

	for i, seg := range pattern {
		if seg == "*" {
			if params == nil {
				params = make(map[string]string, 1)
			}
			params["*"] = strings.Join(req[i:], "/")
			return params, true
		}
		if i >= len(req) {
			return nil, false
		}
		if strings.HasPrefix(seg, ":") {
			if params == nil {
				params = make(map[string]string, 1)
			}
			params[seg[1:]] = req[i]
			continue
		}
		if seg != req[i] {
			return nil, false
		}
	}

	if len(pattern) != len(req) {
		return nil, false
	}
	return params, true
}

func cleanPath(p string) string {
	if p == "" {
		return "/"
	}
	return path.Clean("/" + p)
}

func splitPath(p string) []string {
	trimmed := strings.Trim(p, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
