// Package domtest queries rendered markup the way a user would see it:
// by role, accessible label and visible text.
package domtest

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"golang.org/x/net/html"
)

// Screen is a parsed document under test
type Screen struct {
	t    testing.TB
	root *html.Node
}

// Render renders c and parses the output
func Render(t testing.TB, c templ.Component) *Screen {
	t.Helper()

	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return Parse(t, buf.String())
}

// Parse parses markup into a Screen
func Parse(t testing.TB, markup string) *Screen {
	t.Helper()

	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("parse markup: %v", err)
	}
	return &Screen{t: t, root: root}
}

// Root returns the document node
func (s *Screen) Root() *html.Node {
	return s.root
}

// QueryAllByRole returns elements with the given implicit role.
// Supported roles: heading, link, paragraph, main.
func (s *Screen) QueryAllByRole(role string) []*html.Node {
	return s.collect(func(n *html.Node) bool {
		return roleOf(n) == role
	})
}

// GetByRole returns the single element with the role whose accessible
// name matches name. It fails the test unless exactly one matches.
func (s *Screen) GetByRole(role string, name *regexp.Regexp) *html.Node {
	s.t.Helper()

	var found []*html.Node
	for _, n := range s.QueryAllByRole(role) {
		if name == nil || name.MatchString(AccessibleName(n)) {
			found = append(found, n)
		}
	}
	return s.single(found, "role "+role)
}

// GetAllByRole fails the test when no element has the role
func (s *Screen) GetAllByRole(role string) []*html.Node {
	s.t.Helper()

	found := s.QueryAllByRole(role)
	if len(found) == 0 {
		s.t.Fatalf("no element with role %q", role)
	}
	return found
}

// GetByLabelText returns the single element whose aria-label matches
func (s *Screen) GetByLabelText(label *regexp.Regexp) *html.Node {
	s.t.Helper()

	found := s.collect(func(n *html.Node) bool {
		v, ok := Attr(n, "aria-label")
		return ok && label.MatchString(v)
	})
	return s.single(found, "label "+label.String())
}

// QueryAllByText returns the innermost elements whose own text matches
func (s *Screen) QueryAllByText(text *regexp.Regexp) []*html.Node {
	return s.collect(func(n *html.Node) bool {
		return text.MatchString(ownText(n))
	})
}

// GetByText returns the single element whose own text matches
func (s *Screen) GetByText(text *regexp.Regexp) *html.Node {
	s.t.Helper()
	return s.single(s.QueryAllByText(text), "text "+text.String())
}

// GetByID returns the element with the given id
func (s *Screen) GetByID(id string) *html.Node {
	s.t.Helper()

	found := s.collect(func(n *html.Node) bool {
		v, ok := Attr(n, "id")
		return ok && v == id
	})
	return s.single(found, "id "+id)
}

// Attr returns the value of an attribute
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// AccessibleName is aria-label when set, otherwise the text content
func AccessibleName(n *html.Node) string {
	if v, ok := Attr(n, "aria-label"); ok {
		return v
	}
	return TextContent(n)
}

// TextContent joins all descendant text, collapsing whitespace
func TextContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

func ownText(n *html.Node) string {
	if n.Type != html.ElementNode {
		return ""
	}
	var parts []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			parts = append(parts, c.Data)
		}
	}
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

func roleOf(n *html.Node) string {
	if n.Type != html.ElementNode {
		return ""
	}
	if v, ok := Attr(n, "role"); ok {
		return v
	}
	switch n.Data {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return "heading"
	case "a":
		if _, ok := Attr(n, "href"); ok {
			return "link"
		}
	case "p":
		return "paragraph"
	case "main":
		return "main"
	}
	return ""
}

func (s *Screen) collect(match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(s.root)
	return out
}

func (s *Screen) single(found []*html.Node, what string) *html.Node {
	s.t.Helper()

	switch len(found) {
	case 0:
		s.t.Fatalf("no element found for %s", what)
	case 1:
		return found[0]
	default:
		s.t.Fatalf("found %d elements for %s; want exactly one", len(found), what)
	}
	return nil
}
