package readme

import (
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Heading is one ATX or setext heading of a markdown document.
type Heading struct {
	Level int
	Text  string
}

// Markdown renders the heading back to its ATX form, e.g. "### Options".
func (h Heading) Markdown() string {
	return strings.Repeat("#", h.Level) + " " + h.Text
}

// Outline lists the document's headings in order.
func Outline(doc []byte) []Heading {
	root := goldmark.New().Parser().Parse(text.NewReader(doc))

	var headings []Heading
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		headings = append(headings, Heading{
			Level: h.Level,
			Text:  strings.TrimSpace(inlineText(h, doc)),
		})
		return ast.WalkSkipChildren, nil
	})
	return headings
}

// inlineText concatenates the literal text below n, dropping emphasis and
// code span markers.
func inlineText(n ast.Node, src []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		default:
			b.WriteString(inlineText(c, src))
		}
	}
	return b.String()
}

// Similar returns the headings that share a word with want, for pointing at
// the likely new home of a moved section.
func Similar(headings []Heading, want string) []Heading {
	words := strings.FieldsFunc(strings.ToLower(want), func(r rune) bool {
		return !unicode.IsLetter(r)
	})

	var out []Heading
	for _, h := range headings {
		lower := strings.ToLower(h.Text)
		for _, w := range words {
			if len(w) > 3 && strings.Contains(lower, w) {
				out = append(out, h)
				break
			}
		}
	}
	return out
}
