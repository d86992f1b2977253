// Package htmldoc implements the upload page controls over a parsed HTML
// document. The server renders pages through it and tests drive the core
// use cases against it without a browser.
package htmldoc

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type Document struct {
	root *html.Node
}

func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{root: root}, nil
}

func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

func (d *Document) Render(w io.Writer) error {
	if err := html.Render(w, d.root); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

func (d *Document) String() string {
	var buf bytes.Buffer
	_ = d.Render(&buf)
	return buf.String()
}

// ByID returns the first element with the given id, or nil.
func (d *Document) ByID(id string) *html.Node {
	return findFirst(d.root, func(n *html.Node) bool {
		return attr(n, "id") == id
	})
}

// ByClass returns every element carrying class, in document order.
func (d *Document) ByClass(class string) []*html.Node {
	return findAll(d.root, func(n *html.Node) bool {
		return hasClass(n, class)
	})
}

// First returns the first element of the given tag that has class (any
// element when class is empty).
func (d *Document) First(tag atom.Atom, class string) *html.Node {
	return findFirst(d.root, func(n *html.Node) bool {
		return n.DataAtom == tag && (class == "" || hasClass(n, class))
	})
}

func (d *Document) SetText(id, text string) error {
	n := d.ByID(id)
	if n == nil {
		return fmt.Errorf("element #%s not found", id)
	}
	setText(n, text)
	return nil
}

func (d *Document) SetAttr(id, key, value string) error {
	n := d.ByID(id)
	if n == nil {
		return fmt.Errorf("element #%s not found", id)
	}
	setAttr(n, key, value)
	return nil
}

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
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
	walk(n)
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return true
		}
	}
	return false
}

func setAttr(n *html.Node, key, value string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

func removeAttr(n *html.Node, key string) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		kept = append(kept, a)
	}
	n.Attr = kept
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func setClass(n *html.Node, class string, on bool) {
	classes := strings.Fields(attr(n, "class"))
	out := classes[:0]
	for _, c := range classes {
		if c != class {
			out = append(out, c)
		}
	}
	if on {
		out = append(out, class)
	}
	if len(out) == 0 {
		removeAttr(n, "class")
		return
	}
	setAttr(n, "class", strings.Join(out, " "))
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func clearChildren(n *html.Node) {
	for n.FirstChild != nil {
		n.RemoveChild(n.FirstChild)
	}
}

func setText(n *html.Node, text string) {
	clearChildren(n)
	n.AppendChild(textNode(text))
}

func detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

func insertAfter(ref, n *html.Node) {
	if ref.Parent == nil {
		return
	}
	ref.Parent.InsertBefore(n, ref.NextSibling)
}

func prepend(parent, n *html.Node) {
	parent.InsertBefore(n, parent.FirstChild)
}

func textNode(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

// element builds an element node; attrs are key/value pairs.
func element(tag atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: tag, Data: tag.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func appendChildren(parent *html.Node, children ...*html.Node) *html.Node {
	for _, c := range children {
		parent.AppendChild(c)
	}
	return parent
}
