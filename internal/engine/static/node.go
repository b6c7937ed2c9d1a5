// internal/engine/static/node.go
package static

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/shelf/internal/engine/listing"
)

// Node is a listing.Node backed by a parsed goquery selection.
// All lookups run in memory; nothing here touches the network.
type Node struct {
	sel *goquery.Selection
}

// NewNode wraps the first element of sel
func NewNode(sel *goquery.Selection) *Node {
	return &Node{sel: sel.First()}
}

// First returns the first descendant matching selector.
// An invalid selector matches nothing.
func (n *Node) First(selector string) (listing.Node, bool) {
	if n == nil || n.sel == nil {
		return nil, false
	}
	sel := n.sel.Find(selector).First()
	if sel.Length() == 0 {
		return nil, false
	}
	return &Node{sel: sel}, true
}

// Text returns the text of the element and its descendants
func (n *Node) Text() string {
	if n == nil || n.sel == nil {
		return ""
	}
	return n.sel.Text()
}

// Attr returns the named attribute of the element
func (n *Node) Attr(name string) (string, bool) {
	if n == nil || n.sel == nil {
		return "", false
	}
	return n.sel.Attr(name)
}

// FromFragment parses the outer HTML of a single listing element.
// The returned node is the fragment's first element.
func FromFragment(fragment string) (*Node, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, err
	}
	root := doc.Find("body").Children().First()
	if root.Length() == 0 {
		root = doc.Selection
	}
	return &Node{sel: root}, nil
}
