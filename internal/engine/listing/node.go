// Package listing turns search-result nodes into product records.
//
// Every field is read through a Chain: an ordered list of lookup strategies
// tried until one produces non-empty text. A field no strategy can read is set
// to models.Sentinel, so a change in the site's markup degrades single fields
// instead of whole records.
package listing

import "strings"

// Node is a read-only handle to one element of a rendered page.
// Lookups are scoped to the node itself. Implementations swallow backend
// errors: a failed lookup is reported the same way as a missing element.
type Node interface {
	// First returns the first descendant matching the CSS selector
	First(selector string) (Node, bool)
	// Text returns the element's text content
	Text() string
	// Attr returns the value of the named attribute
	Attr(name string) (string, bool)
}

// CollapseText trims s and folds internal whitespace runs into single spaces
func CollapseText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
