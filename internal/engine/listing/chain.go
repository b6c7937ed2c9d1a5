package listing

import "github.com/law-makers/shelf/pkg/models"

// Field names one column of a ProductRecord
type Field string

const (
	FieldTitle   Field = "title"
	FieldPrice   Field = "price"
	FieldRating  Field = "rating"
	FieldReviews Field = "reviews"
	FieldURL     Field = "url"
)

// Fields lists every record field in column order
var Fields = []Field{FieldTitle, FieldPrice, FieldRating, FieldReviews, FieldURL}

// Strategy is one way of reading a field out of a listing node.
// Apply reports false when the markup it expects is not there.
type Strategy struct {
	Name  string
	Apply func(n Node) (string, bool)
}

// Chain is the ordered list of strategies for one field
type Chain struct {
	Field      Field
	Strategies []Strategy
}

// Resolve runs the strategies in order and returns the first non-empty value
// together with the name of the strategy that produced it. When nothing
// matches it returns models.Sentinel and an empty name.
func (c Chain) Resolve(n Node) (string, string) {
	if n == nil {
		return models.Sentinel, ""
	}
	for _, s := range c.Strategies {
		if v, ok := s.Apply(n); ok && v != "" {
			return v, s.Name
		}
	}
	return models.Sentinel, ""
}

// TextOf reads the collapsed text of the first element matching selector
func TextOf(selector string) Strategy {
	return Strategy{
		Name: selector,
		Apply: func(n Node) (string, bool) {
			return textAt(n, selector)
		},
	}
}

// FirstWordOf reads the first whitespace-separated token of the element's text
func FirstWordOf(selector string) Strategy {
	return Strategy{
		Name: selector + " (first word)",
		Apply: func(n Node) (string, bool) {
			text, ok := textAt(n, selector)
			if !ok {
				return "", false
			}
			return firstWord(text), true
		},
	}
}

// AttrOf reads an attribute of the first element matching selector and
// passes it through transform when one is given
func AttrOf(selector, attr string, transform func(string) string) Strategy {
	return Strategy{
		Name: selector + "@" + attr,
		Apply: func(n Node) (string, bool) {
			el, ok := n.First(selector)
			if !ok || el == nil {
				return "", false
			}
			v, ok := el.Attr(attr)
			v = CollapseText(v)
			if !ok || v == "" {
				return "", false
			}
			if transform != nil {
				v = transform(v)
			}
			return v, v != ""
		},
	}
}

func textAt(n Node, selector string) (string, bool) {
	el, ok := n.First(selector)
	if !ok || el == nil {
		return "", false
	}
	text := CollapseText(el.Text())
	return text, text != ""
}

func firstWord(s string) string {
	for i, r := range s {
		if r == ' ' {
			return s[:i]
		}
	}
	return s
}
