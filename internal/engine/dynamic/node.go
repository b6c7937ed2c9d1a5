// internal/engine/dynamic/node.go
package dynamic

import (
	"context"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
	"github.com/law-makers/shelf/internal/engine/listing"
	"github.com/rs/zerolog/log"
)

// liveNode is a listing.Node that queries the rendered page through the
// browser. Every lookup has its own deadline so a missing element is a miss
// rather than a hang; errors are logged at trace level and swallowed.
type liveNode struct {
	ctx     context.Context
	node    *cdp.Node
	timeout time.Duration
}

func newLiveNode(ctx context.Context, node *cdp.Node, timeout time.Duration) *liveNode {
	return &liveNode{ctx: ctx, node: node, timeout: timeout}
}

func (n *liveNode) run(actions ...chromedp.Action) error {
	ctx, cancel := context.WithTimeout(n.ctx, n.timeout)
	defer cancel()
	return chromedp.Run(ctx, actions...)
}

// First returns the first descendant matching selector
func (n *liveNode) First(selector string) (listing.Node, bool) {
	var nodes []*cdp.Node
	err := n.run(chromedp.Nodes(selector, &nodes,
		chromedp.ByQuery,
		chromedp.AtLeast(0),
		chromedp.FromNode(n.node),
	))
	if err != nil {
		log.Trace().Err(err).Str("selector", selector).Msg("Lookup failed")
		return nil, false
	}
	if len(nodes) == 0 {
		return nil, false
	}
	return newLiveNode(n.ctx, nodes[0], n.timeout), true
}

// Text returns the element's text content
func (n *liveNode) Text() string {
	var text string
	if err := n.run(chromedp.TextContent([]cdp.NodeID{n.node.NodeID}, &text, chromedp.ByNodeID)); err != nil {
		log.Trace().Err(err).Int64("node", int64(n.node.NodeID)).Msg("Text read failed")
		return ""
	}
	return text
}

// Attr returns the named attribute as it was when the node was resolved
func (n *liveNode) Attr(name string) (string, bool) {
	return n.node.Attribute(name)
}

// outerHTML copies the node's markup out of the browser
func (n *liveNode) outerHTML() (string, error) {
	var html string
	err := n.run(chromedp.OuterHTML([]cdp.NodeID{n.node.NodeID}, &html, chromedp.ByNodeID))
	return html, err
}
