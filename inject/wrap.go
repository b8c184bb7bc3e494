package inject

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Wrap associates markup with the fragment instance: the token class is
// added to the single root element, markup without one is wrapped in div.
// Wrapping already wrapped markup changes nothing.
func (f Fragment) Wrap(markup string) (Fragment, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return Fragment{}, fmt.Errorf("unable to parse markup for %s: %w", f.Token, err)
	}

	root := singleRoot(nodes)
	if root == nil {
		root = &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
		for _, n := range nodes {
			root.AppendChild(n)
		}
		nodes = []*html.Node{root}
	}
	addClass(root, string(f.Token))

	buf := new(bytes.Buffer)
	for _, n := range nodes {
		if err := html.Render(buf, n); err != nil {
			return Fragment{}, fmt.Errorf("unable to render markup for %s: %w", f.Token, err)
		}
	}
	f.Markup = buf.String()
	return f, nil
}

// singleRoot returns the only element among top level nodes, ignoring
// whitespace and comments.
func singleRoot(nodes []*html.Node) *html.Node {
	var root *html.Node
	for _, n := range nodes {
		switch n.Type {
		case html.ElementNode:
			if root != nil {
				return nil
			}
			root = n
		case html.TextNode:
			if strings.TrimSpace(n.Data) != "" {
				return nil
			}
		case html.CommentNode:
		default:
			return nil
		}
	}
	return root
}

func addClass(n *html.Node, class string) {
	for i, a := range n.Attr {
		if a.Namespace != "" || a.Key != "class" {
			continue
		}
		classes := strings.Fields(a.Val)
		if slices.Contains(classes, class) {
			return
		}
		n.Attr[i].Val = strings.Join(append(classes, class), " ")
		return
	}
	n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: class})
}
