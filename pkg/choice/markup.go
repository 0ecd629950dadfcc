package choice

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// OptionNode is one rendered entry of a selection widget.
type OptionNode struct {
	Value    string `json:"value"`
	Text     string `json:"text"`
	Selected bool   `json:"selected"`
}

// Build emits one OptionNode per choice, in set order. A node is selected when
// its value appears in selection; selected values outside the set are ignored.
func Build(set Set, selection Selection) []OptionNode {
	if set.Len() == 0 {
		return nil
	}
	out := make([]OptionNode, 0, set.Len())
	for _, c := range set.choices {
		out = append(out, OptionNode{
			Value:    c.Value,
			Text:     c.Name,
			Selected: selection.Contains(c.Value),
		})
	}
	return out
}

// Nodes converts options into detached <option> elements.
func Nodes(options []OptionNode) []*html.Node {
	out := make([]*html.Node, 0, len(options))
	for _, option := range options {
		node := &html.Node{
			Type:     html.ElementNode,
			Data:     "option",
			DataAtom: atom.Option,
			Attr:     []html.Attribute{{Key: "value", Val: option.Value}},
		}
		if option.Selected {
			node.Attr = append(node.Attr, html.Attribute{Key: "selected"})
		}
		node.AppendChild(&html.Node{Type: html.TextNode, Data: option.Text})
		out = append(out, node)
	}
	return out
}

// Render serialises options as concatenated <option> markup.
func Render(options []OptionNode) (string, error) {
	var b strings.Builder
	for _, node := range Nodes(options) {
		if err := html.Render(&b, node); err != nil {
			return "", fmt.Errorf("choice: render option: %w", err)
		}
	}
	return b.String(), nil
}

// RenderSet is shorthand for Render(Build(set, selection)).
func RenderSet(set Set, selection Selection) (string, error) {
	return Render(Build(set, selection))
}

// ParseOptions reads <option> markup (optionally grouped in <optgroup>) back
// into option nodes, the way a browser fills a <select> from innerHTML.
func ParseOptions(markup string) ([]OptionNode, error) {
	context := &html.Node{Type: html.ElementNode, Data: "select", DataAtom: atom.Select}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, fmt.Errorf("choice: parse options: %w", err)
	}
	var out []OptionNode
	for _, node := range nodes {
		out = collectOptions(node, out)
	}
	return out, nil
}

func collectOptions(node *html.Node, out []OptionNode) []OptionNode {
	if node.Type != html.ElementNode {
		return out
	}
	switch node.DataAtom {
	case atom.Option:
		text := strings.TrimSpace(textContent(node))
		option := OptionNode{Text: text, Value: text}
		for _, attr := range node.Attr {
			switch attr.Key {
			case "value":
				option.Value = attr.Val
			case "selected":
				option.Selected = true
			}
		}
		return append(out, option)
	case atom.Optgroup:
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			out = collectOptions(child, out)
		}
	}
	return out
}

func textContent(node *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(node)
	return b.String()
}
