package layout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Namespaces of the plain-HTML component library. Components from any other
// namespace are interactive widgets that need placeholder treatment.
const HTMLNamespace = "dash_html_components"

// Node is a single component in a declarative layout tree: a semantic tag,
// an attribute mapping, and an ordered list of children. Children are one of
// nil, string, float64, int, bool, or *Node. The tree is built once by the
// caller and is read-only afterwards.
type Node struct {
	Type      string
	Namespace string
	Props     map[string]any // component props, children removed
	Children  []any
}

// IsHTML reports whether the node belongs to the plain-HTML component set.
func (n *Node) IsHTML() bool {
	return n.Namespace == "" || n.Namespace == HTMLNamespace
}

// wireNode is the JSON form served by a Dash app at /_dash-layout:
// {"type": "Div", "namespace": "dash_html_components", "props": {...}}.
// The children live inside props and may be a single value or an array.
type wireNode struct {
	Type      string                     `json:"type"`
	Namespace string                     `json:"namespace"`
	Props     map[string]json.RawMessage `json:"props"`
}

func (n *Node) UnmarshalJSON(data []byte) error {
	var wire wireNode
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if wire.Type == "" {
		return fmt.Errorf("layout node has no type")
	}

	n.Type = wire.Type
	n.Namespace = wire.Namespace
	n.Props = make(map[string]any, len(wire.Props))
	n.Children = nil

	for key, raw := range wire.Props {
		if key == "children" {
			children, err := decodeChildren(raw)
			if err != nil {
				return fmt.Errorf("children of %s: %w", wire.Type, err)
			}
			n.Children = children
			continue
		}
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("prop %s of %s: %w", key, wire.Type, err)
		}
		n.Props[key] = v
	}
	return nil
}

// Parse decodes a serialized layout. The root may be a component object or a
// bare text leaf, matching what Dash accepts for app.layout.
func Parse(data []byte) (any, error) {
	root, err := decodeChild(json.RawMessage(data))
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	return root, nil
}

// decodeChildren handles the children prop: an array, a single value, or
// null. Nested arrays are flattened in order.
func decodeChildren(raw json.RawMessage) ([]any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		var children []any
		for _, item := range items {
			sub := bytes.TrimSpace(item)
			if len(sub) > 0 && sub[0] == '[' {
				nested, err := decodeChildren(item)
				if err != nil {
					return nil, err
				}
				children = append(children, nested...)
				continue
			}
			child, err := decodeChild(item)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		return children, nil
	}
	child, err := decodeChild(trimmed)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, nil
	}
	return []any{child}, nil
}

func decodeChild(raw json.RawMessage) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] == '{' {
		node := &Node{}
		if err := json.Unmarshal(trimmed, node); err != nil {
			return nil, err
		}
		return node, nil
	}
	var v any
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// ScalarText returns the textual form of a leaf value. The second return is
// false for values that are not text leaves (components, maps, slices).
func ScalarText(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case bool:
		// Matches how boolean props appear in markup attributes.
		if t {
			return "true", true
		}
		return "false", true
	}
	return "", false
}

// Text flattens the visible text of a tree depth-first, left to right. It
// reports all text, including text under excluded component kinds; the
// renderer, not this helper, decides what reaches the output.
func Text(node any) string {
	var b strings.Builder
	collectText(&b, node)
	return b.String()
}

func collectText(b *strings.Builder, node any) {
	if node == nil {
		return
	}
	if n, ok := node.(*Node); ok {
		for _, child := range n.Children {
			collectText(b, child)
		}
		return
	}
	if s, ok := ScalarText(node); ok {
		b.WriteString(s)
	}
}
