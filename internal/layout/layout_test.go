package layout

import (
	"testing"
)

func TestParse_WireFormat(t *testing.T) {
	data := []byte(`{
		"type": "Div",
		"namespace": "dash_html_components",
		"props": {
			"id": "root",
			"children": [
				{"type": "H1", "namespace": "dash_html_components", "props": {"children": "Hello"}},
				"plain text",
				42
			]
		}
	}`)

	root, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	node, ok := root.(*Node)
	if !ok {
		t.Fatalf("expected *Node root, got %T", root)
	}
	if node.Type != "Div" {
		t.Errorf("expected type Div, got %q", node.Type)
	}
	if node.Props["id"] != "root" {
		t.Errorf("expected id prop to survive, got %v", node.Props["id"])
	}
	if _, ok := node.Props["children"]; ok {
		t.Error("children must not remain in props")
	}
	if len(node.Children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(node.Children))
	}

	h1, ok := node.Children[0].(*Node)
	if !ok {
		t.Fatalf("expected first child to be *Node, got %T", node.Children[0])
	}
	if h1.Type != "H1" {
		t.Errorf("expected H1, got %q", h1.Type)
	}
	if len(h1.Children) != 1 || h1.Children[0] != "Hello" {
		t.Errorf("expected single text child %q, got %v", "Hello", h1.Children)
	}

	if node.Children[1] != "plain text" {
		t.Errorf("expected text leaf, got %v", node.Children[1])
	}
	if node.Children[2] != float64(42) {
		t.Errorf("expected numeric leaf 42, got %v", node.Children[2])
	}
}

func TestParse_SingleChildAndNull(t *testing.T) {
	root, err := Parse([]byte(`{"type": "P", "props": {"children": null}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if node := root.(*Node); len(node.Children) != 0 {
		t.Errorf("expected no children for null, got %v", node.Children)
	}
}

func TestParse_NestedChildArraysFlatten(t *testing.T) {
	root, err := Parse([]byte(`{"type": "Div", "props": {"children": [["a", "b"], "c"]}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	node := root.(*Node)
	if len(node.Children) != 3 {
		t.Fatalf("expected flattened children, got %v", node.Children)
	}
}

func TestParse_BareTextRoot(t *testing.T) {
	root, err := Parse([]byte(`"just text"`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root != "just text" {
		t.Errorf("expected bare string root, got %v", root)
	}
}

func TestParse_MissingType(t *testing.T) {
	if _, err := Parse([]byte(`{"props": {}}`)); err == nil {
		t.Fatal("expected error for node without type")
	}
}

func TestScalarText(t *testing.T) {
	cases := []struct {
		in   any
		want string
		ok   bool
	}{
		{"x", "x", true},
		{float64(5), "5", true},
		{float64(2.5), "2.5", true},
		{7, "7", true},
		{true, "true", true},
		{false, "false", true},
		{map[string]any{}, "", false},
		{[]any{}, "", false},
	}
	for _, c := range cases {
		got, ok := ScalarText(c.in)
		if ok != c.ok || got != c.want {
			t.Errorf("ScalarText(%v) = (%q, %v), want (%q, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestText_DepthFirstOrder(t *testing.T) {
	tree := &Node{
		Type: "Div",
		Children: []any{
			&Node{Type: "H1", Children: []any{"first"}},
			" ",
			&Node{Type: "P", Children: []any{"second", &Node{Type: "Em", Children: []any{" third"}}}},
		},
	}
	if got := Text(tree); got != "first second third" {
		t.Errorf("expected depth-first text, got %q", got)
	}
}
