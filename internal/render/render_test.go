package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/dgallion1/seorender/internal/layout"
)

func el(kind string, props map[string]any, children ...any) *layout.Node {
	return &layout.Node{
		Type:      kind,
		Namespace: layout.HTMLNamespace,
		Props:     props,
		Children:  children,
	}
}

func widget(kind string, props map[string]any, children ...any) *layout.Node {
	return &layout.Node{
		Type:      kind,
		Namespace: "dash_core_components",
		Props:     props,
		Children:  children,
	}
}

func mustRender(t *testing.T, r *Renderer, node any) string {
	t.Helper()
	out, err := r.Render(node)
	if err != nil {
		t.Fatalf("unexpected render error: %v", err)
	}
	return out
}

func TestRender_SimpleTree(t *testing.T) {
	r := New(Options{})
	tree := el("Div", nil, el("H1", nil, "Hello, world!"))

	got := mustRender(t, r, tree)
	want := "<div><h1>Hello, world!</h1></div>"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRender_TextEscaping(t *testing.T) {
	r := New(Options{})
	got := mustRender(t, r, el("P", nil, "5 < 10 & true"))
	want := "<p>5 &lt; 10 &amp; true</p>"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRender_ExcludedKindEmitsNothing(t *testing.T) {
	r := New(Options{})
	tree := el("Div", nil, widget("Graph", map[string]any{"id": "fig"}, el("Span", nil, "inner")))

	got := mustRender(t, r, tree)
	if got != "<div></div>" {
		t.Errorf("expected empty div, got %q", got)
	}
	if strings.Contains(strings.ToLower(got), "graph") || strings.Contains(got, "inner") {
		t.Errorf("excluded subtree leaked into output: %q", got)
	}
}

func TestRender_ExclusionIsConfigurable(t *testing.T) {
	// An empty non-nil set disables exclusion: the Graph now gets its
	// placeholder instead of vanishing.
	r := New(Options{Excluded: []string{}})
	got := mustRender(t, r, widget("Graph", nil))
	want := `<div class="ssr-dash-core-components-graph" style="height:300px"></div>`
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	r = New(Options{Excluded: []string{"Span"}})
	got = mustRender(t, r, el("Div", nil, el("Span", nil, "gone"), "kept"))
	if got != "<div>kept</div>" {
		t.Errorf("custom exclusion not honored: %q", got)
	}
}

func TestRender_NilAndLeaves(t *testing.T) {
	r := New(Options{})
	if got := mustRender(t, r, nil); got != "" {
		t.Errorf("nil input must render empty, got %q", got)
	}
	if got := mustRender(t, r, "loose text"); got != "loose text" {
		t.Errorf("expected bare text, got %q", got)
	}
	if got := mustRender(t, r, float64(3.5)); got != "3.5" {
		t.Errorf("expected number text, got %q", got)
	}
}

func TestRender_VoidElements(t *testing.T) {
	r := New(Options{})
	got := mustRender(t, r, el("Div", nil, el("Img", map[string]any{"src": "/x.png"}), el("Br", nil)))
	want := `<div><img src="/x.png"><br></div>`
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRender_EmptyContainerKeepsClosingTag(t *testing.T) {
	r := New(Options{})
	if got := mustRender(t, r, el("Div", nil)); got != "<div></div>" {
		t.Errorf("expected balanced empty div, got %q", got)
	}
}

func TestRender_Attributes(t *testing.T) {
	r := New(Options{})
	tree := el("A", map[string]any{
		"href":      "/x?a=1&b=2",
		"className": "nav",
		"tabIndex":  float64(3),
	}, "go")

	got := mustRender(t, r, tree)
	// Keys sorted, className translated, values escaped.
	want := `<a class="nav" href="/x?a=1&amp;b=2" tabindex="3">go</a>`
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRender_AttributeValueQuoting(t *testing.T) {
	r := New(Options{})
	got := mustRender(t, r, el("Div", map[string]any{"title": `say "hi"`}))
	if strings.Contains(got, `say "hi"`) {
		t.Errorf("quotes must be escaped in attribute values: %q", got)
	}
	if !strings.Contains(got, "&#34;") {
		t.Errorf("expected escaped quotes, got %q", got)
	}
}

func TestRender_BooleanAttributes(t *testing.T) {
	r := New(Options{})
	tree := el("Input", map[string]any{"disabled": true, "required": false, "type": "text"})
	got := mustRender(t, r, tree)
	want := `<input disabled type="text">`
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRender_StyleMap(t *testing.T) {
	r := New(Options{})
	tree := el("Div", map[string]any{
		"style": map[string]any{"width": "10px", "color": "red"},
	})
	got := mustRender(t, r, tree)
	want := `<div style="color:red; width:10px"></div>`
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRender_StructuredPropsSkipped(t *testing.T) {
	r := New(Options{})
	tree := el("Div", map[string]any{
		"id":     "x",
		"figure": map[string]any{"data": []any{}},
	})
	got := mustRender(t, r, tree)
	if got != `<div id="x"></div>` {
		t.Errorf("structured props must not become attributes: %q", got)
	}
}

func TestRender_WidgetPlaceholder(t *testing.T) {
	r := New(Options{})
	tree := widget("Slider", map[string]any{"id": "year", "className": "ctl"})
	got := mustRender(t, r, tree)
	want := `<div class="ctl-ssr-dash-core-components-slider" id="year" style="height:50px"></div>`
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRender_WidgetKeepsExplicitHeight(t *testing.T) {
	r := New(Options{})
	tree := widget("Slider", map[string]any{"style": map[string]any{"height": "80px"}})
	got := mustRender(t, r, tree)
	if !strings.Contains(got, "height:80px") || strings.Contains(got, "50px") {
		t.Errorf("explicit height must win: %q", got)
	}
}

func TestRender_LinkBecomesAnchor(t *testing.T) {
	r := New(Options{})
	tree := widget("Link", map[string]any{"href": "/about"}, "About")
	got := mustRender(t, r, tree)
	want := `<a href="/about">About</a>`
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRender_MarkdownWidget(t *testing.T) {
	r := New(Options{})
	tree := widget("Markdown", nil, "# Title\n\nBody text.")
	got := mustRender(t, r, tree)
	if !strings.Contains(got, `class="ssr-dash-core-components-markdown"`) {
		t.Errorf("missing markdown placeholder class: %q", got)
	}
	if !strings.Contains(got, "<h1>Title</h1>") || !strings.Contains(got, "Body text.") {
		t.Errorf("markdown body not rendered: %q", got)
	}
}

func TestRender_UnsupportedNodeKind(t *testing.T) {
	r := New(Options{})
	_, err := r.Render(el("Div", nil, map[string]any{"surprise": true}))
	var unsupported *UnsupportedNodeError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedNodeError, got %v", err)
	}
	if !strings.Contains(unsupported.Error(), "map[string]") {
		t.Errorf("error should name the offending kind: %v", unsupported)
	}
}

func TestRender_DepthGuard(t *testing.T) {
	r := New(Options{MaxDepth: 4})
	tree := el("Div", nil)
	node := tree
	for i := 0; i < 10; i++ {
		child := el("Div", nil)
		node.Children = []any{child}
		node = child
	}

	_, err := r.Render(tree)
	var structural *StructuralError
	if !errors.As(err, &structural) {
		t.Fatalf("expected StructuralError, got %v", err)
	}
	if structural.MaxDepth != 4 {
		t.Errorf("expected limit 4 in error, got %d", structural.MaxDepth)
	}
}

func TestRender_ErrorReturnsNoPartialOutput(t *testing.T) {
	r := New(Options{})
	out, err := r.Render(el("Div", nil, "before", map[string]any{}))
	if err == nil {
		t.Fatal("expected error")
	}
	if out != "" {
		t.Errorf("failed render must not emit a partial fragment, got %q", out)
	}
}

func TestRender_Deterministic(t *testing.T) {
	r := New(Options{})
	tree := el("Div", map[string]any{"a": "1", "b": "2", "c": "3", "style": map[string]any{"x": "1", "y": "2"}}, "t")
	first := mustRender(t, r, tree)
	for i := 0; i < 20; i++ {
		if got := mustRender(t, r, tree); got != first {
			t.Fatalf("output not deterministic: %q vs %q", first, got)
		}
	}
}
