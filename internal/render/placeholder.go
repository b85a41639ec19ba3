package render

import (
	"strings"

	"github.com/dgallion1/seorender/internal/layout"
	"github.com/dgallion1/seorender/internal/markdown"
)

// Default placeholder heights. Reserving vertical space keeps the static
// page's geometry close to the hydrated one.
const (
	placeholderHeight      = "50px"
	placeholderHeightLarge = "300px"
)

// widgetPlaceholder converts an interactive (non-HTML-namespace) component
// into a plain div standing in for it: same id, a marker class derived from
// the component kind, and a reserved height. Markdown components render
// their body; Link components become anchors. The input node is never
// mutated.
func (r *Renderer) widgetPlaceholder(n *layout.Node) (*layout.Node, error) {
	if n.Type == "Link" {
		return &layout.Node{
			Type:      "A",
			Namespace: layout.HTMLNamespace,
			Props:     n.Props,
			Children:  n.Children,
		}, nil
	}

	marker := markerClass(n.Namespace, n.Type)
	props := map[string]any{"className": marker}

	if v, ok := n.Props["className"].(string); ok && v != "" {
		props["className"] = v + "-" + marker
	}
	if v, ok := n.Props["id"]; ok {
		props["id"] = v
	}

	style := copyStyle(n.Props["style"])
	if n.Type != "Markdown" {
		if _, ok := style["height"]; !ok {
			height := placeholderHeight
			if n.Type == "Graph" || n.Type == "DataTable" {
				height = placeholderHeightLarge
			}
			style["height"] = height
		}
	}
	if len(style) > 0 {
		props["style"] = style
	}

	div := &layout.Node{
		Type:      "Div",
		Namespace: layout.HTMLNamespace,
		Props:     props,
	}

	if n.Type == "Markdown" {
		body, err := markdown.Render(markdownSource(n.Children))
		if err != nil {
			return nil, err
		}
		div.Children = []any{rawHTML(body)}
	}
	return div, nil
}

// markerClass derives the placeholder class name from namespace and kind,
// e.g. dash_core_components/Graph -> ssr-dash-core-components-graph.
func markerClass(namespace, kind string) string {
	parts := append([]string{"ssr"}, strings.Split(namespace, "_")...)
	parts = append(parts, kind)
	return strings.ToLower(strings.Join(parts, "-"))
}

func copyStyle(v any) map[string]any {
	style := make(map[string]any)
	if m, ok := v.(map[string]any); ok {
		for k, val := range m {
			style[k] = val
		}
	}
	return style
}

// markdownSource collects the markdown body of a Markdown component. The
// body is a string child, or several that are joined by blank lines.
func markdownSource(children []any) string {
	var parts []string
	for _, child := range children {
		if s, ok := child.(string); ok {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}
