// Package render serializes a component layout tree into a static HTML
// fragment for crawler-facing output. The serializer is pure: it reads the
// tree, allocates its own output, and leaves no shared state behind, so
// concurrent calls need no synchronization.
package render

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/dgallion1/seorender/internal/layout"
)

const defaultMaxDepth = 1000

// Options configures a Renderer.
type Options struct {
	// Excluded is the set of component kinds that are never expanded into
	// markup. Nil means DefaultExcluded; an empty non-nil slice disables
	// exclusion entirely.
	Excluded []string

	// MaxDepth guards against malformed (cyclic) input. Zero means the
	// default of 1000.
	MaxDepth int
}

// Renderer converts layout trees to HTML fragments.
type Renderer struct {
	excluded map[string]bool
	maxDepth int
}

func New(opts Options) *Renderer {
	excluded := opts.Excluded
	if excluded == nil {
		excluded = DefaultExcluded
	}
	set := make(map[string]bool, len(excluded))
	for _, kind := range excluded {
		set[strings.ToLower(kind)] = true
	}
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}
	return &Renderer{excluded: set, maxDepth: maxDepth}
}

// rawHTML is pre-rendered markup (markdown output) that must be written
// verbatim rather than escaped. It never appears in caller-supplied trees.
type rawHTML string

// Render serializes a layout tree. The node may be a *layout.Node, a plain
// text or number leaf, or nil (no content). On error no partial fragment is
// returned: the result is always either a complete balanced fragment or
// empty alongside the error.
func (r *Renderer) Render(node any) (string, error) {
	var b strings.Builder
	if err := r.renderNode(&b, node, 0); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Excluded reports whether a component kind is in the exclusion set.
func (r *Renderer) Excluded(kind string) bool {
	return r.excluded[strings.ToLower(kind)]
}

func (r *Renderer) renderNode(b *strings.Builder, node any, depth int) error {
	if depth > r.maxDepth {
		return &StructuralError{MaxDepth: r.maxDepth}
	}
	switch v := node.(type) {
	case nil:
		return nil
	case rawHTML:
		b.WriteString(string(v))
		return nil
	case *layout.Node:
		return r.renderComponent(b, v, depth)
	case layout.Node:
		return r.renderComponent(b, &v, depth)
	default:
		if s, ok := layout.ScalarText(v); ok {
			b.WriteString(html.EscapeString(s))
			return nil
		}
		return &UnsupportedNodeError{Kind: fmt.Sprintf("%T", v)}
	}
}

func (r *Renderer) renderComponent(b *strings.Builder, n *layout.Node, depth int) error {
	if r.Excluded(n.Type) {
		// Performance short-circuit: the subtree is never visited.
		return nil
	}
	if !n.IsHTML() {
		conv, err := r.widgetPlaceholder(n)
		if err != nil {
			return err
		}
		return r.renderComponent(b, conv, depth)
	}
	return r.renderElement(b, strings.ToLower(n.Type), n.Props, n.Children, depth)
}

func (r *Renderer) renderElement(b *strings.Builder, tag string, props map[string]any, children []any, depth int) error {
	b.WriteByte('<')
	b.WriteString(tag)
	writeAttrs(b, props)

	if voidElements[tag] {
		b.WriteByte('>')
		return nil
	}

	b.WriteByte('>')
	for _, child := range children {
		if err := r.renderNode(b, child, depth+1); err != nil {
			return err
		}
	}
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteByte('>')
	return nil
}

// writeAttrs serializes props as name="value" pairs. Keys are sorted so
// output is deterministic; unknown props pass through opaquely as long as
// their values are scalar.
func writeAttrs(b *strings.Builder, props map[string]any) {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		name := attrName(key)
		if name == "children" {
			continue
		}
		value := props[key]

		if name == "style" {
			if s := styleAttr(value); s != "" {
				b.WriteString(` style="`)
				b.WriteString(html.EscapeString(s))
				b.WriteByte('"')
			}
			continue
		}
		if boolAttrs[name] {
			if truthy(value) {
				b.WriteByte(' ')
				b.WriteString(name)
			}
			continue
		}
		s, ok := layout.ScalarText(value)
		if !ok {
			// Structured prop values (callback state, figures) have no
			// attribute form.
			continue
		}
		b.WriteByte(' ')
		b.WriteString(name)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(s))
		b.WriteByte('"')
	}
}

func attrName(key string) string {
	if key == "className" || key == "classname" {
		return "class"
	}
	return strings.ToLower(key)
}

// styleAttr turns a style prop into CSS declaration text. Style props arrive
// either as maps (the declarative form) or as ready CSS strings.
func styleAttr(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		decls := make([]string, 0, len(keys))
		for _, k := range keys {
			val, ok := layout.ScalarText(v[k])
			if !ok {
				continue
			}
			decls = append(decls, k+":"+val)
		}
		return strings.Join(decls, "; ")
	}
	return ""
}

func truthy(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return v != "" && !strings.EqualFold(v, "false")
	case float64:
		return v != 0
	case int:
		return v != 0
	case nil:
		return false
	}
	return true
}
