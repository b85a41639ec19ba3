// Package page splices rendered fragments into an application's HTML shell.
package page

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// DefaultMountID is the element the client-side runtime hydrates into. The
// fragment is placed inside it so crawlers see the content at the same spot
// the live render will occupy.
const DefaultMountID = "react-entry-point"

// Options configures injection.
type Options struct {
	// MountID is the id of the element to inject into. Empty means
	// DefaultMountID.
	MountID string
}

// Inject parses the shell, appends the fragment inside the mount element,
// and re-serializes the document. The fragment is inserted as a raw node so
// its markup survives verbatim. A shell without the mount element is an
// error: silently returning the shell unchanged would hide a broken
// integration from the operator while crawlers index an empty page.
func Inject(shell, fragment string, opts Options) (string, error) {
	mountID := opts.MountID
	if mountID == "" {
		mountID = DefaultMountID
	}

	doc, err := html.Parse(strings.NewReader(shell))
	if err != nil {
		return "", fmt.Errorf("parse shell: %w", err)
	}

	mount := findByID(doc, mountID)
	if mount == nil {
		return "", fmt.Errorf("mount element #%s not found in shell", mountID)
	}
	mount.AppendChild(&html.Node{Type: html.RawNode, Data: fragment})

	return renderDoc(doc)
}

// InjectJSONLD adds structured data to the document head. A string value is
// spliced verbatim (it must be a complete tag); a map is marshalled into an
// application/ld+json script element.
func InjectJSONLD(shell string, jsonld any) (string, error) {
	var snippet string
	switch v := jsonld.(type) {
	case string:
		snippet = v
	case map[string]any:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal json-ld: %w", err)
		}
		snippet = "<script type=\"application/ld+json\">\n" + string(data) + "\n</script>"
	default:
		return "", fmt.Errorf("json-ld must be a string or an object, got %T", jsonld)
	}

	doc, err := html.Parse(strings.NewReader(shell))
	if err != nil {
		return "", fmt.Errorf("parse shell: %w", err)
	}

	head := findElement(doc, "head")
	if head == nil {
		return "", fmt.Errorf("shell has no head element")
	}
	head.AppendChild(&html.Node{Type: html.RawNode, Data: snippet})

	return renderDoc(doc)
}

func renderDoc(doc *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return "", fmt.Errorf("render shell: %w", err)
	}
	return buf.String(), nil
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, attr := range n.Attr {
			if attr.Key == "id" && attr.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}
