package markdown

import (
	"strings"
	"testing"
)

func TestRender_Headings(t *testing.T) {
	out, err := Render("# Title\n\nSome body.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "<h1>Title</h1>") {
		t.Errorf("expected h1, got %q", out)
	}
	if !strings.Contains(out, "<p>Some body.</p>") {
		t.Errorf("expected paragraph, got %q", out)
	}
}

func TestRender_IndentedSourceIsNotACodeBlock(t *testing.T) {
	// Markdown written as an indented literal in host-app source.
	src := `
	    # Heading

	    Body line.
	`
	out, err := Render(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, "<pre>") {
		t.Errorf("indented source must be dedented, got %q", out)
	}
	if !strings.Contains(out, "<h1>Heading</h1>") {
		t.Errorf("expected heading after dedent, got %q", out)
	}
}

func TestRender_BareURLsAutolink(t *testing.T) {
	out, err := Render("see https://example.com for details")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `<a href="https://example.com"`) {
		t.Errorf("expected autolinked URL, got %q", out)
	}
}

func TestRender_RawHTMLSuppressed(t *testing.T) {
	out, err := Render("before <script>alert(1)</script> after")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, "<script>") {
		t.Errorf("raw HTML must not pass through, got %q", out)
	}
}

func TestRewriteDCCLinks(t *testing.T) {
	src := `Read the <dccLink href="/guide" children="user guide"/> first.`
	got := rewriteDCCLinks(src)
	want := "Read the [user guide](/guide) first."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRewriteDCCLinks_MalformedTagDropped(t *testing.T) {
	src := `x <dccLink nothing-useful/> y`
	got := rewriteDCCLinks(src)
	if strings.Contains(got, "dccLink") {
		t.Errorf("malformed pseudo-tag must be removed, got %q", got)
	}
}

func TestRender_Tables(t *testing.T) {
	out, err := Render("| a | b |\n|---|---|\n| 1 | 2 |")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "<table>") {
		t.Errorf("expected GFM table, got %q", out)
	}
}
