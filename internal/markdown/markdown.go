// Package markdown renders the body of Markdown components to HTML.
package markdown

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// md mirrors the extension set the host framework documents for markdown
// props: tables, autolinked URLs, footnotes, definition lists, smart
// punctuation. Raw HTML in the source is suppressed (goldmark's default),
// which keeps crawler-facing output well formed.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Footnote,
		extension.DefinitionList,
		extension.Typographer,
	),
)

var (
	dccLinkRe      = regexp.MustCompile(`(?ms)<dccLink .*?/>`)
	dccLinkHrefRe  = regexp.MustCompile(`(?ms)href="(.*?)"`)
	dccLinkChildRe = regexp.MustCompile(`(?ms)children="(.*?)"`)
)

// Render converts markdown source to an HTML string.
func Render(src string) (string, error) {
	src = rewriteDCCLinks(dedent(src))
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// rewriteDCCLinks replaces <dccLink href=".." children=".."/> pseudo-tags
// (in-app navigation links) with ordinary markdown links.
func rewriteDCCLinks(src string) string {
	return dccLinkRe.ReplaceAllStringFunc(src, func(tag string) string {
		href := dccLinkHrefRe.FindStringSubmatch(tag)
		child := dccLinkChildRe.FindStringSubmatch(tag)
		if href == nil || child == nil {
			return ""
		}
		return fmt.Sprintf("[%s](%s)", child[1], href[1])
	})
}

// dedent strips the longest common leading whitespace from all non-blank
// lines. Markdown props written as indented Go or Python literals would
// otherwise parse as code blocks.
func dedent(src string) string {
	lines := strings.Split(src, "\n")
	margin := -1
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		indent := len(line) - len(trimmed)
		if margin < 0 || indent < margin {
			margin = indent
		}
	}
	if margin <= 0 {
		return src
	}
	for i, line := range lines {
		if len(line) >= margin && strings.TrimLeft(line[:margin], " \t") == "" {
			lines[i] = line[margin:]
		}
	}
	return strings.Join(lines, "\n")
}
