package mailintake

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var blankLines = regexp.MustCompile(`\n{3,}`)

// HTMLToText converts an HTML email body to plain text. Table rows come out
// as single lines with cells joined by " | ", which is the shape the product
// table extractor expects. Script, style and head content is dropped.
// Unparseable input is returned as-is: downstream extractors treat any text
// they cannot make sense of as a no-match.
func HTMLToText(htmlContent string) string {
	if htmlContent == "" {
		return ""
	}

	root, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return htmlContent
	}

	var b strings.Builder
	renderNode(&b, root)

	text := blankLines.ReplaceAllString(b.String(), "\n\n")
	return strings.TrimSpace(text)
}

func renderNode(b *strings.Builder, n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "head", "meta", "link", "title":
			return
		case "tr":
			renderTableRow(b, n)
			return
		case "br":
			b.WriteString("\n")
			return
		case "p", "div", "table", "ul", "ol", "li", "h1", "h2", "h3", "h4", "h5", "h6":
			b.WriteString("\n")
		}
	}
	if n.Type == html.TextNode {
		writeCollapsed(b, n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		renderNode(b, c)
	}
	if n.Type == html.ElementNode {
		switch n.Data {
		case "p", "div", "table", "ul", "ol", "li", "h1", "h2", "h3", "h4", "h5", "h6":
			b.WriteString("\n")
		}
	}
}

func renderTableRow(b *strings.Builder, row *html.Node) {
	var cells []string
	for c := row.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			cells = append(cells, strings.TrimSpace(nodeText(c)))
		}
	}
	if len(cells) == 0 {
		return
	}
	b.WriteString("\n")
	b.WriteString(strings.Join(cells, " | "))
	b.WriteString("\n")
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			writeCollapsed(&b, n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

// writeCollapsed appends text with runs of whitespace collapsed to one
// space, so HTML source indentation does not leak into the output.
func writeCollapsed(b *strings.Builder, s string) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return
	}
	if b.Len() > 0 {
		last := b.String()[b.Len()-1]
		if last != '\n' && last != ' ' {
			b.WriteString(" ")
		}
	}
	b.WriteString(strings.Join(fields, " "))
}
