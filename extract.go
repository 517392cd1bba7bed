package mailtmpl

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// extractSubject parses rendered HTML and returns the text of the first
// <title> element in document order, with runs of whitespace collapsed to
// single spaces and the ends trimmed. A missing title is not an error; the
// subject is simply empty. Only a failure to parse the document itself is
// reported.
func extractSubject(rendered string) (string, error) {
	doc, err := html.Parse(strings.NewReader(rendered))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHTMLParse, err)
	}

	title := findElement(doc, "title")
	if title == nil {
		return "", nil
	}
	return collapseWhitespace(textContent(title)), nil
}

// findElement walks the node tree depth-first and returns the first element
// with the given tag name.
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

// textContent concatenates all text nodes under n.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// collapseWhitespace folds runs of whitespace into single spaces and trims
// the ends.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
