package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// block is what one spine item contributes: its visible text and the title
// candidates found while walking it.
type block struct {
	text     string
	heading  string // first h1-h3 shorter than maxHeadingLen
	docTitle string // contents of the <title> element
}

// parseBlock walks one item's HTML, collecting whitespace-normalized text
// and title candidates. script and style subtrees are skipped entirely.
func parseBlock(s string) block {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return block{}
	}

	var b block
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style":
				return
			case "title":
				if b.docTitle == "" {
					b.docTitle = nodeText(n)
				}
			case "h1", "h2", "h3":
				if b.heading == "" {
					if t := nodeText(n); t != "" && len(t) < maxHeadingLen {
						b.heading = t
					}
				}
			}
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				sb.WriteString(t)
				sb.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	b.text = sb.String()
	return b
}

// nodeText flattens the text content of a single element, collapsing
// whitespace.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}
