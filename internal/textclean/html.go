// Package textclean turns HTML-flavoured text (model output, pasted job postings, news
// descriptions) into plain text with light markdown emphasis.
package textclean

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var leftoverTag = regexp.MustCompile(`<[^>]+>`)

// emphasis maps inline tags to the markdown marker that replaces them.
var emphasis = map[string]string{
	"strong": "**",
	"b":      "**",
	"em":     "*",
	"i":      "*",
}

// HTML strips markup from s. Line breaks and paragraphs become block separators,
// bold and italic become markdown markers, entities are decoded and whitespace is collapsed.
func HTML(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return collapse(leftoverTag.ReplaceAllString(s, ""), "\n\n")
	}

	body := doc.Find("body")
	body.Find("script, style").Remove()
	body.Find("br").ReplaceWithHtml("\n")

	for {
		node := body.Find("strong, b, em, i").First()
		if node.Length() == 0 {
			break
		}
		inner, _ := node.Html()
		marker := emphasis[goquery.NodeName(node)]
		node.ReplaceWithHtml(marker + inner + marker)
	}

	for {
		node := body.Find("p, div, li, h1, h2, h3, h4, h5, h6").First()
		if node.Length() == 0 {
			break
		}
		inner, _ := node.Html()
		node.ReplaceWithHtml("\n" + inner + "\n")
	}

	text := leftoverTag.ReplaceAllString(body.Text(), "")
	return collapse(text, "\n\n")
}

// Inline strips markup and folds the result onto a single line.
func Inline(s string) string {
	return collapse(HTML(s), " ")
}

// collapse trims every line, drops blank ones, squeezes inner spaces and joins lines with sep.
func collapse(text, sep string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, sep)
}
