// Package markdown renders post bodies to HTML as a templ component. It
// covers the constructs short essays actually use: headings, paragraphs,
// unordered lists, blockquotes, fenced code, emphasis, links, and images.
package markdown

import (
	"bytes"
	"context"
	"html"
	"io"
	"net/url"
	"regexp"
	"strings"

	"github.com/a-h/templ"
)

var (
	reBold       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reItalic     = regexp.MustCompile(`\*([^*]+)\*`)
	reInlineCode = regexp.MustCompile("`([^`]+)`")
	reLink       = regexp.MustCompile(`\[(.*?)\]\((.*?)\)(\^)?`)
	reImg        = regexp.MustCompile(`\!\[(.*?)\]\((.*?)\)`)
)

// Markdown returns a templ.Component that renders md as HTML.
func Markdown(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		Render(&buf, content)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// Render writes the HTML representation of md to buf.
func Render(buf *bytes.Buffer, md string) {
	inPara := false
	inList := false
	inQuote := false
	inCode := false

	closePara := func() {
		if inPara {
			buf.WriteString("</p>")
			inPara = false
		}
	}
	closeList := func() {
		if inList {
			buf.WriteString("</ul>")
			inList = false
		}
	}
	closeQuote := func() {
		if inQuote {
			buf.WriteString("</blockquote>")
			inQuote = false
		}
	}
	closeBlocks := func() {
		closePara()
		closeList()
		closeQuote()
	}

	for _, raw := range strings.Split(md, "\n") {
		line := strings.TrimRight(raw, "\r")

		if strings.HasPrefix(line, "```") {
			if inCode {
				buf.WriteString("</code></pre>")
				inCode = false
			} else {
				closeBlocks()
				buf.WriteString(`<pre class="code-block"><code>`)
				inCode = true
			}
			continue
		}
		if inCode {
			buf.WriteString(html.EscapeString(line))
			buf.WriteString("\n")
			continue
		}

		if strings.TrimSpace(line) == "" {
			closeBlocks()
			continue
		}

		switch {
		case strings.HasPrefix(line, "---"):
			closeBlocks()
			buf.WriteString("<hr/>")
		case strings.HasPrefix(line, "### "):
			closeBlocks()
			buf.WriteString("<h3>" + inline(line[4:]) + "</h3>")
		case strings.HasPrefix(line, "## "):
			closeBlocks()
			buf.WriteString("<h2>" + inline(line[3:]) + "</h2>")
		case strings.HasPrefix(line, "# "):
			closeBlocks()
			buf.WriteString("<h1>" + inline(line[2:]) + "</h1>")
		case strings.HasPrefix(line, "- "):
			if !inList {
				closePara()
				closeQuote()
				buf.WriteString("<ul>")
				inList = true
			}
			buf.WriteString("<li>" + inline(line[2:]) + "</li>")
		case strings.HasPrefix(line, "> "):
			if !inQuote {
				closePara()
				closeList()
				buf.WriteString("<blockquote>")
				inQuote = true
			}
			buf.WriteString(inline(line[2:]))
		default:
			if !inPara {
				closeList()
				closeQuote()
				buf.WriteString("<p>")
				inPara = true
			} else {
				buf.WriteString(" ")
			}
			buf.WriteString(inline(strings.TrimSpace(line)))
		}
	}
	closeBlocks()
	if inCode {
		buf.WriteString("</code></pre>")
	}
}

func inline(s string) string {
	escaped := html.EscapeString(strings.TrimSpace(s))
	escaped = reImg.ReplaceAllStringFunc(escaped, func(m string) string {
		match := reImg.FindStringSubmatch(m)
		src := safeURL(match[2])
		if src == "" {
			return match[1]
		}
		return `<img alt="` + match[1] + `" src="` + src + `" loading="lazy" decoding="async"/>`
	})
	escaped = reLink.ReplaceAllStringFunc(escaped, func(m string) string {
		match := reLink.FindStringSubmatch(m)
		href := safeURL(match[2])
		if href == "" {
			return match[1]
		}
		attrs := ""
		if match[3] == "^" {
			attrs = ` target="_blank" rel="noopener noreferrer"`
		}
		return `<a href="` + href + `"` + attrs + `>` + match[1] + `</a>`
	})
	// Emphasis only outside tags so URLs in href attributes stay intact.
	escaped = applyOutsideTags(escaped, func(seg string) string {
		seg = reInlineCode.ReplaceAllString(seg, "<code>$1</code>")
		seg = reBold.ReplaceAllString(seg, "<strong>$1</strong>")
		seg = reItalic.ReplaceAllString(seg, "<em>$1</em>")
		return seg
	})
	return escaped
}

// applyOutsideTags applies fn only to text segments outside HTML tags.
func applyOutsideTags(s string, fn func(string) string) string {
	var buf strings.Builder
	for len(s) > 0 {
		lt := strings.Index(s, "<")
		if lt < 0 {
			buf.WriteString(fn(s))
			break
		}
		if lt > 0 {
			buf.WriteString(fn(s[:lt]))
		}
		gt := strings.Index(s[lt:], ">")
		if gt < 0 {
			buf.WriteString(s[lt:])
			break
		}
		buf.WriteString(s[lt : lt+gt+1])
		s = s[lt+gt+1:]
	}
	return buf.String()
}

func safeURL(raw string) string {
	val := strings.TrimSpace(html.UnescapeString(raw))
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "/") || strings.HasPrefix(val, "#") {
		return html.EscapeString(val)
	}
	parsed, err := url.Parse(val)
	if err != nil || parsed.Scheme == "" {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "mailto", "tel":
		return html.EscapeString(val)
	default:
		return ""
	}
}
