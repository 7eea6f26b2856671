package markdown

import (
	"bytes"
	"strings"
	"testing"
)

func render(md string) string {
	var buf bytes.Buffer
	Render(&buf, md)
	return buf.String()
}

func TestHeadings(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"# Title", "<h1>Title</h1>"},
		{"## Section", "<h2>Section</h2>"},
		{"### Sub", "<h3>Sub</h3>"},
	}
	for _, tt := range tests {
		if got := render(tt.in); got != tt.want {
			t.Errorf("render(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParagraphs(t *testing.T) {
	got := render("first line\nsecond line\n\nnew paragraph")
	want := "<p>first line second line</p><p>new paragraph</p>"
	if got != want {
		t.Errorf("render = %q, want %q", got, want)
	}
}

func TestList(t *testing.T) {
	got := render("- one\n- two")
	want := "<ul><li>one</li><li>two</li></ul>"
	if got != want {
		t.Errorf("render = %q, want %q", got, want)
	}
}

func TestBlockquote(t *testing.T) {
	got := render("> wisdom")
	if got != "<blockquote>wisdom</blockquote>" {
		t.Errorf("render = %q", got)
	}
}

func TestHorizontalRule(t *testing.T) {
	if got := render("---"); got != "<hr/>" {
		t.Errorf("render = %q", got)
	}
}

func TestCodeFence(t *testing.T) {
	got := render("```\nfmt.Println(\"<hi>\")\n```")
	if !strings.Contains(got, `<pre class="code-block"><code>`) {
		t.Errorf("missing code block wrapper: %q", got)
	}
	// Code content is escaped, not interpreted.
	if !strings.Contains(got, "&lt;hi&gt;") {
		t.Errorf("code content not escaped: %q", got)
	}
	if !strings.HasSuffix(got, "</code></pre>") {
		t.Errorf("code block not closed: %q", got)
	}
}

func TestUnclosedCodeFence(t *testing.T) {
	got := render("```\ndangling")
	if !strings.HasSuffix(got, "</code></pre>") {
		t.Errorf("unclosed fence left open: %q", got)
	}
}

func TestInlineEmphasis(t *testing.T) {
	got := render("**bold** and *italic* and `code`")
	for _, want := range []string{"<strong>bold</strong>", "<em>italic</em>", "<code>code</code>"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %s in %q", want, got)
		}
	}
}

func TestLinks(t *testing.T) {
	got := render("[here](https://example.com)")
	if !strings.Contains(got, `<a href="https://example.com">here</a>`) {
		t.Errorf("render = %q", got)
	}

	// The caret suffix opens in a new tab.
	got = render("[out](https://example.com)^")
	if !strings.Contains(got, `target="_blank"`) || !strings.Contains(got, `rel="noopener noreferrer"`) {
		t.Errorf("caret link missing new-tab attrs: %q", got)
	}
}

func TestUnsafeLinkSchemeDropped(t *testing.T) {
	got := render("[click](javascript:alert(1))")
	if strings.Contains(got, "javascript") {
		t.Errorf("unsafe scheme survived: %q", got)
	}
	if !strings.Contains(got, "click") {
		t.Errorf("link text lost: %q", got)
	}
}

func TestImage(t *testing.T) {
	got := render("![alt text](/public/uploads/pic.jpg)")
	if !strings.Contains(got, `<img alt="alt text" src="/public/uploads/pic.jpg"`) {
		t.Errorf("render = %q", got)
	}
}

func TestHTMLEscaped(t *testing.T) {
	got := render("<script>alert(1)</script>")
	if strings.Contains(got, "<script>") {
		t.Errorf("raw html not escaped: %q", got)
	}
}

func TestEmphasisInsideLinkURLUntouched(t *testing.T) {
	// Underscore/asterisk lookalikes inside the href must not be rewritten.
	got := render("[x](https://example.com/a*b*c)")
	if !strings.Contains(got, `href="https://example.com/a*b*c"`) {
		t.Errorf("href mangled: %q", got)
	}
}
