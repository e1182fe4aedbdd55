package markdown

import (
	"strings"
	"testing"
)

func TestRenderHeadings(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"# Title", "<h1>Title</h1>"},
		{"## Section", "<h2>Section</h2>"},
		{"### Sub", "<h3>Sub</h3>"},
		{"#### Deep", "<h4>Deep</h4>"},
	}
	for _, tt := range tests {
		if got := Render(tt.input); got != tt.want {
			t.Errorf("Render(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRenderParagraph(t *testing.T) {
	got := Render("Hello **world**.")
	want := "<p>Hello <strong>world</strong>.\n</p>"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderParagraphJoinsLines(t *testing.T) {
	got := Render("first line\nsecond line\n\nnew paragraph")
	if strings.Count(got, "<p>") != 2 {
		t.Errorf("want 2 paragraphs, got %q", got)
	}
	if !strings.Contains(got, "first line\n second line\n") {
		t.Errorf("consecutive lines should share a paragraph, got %q", got)
	}
}

func TestRenderHorizontalRule(t *testing.T) {
	got := Render("above\n\n---\n\nbelow")
	if !strings.Contains(got, "<hr/>") {
		t.Errorf("missing <hr/> in %q", got)
	}
}

func TestRenderLists(t *testing.T) {
	got := Render("- one\n- two")
	want := "<ul><li>one</li><li>two</li></ul>"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}

	got = Render("1. one\n2. two")
	want = "<ol><li>one</li><li>two</li></ol>"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderBlockquote(t *testing.T) {
	got := Render("> wise words")
	want := "<blockquote>wise words</blockquote>"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderCodeBlockWithLanguage(t *testing.T) {
	got := Render("```go\nfmt.Println(1)\n```")
	want := `<div class="codeblock"><span class="codeblock-lang">go</span><pre><code class="language-go">fmt.Println(1)` + "\n</code></pre></div>"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderCodeBlockPlain(t *testing.T) {
	got := Render("```\nplain text\n```")
	want := "<pre><code>plain text\n</code></pre>"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderCodeBlockEscapesHTML(t *testing.T) {
	got := Render("```\n<script>alert(1)</script>\n```")
	if strings.Contains(got, "<script>") {
		t.Errorf("code block content must be escaped, got %q", got)
	}
	if !strings.Contains(got, "&lt;script&gt;") {
		t.Errorf("expected escaped script tag in %q", got)
	}
}

func TestRenderCodeBlockIgnoresMarkdown(t *testing.T) {
	got := Render("```\n# not a heading\n- not a list\n```")
	if strings.Contains(got, "<h1>") || strings.Contains(got, "<li>") {
		t.Errorf("markdown inside fences must stay literal, got %q", got)
	}
}

func TestRenderUnclosedFence(t *testing.T) {
	got := Render("```go\ncode")
	if !strings.Contains(got, "</code></pre></div>") {
		t.Errorf("unclosed fence should be closed at end of input, got %q", got)
	}
}

func TestRenderTable(t *testing.T) {
	got := Render("| A | B |\n| --- | --- |\n| 1 | 2 |")
	want := "<table><thead><tr><th>A</th><th>B</th></tr></thead><tbody><tr><td>1</td><td>2</td></tr></tbody></table>"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestInlineEmphasis(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"**bold**", "<strong>bold</strong>"},
		{"__bold__", "<strong>bold</strong>"},
		{"*italic*", "<em>italic</em>"},
		{"_italic_", "<em>italic</em>"},
		{"~~gone~~", "<del>gone</del>"},
	}
	for _, tt := range tests {
		if got := Inline(tt.input); got != tt.want {
			t.Errorf("Inline(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestInlineCodeSpan(t *testing.T) {
	got := Inline("run `go vet` first")
	want := "run <code>go vet</code> first"
	if got != want {
		t.Errorf("Inline = %q, want %q", got, want)
	}
}

func TestInlineCodeSpanProtectsContent(t *testing.T) {
	got := Inline("`**not bold** and _not italic_`")
	want := "<code>**not bold** and _not italic_</code>"
	if got != want {
		t.Errorf("Inline = %q, want %q", got, want)
	}
}

func TestInlineLink(t *testing.T) {
	got := Inline("[docs](https://example.com/docs)")
	want := `<a href="https://example.com/docs">docs</a>`
	if got != want {
		t.Errorf("Inline = %q, want %q", got, want)
	}
}

func TestInlineLinkNewTab(t *testing.T) {
	got := Inline("[docs](https://example.com)^")
	want := `<a href="https://example.com" target="_blank" rel="noopener noreferrer">docs</a>`
	if got != want {
		t.Errorf("Inline = %q, want %q", got, want)
	}
}

func TestInlineLinkHrefUnderscoresSurvive(t *testing.T) {
	got := Inline("[page](/my_long_path)")
	want := `<a href="/my_long_path">page</a>`
	if got != want {
		t.Errorf("underscores in href must not become emphasis: %q", got)
	}
}

func TestInlineImage(t *testing.T) {
	got := Inline("![cat](/img/cat.jpg)")
	want := `<img alt="cat" src="/img/cat.jpg" loading="lazy" decoding="async"/>`
	if got != want {
		t.Errorf("Inline = %q, want %q", got, want)
	}
}

func TestInlineImageWithDimensions(t *testing.T) {
	got := Inline("![cat](/img/cat.jpg){800x600}")
	want := `<img alt="cat" src="/img/cat.jpg" loading="lazy" decoding="async" width="800" height="600"/>`
	if got != want {
		t.Errorf("Inline = %q, want %q", got, want)
	}
}

func TestInlineEscapesHTML(t *testing.T) {
	got := Inline("a < b & c > d")
	if strings.ContainsAny(got, "<>") && !strings.Contains(got, "&lt;") {
		t.Errorf("raw angle brackets must be escaped, got %q", got)
	}
	if !strings.Contains(got, "&amp;") {
		t.Errorf("ampersand must be escaped, got %q", got)
	}
}

func TestInlineRejectsUnsafeLink(t *testing.T) {
	got := Inline("[x](javascript:alert('hi'))")
	if strings.Contains(got, "javascript") || strings.Contains(got, "<a") {
		t.Errorf("unsafe scheme must not produce a link, got %q", got)
	}
}

func TestSafeURL(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"/blog/post/", "/blog/post/"},
		{"#section", "#section"},
		{"https://example.com", "https://example.com"},
		{"http://example.com", "http://example.com"},
		{"mailto:me@example.com", "mailto:me@example.com"},
		{"tel:+123456", "tel:+123456"},
		{"javascript:alert(1)", ""},
		{"data:text/html,x", ""},
		{"relative/path", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SafeURL(tt.input); got != tt.want {
			t.Errorf("SafeURL(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
