// Package markdown renders the small markdown dialect used in post bodies
// to HTML, exposed as a templ component.
package markdown

import (
	"bytes"
	"context"
	"html"
	"io"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

var (
	reBold        = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBoldAlt     = regexp.MustCompile(`__(.+?)__`)
	reEmph        = regexp.MustCompile(`\*([^*]+)\*`)
	reEmphAlt     = regexp.MustCompile(`_([^_]+)_`)
	reStrike      = regexp.MustCompile(`~~(.+?)~~`)
	reCode        = regexp.MustCompile("`([^`]+)`")
	reLink        = regexp.MustCompile(`\[(.*?)\]\((.*?)\)(\^)?`)
	reOrderedItem = regexp.MustCompile(`^\d+\.\s`)
	// ![alt](url) or ![alt](url){WxH}
	reImage = regexp.MustCompile(`!\[(.*?)\]\((.*?)\)(?:\{(\d+)x(\d+)\})?`)
)

// Markdown returns a templ.Component that renders src as HTML.
func Markdown(src string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, Render(src))
		return err
	})
}

// Render converts src to HTML.
func Render(src string) string {
	r := &renderer{}
	for _, raw := range strings.Split(src, "\n") {
		r.line(strings.TrimRight(raw, "\r"))
	}
	r.closeAll()
	return r.out.String()
}

// block identifies the currently open block element.
type block int

const (
	blockNone block = iota
	blockParagraph
	blockList
	blockOrderedList
	blockQuote
	blockTable
)

type renderer struct {
	out       bytes.Buffer
	open      block
	inCode    bool
	codeLang  bool // current code fence carries a language badge
	tableBody bool // header row emitted, now inside <tbody>
}

func (r *renderer) line(line string) {
	if strings.HasPrefix(line, "```") {
		if r.inCode {
			r.closeCode()
		} else {
			r.closeBlock()
			r.openCode(strings.TrimSpace(line[3:]))
		}
		return
	}

	if r.inCode {
		r.out.WriteString(html.EscapeString(line))
		r.out.WriteByte('\n')
		return
	}

	if strings.TrimSpace(line) == "" {
		r.closeBlock()
		return
	}

	switch {
	case strings.HasPrefix(line, "---"):
		r.closeBlock()
		r.out.WriteString("<hr/>")
	case strings.HasPrefix(line, "#### "):
		r.heading(4, line[5:])
	case strings.HasPrefix(line, "### "):
		r.heading(3, line[4:])
	case strings.HasPrefix(line, "## "):
		r.heading(2, line[3:])
	case strings.HasPrefix(line, "# "):
		r.heading(1, line[2:])
	case strings.HasPrefix(line, "|"):
		r.tableRow(line)
	case strings.HasPrefix(line, "- "):
		r.item(blockList, "<ul>", line[2:])
	case reOrderedItem.MatchString(line):
		r.item(blockOrderedList, "<ol>", reOrderedItem.ReplaceAllString(line, ""))
	case strings.HasPrefix(line, "> "):
		if r.open != blockQuote {
			r.closeBlock()
			r.out.WriteString("<blockquote>")
			r.open = blockQuote
		}
		r.out.WriteString(Inline(strings.TrimSpace(line[2:])))
	default:
		if r.open != blockParagraph {
			r.closeBlock()
			r.out.WriteString("<p>")
			r.open = blockParagraph
		} else {
			r.out.WriteByte(' ')
		}
		r.out.WriteString(Inline(strings.TrimSpace(line)) + "\n")
	}
}

func (r *renderer) heading(level int, text string) {
	r.closeBlock()
	tag := "h" + strconv.Itoa(level)
	r.out.WriteString("<" + tag + ">")
	r.out.WriteString(Inline(strings.TrimSpace(text)))
	r.out.WriteString("</" + tag + ">")
}

func (r *renderer) item(kind block, openTag, text string) {
	if r.open != kind {
		r.closeBlock()
		r.out.WriteString(openTag)
		r.open = kind
	}
	r.out.WriteString("<li>")
	r.out.WriteString(Inline(strings.TrimSpace(text)))
	r.out.WriteString("</li>")
}

func (r *renderer) tableRow(line string) {
	cells := splitTableCells(line)
	if r.open != blockTable {
		r.closeBlock()
		r.out.WriteString("<table><thead><tr>")
		for _, cell := range cells {
			r.out.WriteString("<th>" + Inline(cell) + "</th>")
		}
		r.out.WriteString("</tr></thead>")
		r.open = blockTable
		return
	}
	if isTableSeparator(cells) {
		if !r.tableBody {
			r.out.WriteString("<tbody>")
			r.tableBody = true
		}
		return
	}
	if !r.tableBody {
		r.out.WriteString("<tbody>")
		r.tableBody = true
	}
	r.out.WriteString("<tr>")
	for _, cell := range cells {
		r.out.WriteString("<td>" + Inline(cell) + "</td>")
	}
	r.out.WriteString("</tr>")
}

func (r *renderer) openCode(lang string) {
	if lang != "" {
		r.codeLang = true
		escaped := html.EscapeString(lang)
		r.out.WriteString(`<div class="codeblock"><span class="codeblock-lang">` + escaped + `</span>`)
		r.out.WriteString(`<pre><code class="language-` + escaped + `">`)
	} else {
		r.out.WriteString("<pre><code>")
	}
	r.inCode = true
}

func (r *renderer) closeCode() {
	if !r.inCode {
		return
	}
	r.out.WriteString("</code></pre>")
	if r.codeLang {
		r.out.WriteString("</div>")
		r.codeLang = false
	}
	r.inCode = false
}

func (r *renderer) closeBlock() {
	switch r.open {
	case blockParagraph:
		r.out.WriteString("</p>")
	case blockList:
		r.out.WriteString("</ul>")
	case blockOrderedList:
		r.out.WriteString("</ol>")
	case blockQuote:
		r.out.WriteString("</blockquote>")
	case blockTable:
		if r.tableBody {
			r.out.WriteString("</tbody>")
			r.tableBody = false
		}
		r.out.WriteString("</table>")
	}
	r.open = blockNone
}

func (r *renderer) closeAll() {
	r.closeBlock()
	r.closeCode()
}

func splitTableCells(line string) []string {
	line = strings.Trim(strings.TrimSpace(line), "|")
	parts := strings.Split(line, "|")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func isTableSeparator(cells []string) bool {
	for _, cell := range cells {
		cleaned := strings.ReplaceAll(strings.ReplaceAll(cell, "-", ""), ":", "")
		if cleaned != "" {
			return false
		}
	}
	return true
}

// Inline applies inline formatting (bold, italic, strikethrough, code,
// links, images) to a single line of text.
func Inline(s string) string {
	escaped := html.EscapeString(s)

	escaped = reImage.ReplaceAllStringFunc(escaped, func(m string) string {
		match := reImage.FindStringSubmatch(m)
		src := SafeURL(match[2])
		if src == "" {
			return match[1]
		}
		attrs := ` loading="lazy" decoding="async"`
		if match[3] != "" && match[4] != "" {
			attrs += ` width="` + match[3] + `" height="` + match[4] + `"`
		}
		return `<img alt="` + match[1] + `" src="` + src + `"` + attrs + `/>`
	})

	escaped = reLink.ReplaceAllStringFunc(escaped, func(m string) string {
		match := reLink.FindStringSubmatch(m)
		href := SafeURL(match[2])
		if href == "" {
			return match[1]
		}
		attrs := ""
		if match[3] == "^" {
			attrs = ` target="_blank" rel="noopener noreferrer"`
		}
		return `<a href="` + href + `"` + attrs + `>` + match[1] + `</a>`
	})

	// Inline code spans are swapped for placeholders so the bold/italic
	// patterns never touch backticked content.
	var codeSpans []string
	escaped = reCode.ReplaceAllStringFunc(escaped, func(m string) string {
		match := reCode.FindStringSubmatch(m)
		placeholder := "\x00C" + strconv.Itoa(len(codeSpans)) + "\x00"
		codeSpans = append(codeSpans, "<code>"+match[1]+"</code>")
		return placeholder
	})

	// Emphasis is applied only outside HTML tags so URLs with underscores
	// inside href attributes survive untouched.
	escaped = applyOutsideTags(escaped, func(seg string) string {
		seg = reBold.ReplaceAllString(seg, "<strong>$1</strong>")
		seg = reBoldAlt.ReplaceAllString(seg, "<strong>$1</strong>")
		seg = reEmph.ReplaceAllString(seg, "<em>$1</em>")
		seg = reEmphAlt.ReplaceAllString(seg, "<em>$1</em>")
		seg = reStrike.ReplaceAllString(seg, "<del>$1</del>")
		return seg
	})

	for i, code := range codeSpans {
		escaped = strings.Replace(escaped, "\x00C"+strconv.Itoa(i)+"\x00", code, 1)
	}
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

// SafeURL validates and sanitizes a URL for use in HTML attributes.
func SafeURL(raw string) string {
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
