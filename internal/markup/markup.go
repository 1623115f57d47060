// Package markup converts the small HTML subset found in translated strings
// into tview style tags.
package markup

import (
	"strings"

	"github.com/rivo/tview"
	"golang.org/x/net/html"
)

type attr byte

const (
	attrBold attr = 1 << iota
	attrItalic
	attrUnderline
)

// Brackets would end the url tag early.
var hrefEscaper = strings.NewReplacer("[", "%5B", "]", "%5D")

var tagAttrs = map[string]attr{
	"b":      attrBold,
	"strong": attrBold,
	"i":      attrItalic,
	"em":     attrItalic,
	"u":      attrUnderline,
}

// RenderHTML turns s into text for a tview TextView with dynamic colors.
// Supported: b, strong, i, em, u, a[href], br, p. Other tags are dropped
// and their text kept. Text content is escaped so stray brackets are not
// read as style tags.
func RenderHTML(s string) string {
	var (
		out    strings.Builder
		counts = map[attr]int{}
		active attr
		inLink bool
	)
	z := html.NewTokenizer(strings.NewReader(s))

	restyle := func() {
		next := attr(0)
		for a, n := range counts {
			if n > 0 {
				next |= a
			}
		}
		if next == active {
			return
		}
		if active != 0 {
			out.WriteString("[::-]")
		}
		active = next
		if active != 0 {
			out.WriteString("[::" + flags(active) + "]")
		}
	}

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if inLink {
				out.WriteString("[:::-]")
			}
			if active != 0 {
				out.WriteString("[::-]")
			}
			return out.String()
		case html.TextToken:
			out.WriteString(tview.Escape(string(z.Text())))
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			tag := string(name)
			switch {
			case tag == "br":
				out.WriteString("\n")
			case tag == "p":
				if out.Len() > 0 {
					out.WriteString("\n\n")
				}
			case tag == "a":
				if href := attrValue(z, hasAttr, "href"); href != "" && tt == html.StartTagToken {
					out.WriteString("[:::" + hrefEscaper.Replace(href) + "]")
					inLink = true
				}
			default:
				if a, ok := tagAttrs[tag]; ok && tt == html.StartTagToken {
					counts[a]++
					restyle()
				}
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			switch {
			case tag == "a":
				if inLink {
					out.WriteString("[:::-]")
					inLink = false
				}
			default:
				if a, ok := tagAttrs[tag]; ok && counts[a] > 0 {
					counts[a]--
					restyle()
				}
			}
		}
	}
}

func attrValue(z *html.Tokenizer, more bool, want string) string {
	for more {
		var key, val []byte
		key, val, more = z.TagAttr()
		if string(key) == want {
			return string(val)
		}
	}
	return ""
}

func flags(a attr) string {
	var b strings.Builder
	if a&attrBold != 0 {
		b.WriteByte('b')
	}
	if a&attrItalic != 0 {
		b.WriteByte('i')
	}
	if a&attrUnderline != 0 {
		b.WriteByte('u')
	}
	return b.String()
}
