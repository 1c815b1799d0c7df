package escape

import (
	"fmt"
	"regexp"
	"strings"
)

/* HTML escapes text for parse_mode=HTML.
 *
 * A fixed set of Telegram-supported constructs is recognized
 * case-insensitively; each pattern captures its inner content non-greedily
 * up to its own closing tag, with no cross-tag nesting awareness. Inner
 * content is entity-escaped but not re-scanned, so a tag nested inside
 * another construct comes out as literal text. Tag names are normalized to
 * lowercase and attribute values keep their content with the wrapping
 * quote normalized to ".
 */
type HTML struct{}

// NewHTML creates an HTML escaper
func NewHTML() HTML {
	return HTML{}
}

// Escape returns text safe for parse_mode=HTML
func (HTML) Escape(text string) string {
	if text == "" {
		return ""
	}
	return walk(text, htmlRules, escapeHTMLText)
}

/* htmlRules is the canonical ordered pattern table. Order is load-bearing:
 * <pre><code> must come before <pre> and <blockquote expandable> before
 * <blockquote>, otherwise the shorter pattern wins the same-start tie and
 * the longer construct can never match.
 */
var htmlRules = buildHTMLRules()

func buildHTMLRules() []rule {
	rules := []rule{
		attrTag("a", "href", `(?is)<a\s+href\s*=\s*("[^"]*"|'[^']*')\s*>(.*?)</a>`),
		attrTag("tg-emoji", "emoji-id", `(?is)<tg-emoji\s+emoji-id\s*=\s*("[^"]*"|'[^']*')\s*>(.*?)</tg-emoji>`),
		{
			re: regexp.MustCompile(`(?is)<span\s+class\s*=\s*("tg-spoiler"|'tg-spoiler')\s*>(.*?)</span>`),
			render: func(groups []string) string {
				return `<span class="tg-spoiler">` + escapeHTMLText(groups[2]) + `</span>`
			},
		},
		{
			re: regexp.MustCompile(`(?is)<pre><code\s+class\s*=\s*("language-[^"]*"|'language-[^']*')\s*>(.*?)</code></pre>`),
			render: func(groups []string) string {
				lang := unquote(groups[1])
				return fmt.Sprintf(`<pre><code class="%s">%s</code></pre>`, lang, escapeHTMLText(groups[2]))
			},
		},
		{
			re: regexp.MustCompile(`(?is)<pre><code>(.*?)</code></pre>`),
			render: func(groups []string) string {
				return "<pre><code>" + escapeHTMLText(groups[1]) + "</code></pre>"
			},
		},
	}

	for _, name := range []string{
		"b", "strong", "i", "em", "u", "ins", "s", "strike", "del",
		"tg-spoiler", "pre", "code",
	} {
		rules = append(rules, simpleTag(name))
	}

	rules = append(rules,
		rule{
			re: regexp.MustCompile(`(?is)<blockquote\s+expandable\s*>(.*?)</blockquote>`),
			render: func(groups []string) string {
				return "<blockquote expandable>" + escapeHTMLText(groups[1]) + "</blockquote>"
			},
		},
		simpleTag("blockquote"),
	)

	return rules
}

// simpleTag builds the rule for an attribute-less construct like <b>…</b>
func simpleTag(name string) rule {
	re := regexp.MustCompile(`(?is)<` + name + `>(.*?)</` + name + `>`)
	return rule{
		re: re,
		render: func(groups []string) string {
			return "<" + name + ">" + escapeHTMLText(groups[1]) + "</" + name + ">"
		},
	}
}

// attrTag builds the rule for a single-attribute construct; the attribute
// value is carried through verbatim with the quote character normalized
func attrTag(name, attr, pattern string) rule {
	re := regexp.MustCompile(pattern)
	return rule{
		re: re,
		render: func(groups []string) string {
			value := unquote(groups[1])
			return fmt.Sprintf(`<%s %s="%s">%s</%s>`, name, attr, value, escapeHTMLText(groups[2]), name)
		},
	}
}

// unquote drops the wrapping quote pair captured with an attribute value
func unquote(s string) string {
	if len(s) >= 2 {
		return s[1 : len(s)-1]
	}
	return s
}

var htmlEntityReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

/* escapeHTMLText entity-escapes plain text and converts the two-character
 * sequence backslash-n into an actual newline
 */
func escapeHTMLText(s string) string {
	s = htmlEntityReplacer.Replace(s)
	return strings.ReplaceAll(s, `\n`, "\n")
}
