package escape

import "regexp"

/* MarkdownV2 escapes text for parse_mode=MarkdownV2.
 *
 * Text outside any recognized span has every special character (including
 * backslash) escaped. Inside a span the escape depends on the entity kind:
 * code and pre content only needs backtick and backslash escaped, a link
 * URL only needs ) and backslash, everything else gets the full set.
 *
 * An entity embedded in another entity's content (a bold marker inside a
 * link's display text, a code fence inside bold) is not recognized as
 * markup: the outer span wins the scan and the inner delimiters are
 * escaped as literal characters. The tests pin this behavior.
 */
type MarkdownV2 struct{}

// NewMarkdownV2 creates a MarkdownV2 escaper
func NewMarkdownV2() MarkdownV2 {
	return MarkdownV2{}
}

// v2Specials is the MarkdownV2 escape set; backslash is part of it, which
// is why applying Escape twice double-escapes backslashes
const v2Specials = "\\_*[]()~`>#+-=|{}.!"

/* v2Rules: pre before inline code and underline before italic, so the
 * longer delimiter wins the same-start tie
 */
var v2Rules = []rule{
	spanRule("(?s)```(.*?)```", "```", "```", escapeV2Code),
	spanRule("(?s)`(.*?)`", "`", "`", escapeV2Code),
	spanRule(`(?s)\|\|(.*?)\|\|`, "||", "||", escapeV2Text),
	spanRule(`(?s)__(.*?)__`, "__", "__", escapeV2Text),
	spanRule(`(?s)\*(.*?)\*`, "*", "*", escapeV2Text),
	spanRule(`(?s)_(.*?)_`, "_", "_", escapeV2Text),
	spanRule(`(?s)~(.*?)~`, "~", "~", escapeV2Text),
	{
		re: regexp.MustCompile(`(?s)\[(.*?)\]\((.*?)\)`),
		render: func(groups []string) string {
			return "[" + escapeV2Text(groups[1]) + "](" + escapeV2URL(groups[2]) + ")"
		},
	},
}

// spanRule builds a rule that re-wraps escaped content in its delimiters
func spanRule(pattern, opening, closing string, escapeContent func(string) string) rule {
	re := regexp.MustCompile(pattern)
	return rule{
		re: re,
		render: func(groups []string) string {
			return opening + escapeContent(groups[1]) + closing
		},
	}
}

// Escape returns text safe for parse_mode=MarkdownV2
func (MarkdownV2) Escape(text string) string {
	if text == "" {
		return ""
	}
	return walk(text, v2Rules, escapeV2Text)
}

func escapeV2Text(s string) string {
	return escapeSet(s, v2Specials)
}

// escapeV2Code escapes code and pre content: only backtick and backslash
func escapeV2Code(s string) string {
	return escapeSet(s, "\\`")
}

// escapeV2URL escapes a link URL: only the closing paren and backslash
func escapeV2URL(s string) string {
	return escapeSet(s, `\)`)
}
