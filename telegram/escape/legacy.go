package escape

import "regexp"

/* LegacyMarkdown escapes text for parse_mode=Markdown.
 *
 * The legacy dialect has a much narrower special-character set than
 * MarkdownV2. Recognized spans are copied through completely unmodified
 * (no inner escaping); only text outside any span is escaped.
 */
type LegacyMarkdown struct{}

// NewLegacyMarkdown creates a legacy Markdown escaper
func NewLegacyMarkdown() LegacyMarkdown {
	return LegacyMarkdown{}
}

// legacySpecials is the legacy dialect escape set
const legacySpecials = "_*`[]"

/* legacyRules: bold before single-star italic and pre before inline code,
 * so the longer delimiter wins the same-start tie
 */
var legacyRules = []rule{
	verbatim(`(?s)\*\*.*?\*\*`),    // bold
	verbatim("(?s)```.*?```"),      // pre block
	verbatim("(?s)`.*?`"),          // inline code
	verbatim(`(?s)\[.*?\]\(.*?\)`), // link
	verbatim(`(?s)\*.*?\*`),        // italic
	verbatim(`(?s)_.*?_`),          // italic
}

// verbatim builds a rule whose matched span is copied through unmodified
func verbatim(pattern string) rule {
	re := regexp.MustCompile(pattern)
	return rule{
		re: re,
		render: func(groups []string) string {
			return groups[0]
		},
	}
}

// Escape returns text safe for parse_mode=Markdown
func (LegacyMarkdown) Escape(text string) string {
	if text == "" {
		return ""
	}
	return walk(text, legacyRules, escapeLegacyText)
}

func escapeLegacyText(s string) string {
	return escapeSet(s, legacySpecials)
}
