/* Package escape makes rendered text byte-safe for the Telegram Bot API
 * under each of the three formatting dialects: legacy Markdown, MarkdownV2
 * and HTML.
 *
 * All escapers share one contract: Escape(text) returns text ready to be
 * sent with the matching parse_mode, recognized formatting constructs are
 * preserved and everything else is escaped as literal text. Escapers are
 * stateless and safe for concurrent use. They are NOT idempotent: escaping
 * already-escaped text escapes the introduced backslashes again.
 */
package escape

import (
	"regexp"
	"strings"

	"github.com/Caelestis94/telehook/telegram"
)

// Escaper is the shared contract of the three dialect escapers
type Escaper interface {
	Escape(text string) string
}

// ForMode selects the escaper for a parse mode. Unknown modes fall back to
// MarkdownV2, mirroring NewParseMode.
func ForMode(mode telegram.ParseMode) Escaper {
	switch mode {
	case telegram.Markdown:
		return LegacyMarkdown{}
	case telegram.HTML:
		return HTML{}
	default:
		return MarkdownV2{}
	}
}

/* rule is one recognized formatting construct: a pattern plus the function
 * that reassembles the matched construct in escaped form.
 *
 * Rules live in explicitly ordered slices, never maps: the scan is
 * leftmost-wins with declaration order breaking ties, and that ordering
 * must be deterministic.
 */
type rule struct {
	re *regexp.Regexp
	// render rebuilds the construct from the submatches of re
	// (groups[0] is the whole match)
	render func(groups []string) string
}

/* walk scans text left to right. At each position the earliest-starting
 * match across all rules wins; on a tie the rule declared first wins. Text
 * between matches goes through escapeLiteral. A construct with no closing
 * delimiter never matches any rule and is therefore escaped in its
 * entirety as plain text, which is the deliberate fail-safe for malformed
 * input.
 */
func walk(text string, rules []rule, escapeLiteral func(string) string) string {
	var out strings.Builder
	pos := 0

	for pos < len(text) {
		bestRule := -1
		var bestLoc []int

		for i, r := range rules {
			loc := r.re.FindStringSubmatchIndex(text[pos:])
			if loc == nil {
				continue
			}
			if bestLoc == nil || loc[0] < bestLoc[0] {
				bestRule = i
				bestLoc = loc
			}
		}

		if bestLoc == nil {
			out.WriteString(escapeLiteral(text[pos:]))
			break
		}

		out.WriteString(escapeLiteral(text[pos : pos+bestLoc[0]]))

		groups := make([]string, len(bestLoc)/2)
		for g := range groups {
			start, end := bestLoc[2*g], bestLoc[2*g+1]
			if start >= 0 {
				groups[g] = text[pos+start : pos+end]
			}
		}
		out.WriteString(rules[bestRule].render(groups))

		pos += bestLoc[1]
	}

	return out.String()
}

// escapeSet backslash-prefixes every byte of s that appears in specials
func escapeSet(s, specials string) string {
	var out strings.Builder
	out.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(specials, r) {
			out.WriteByte('\\')
		}
		out.WriteRune(r)
	}
	return out.String()
}
