package telegram

import "fmt"

/* ParseMode represents the formatting dialect of an outgoing message
 * Values match the wire format of the Bot API parse_mode field
 */
type ParseMode int

const (
	Markdown ParseMode = iota + 1
	MarkdownV2
	HTML
)

// String returns the Bot API wire value of the parse mode
func (p ParseMode) String() string {
	switch p {
	case Markdown:
		return "Markdown"
	case MarkdownV2:
		return "MarkdownV2"
	case HTML:
		return "HTML"
	default:
		return "unknown"
	}
}

// NewParseMode creates a ParseMode from a string
func NewParseMode(s string) ParseMode {
	switch s {
	case "Markdown", "markdown":
		return Markdown
	case "MarkdownV2", "markdownv2":
		return MarkdownV2
	case "HTML", "html":
		return HTML
	default:
		return MarkdownV2
	}
}

// Validate checks if the parse mode is valid
func (p ParseMode) Validate() error {
	if p < Markdown || p > HTML {
		return fmt.Errorf("invalid parse mode: %d", p)
	}
	return nil
}
