/* Package render turns a message template plus the posted JSON document
 * into plain text. Expressions look like {{ path.to.field }}: a dotted
 * path walked through objects, with numeric segments indexing arrays.
 * The dialect-specific escaping happens later, on the rendered output.
 */
package render

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Error is a structured rendering failure: which expression failed and why
type Error struct {
	Expr   string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("rendering {{ %s }}: %s", e.Expr, e.Reason)
}

// exprPattern matches {{ expression }} placeholders, whitespace-tolerant
var exprPattern = regexp.MustCompile(`\{\{\s*([^{}]+?)\s*\}\}`)

// Engine renders templates. Stateless, safe for concurrent use.
type Engine struct{}

// NewEngine creates a renderer
func NewEngine() *Engine {
	return &Engine{}
}

// Render substitutes every {{ path }} in tmpl with the matching value from
// data. The first unresolvable expression aborts with a *Error.
func (e *Engine) Render(tmpl string, data map[string]any) (string, error) {
	var renderErr *Error

	out := exprPattern.ReplaceAllStringFunc(tmpl, func(match string) string {
		if renderErr != nil {
			return match
		}
		expr := strings.TrimSpace(exprPattern.FindStringSubmatch(match)[1])
		value, err := lookup(data, expr)
		if err != nil {
			renderErr = err
			return match
		}
		return format(value)
	})

	if renderErr != nil {
		return "", renderErr
	}
	return out, nil
}

// lookup walks a dotted path through nested objects and arrays
func lookup(data map[string]any, expr string) (any, *Error) {
	var current any = data

	for _, segment := range strings.Split(expr, ".") {
		if segment == "" {
			return nil, &Error{Expr: expr, Reason: "empty path segment"}
		}

		switch node := current.(type) {
		case map[string]any:
			value, ok := node[segment]
			if !ok {
				return nil, &Error{Expr: expr, Reason: fmt.Sprintf("field %q not found", segment)}
			}
			current = value
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil {
				return nil, &Error{Expr: expr, Reason: fmt.Sprintf("array index expected, got %q", segment)}
			}
			if idx < 0 || idx >= len(node) {
				return nil, &Error{Expr: expr, Reason: fmt.Sprintf("index %d out of range", idx)}
			}
			current = node[idx]
		default:
			return nil, &Error{Expr: expr, Reason: fmt.Sprintf("cannot descend into %T with %q", current, segment)}
		}
	}

	return current, nil
}

// format writes a resolved value the way it reads in JSON: scalars bare,
// composites re-encoded compactly
func format(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		// json numbers decode as float64; %v keeps 5 as "5", not "5.000000"
		return fmt.Sprintf("%v", v)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(encoded)
	}
}
