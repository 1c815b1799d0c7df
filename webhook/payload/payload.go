/* Package payload parses the body of an inbound trigger request.
 * Any JSON object is accepted; the decoded document is what the message
 * template renders against.
 */
package payload

import (
	"encoding/json"
	"fmt"
)

// Parse decodes an inbound body into the renderer's data document.
// The body must be a JSON object; arrays and scalars are rejected because
// template paths need named fields to start from.
func Parse(body []byte) (map[string]any, error) {
	if len(body) == 0 {
		return nil, fmt.Errorf("request body is empty")
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("parsing JSON payload: %w", err)
	}

	data, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("payload must be a JSON object, got %T", doc)
	}

	return data, nil
}
