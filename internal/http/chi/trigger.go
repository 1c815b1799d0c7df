package chi

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/Caelestis94/telehook/webhook"
	"github.com/go-chi/chi/v5"
)

/* HTTP layer DTOs for the trigger API
 * Separate from domain entities to avoid leaking internal structure
 */

// errorResponse is the envelope of every non-200 answer
type errorResponse struct {
	Error string `json:"error"`
}

// postTrigger handles POST /api/trigger/{public_id}
func postTrigger(service webhook.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		publicID := chi.URLParam(r, "public_id")
		if publicID == "" {
			writeError(w, http.StatusBadRequest, "public_id is required")
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read request body")
			return
		}
		defer r.Body.Close()

		headers := make(map[string]string)
		for key, values := range r.Header {
			if len(values) > 0 {
				headers[key] = values[0]
			}
		}
		// never persist the protection secret with the audit record
		delete(headers, "Authorization")

		result := service.Trigger(r.Context(), webhook.Request{
			PublicID: publicID,
			Secret:   bearerToken(r),
			Method:   r.Method,
			URL:      r.URL.RequestURI(),
			Headers:  headers,
			Body:     body,
		})

		if result.StatusCode == http.StatusOK {
			// mirror Telegram's raw success payload
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(result.Body))
			return
		}

		writeError(w, result.StatusCode, result.ErrorMessage)
	})
}

// bearerToken extracts the protection secret from the Authorization header
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return token
	}
	return auth
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: message})
}
