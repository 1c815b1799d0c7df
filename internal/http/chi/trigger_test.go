package chi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Caelestis94/telehook/webhook"
	"github.com/Caelestis94/telehook/webhook/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPostTrigger(t *testing.T) {
	ctx := context.Background()

	t.Run("success mirrors the raw telegram body", func(t *testing.T) {
		s := mocks.NewUseCase(t)
		s.On("Trigger", mock.Anything, mock.MatchedBy(func(req webhook.Request) bool {
			return req.PublicID == "pub-7" &&
				req.Method == http.MethodPost &&
				string(req.Body) == `{"x": 5}` &&
				req.Headers["Content-Type"] == "application/json"
		})).Return(webhook.Result{
			StatusCode: http.StatusOK,
			Body:       `{"ok":true,"result":{"message_id":1}}`,
		})

		h := Handlers(ctx, s, nil)
		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			"/api/trigger/pub-7", bytes.NewBufferString(`{"x": 5}`))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"ok":true,"result":{"message_id":1}}`, w.Body.String())
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	})

	t.Run("bearer secret reaches the pipeline but not the audit headers", func(t *testing.T) {
		s := mocks.NewUseCase(t)
		s.On("Trigger", mock.Anything, mock.MatchedBy(func(req webhook.Request) bool {
			_, hasAuth := req.Headers["Authorization"]
			return req.Secret == "tgh_supersecret" && !hasAuth
		})).Return(webhook.Result{StatusCode: http.StatusOK, Body: `{"ok":true}`})

		h := Handlers(ctx, s, nil)
		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			"/api/trigger/pub-7", bytes.NewBufferString(`{}`))
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer tgh_supersecret")

		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("errors use the json envelope", func(t *testing.T) {
		tests := []struct {
			name    string
			result  webhook.Result
			status  int
			message string
		}{
			{
				name:    "not found",
				result:  webhook.Result{StatusCode: http.StatusNotFound, ErrorMessage: "webhook not found"},
				status:  http.StatusNotFound,
				message: "webhook not found",
			},
			{
				name:    "disabled",
				result:  webhook.Result{StatusCode: http.StatusGone, ErrorMessage: "webhook is disabled"},
				status:  http.StatusGone,
				message: "webhook is disabled",
			},
			{
				name:    "protection failure",
				result:  webhook.Result{StatusCode: http.StatusUnauthorized, ErrorMessage: "invalid or missing secret key"},
				status:  http.StatusUnauthorized,
				message: "invalid or missing secret key",
			},
			{
				name:    "telegram unreachable",
				result:  webhook.Result{StatusCode: http.StatusBadGateway, ErrorMessage: "telegram unreachable (timeout)"},
				status:  http.StatusBadGateway,
				message: "telegram unreachable (timeout)",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				s := mocks.NewUseCase(t)
				s.On("Trigger", mock.Anything, mock.AnythingOfType("webhook.Request")).Return(tt.result)

				h := Handlers(ctx, s, nil)
				req, err := http.NewRequestWithContext(ctx, http.MethodPost,
					"/api/trigger/pub-7", bytes.NewBufferString(`{}`))
				require.NoError(t, err)

				w := httptest.NewRecorder()
				h.ServeHTTP(w, req)

				assert.Equal(t, tt.status, w.Code)
				var resp errorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, tt.message, resp.Error)
			})
		}
	})

	t.Run("health endpoint", func(t *testing.T) {
		s := mocks.NewUseCase(t)
		h := Handlers(ctx, s, nil)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, "/health", nil)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
	})

	t.Run("metrics handler is mounted when provided", func(t *testing.T) {
		s := mocks.NewUseCase(t)
		metricsHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("metrics"))
		})

		h := Handlers(ctx, s, metricsHandler)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, "/metrics", nil)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "metrics", w.Body.String())
	})
}
