package payload_test

import (
	"testing"

	"github.com/Caelestis94/telehook/webhook/payload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("json object", func(t *testing.T) {
		data, err := payload.Parse([]byte(`{"x": 5, "nested": {"y": "z"}}`))
		require.NoError(t, err)
		assert.Equal(t, float64(5), data["x"])
		assert.Equal(t, map[string]any{"y": "z"}, data["nested"])
	})

	t.Run("empty body", func(t *testing.T) {
		_, err := payload.Parse(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty")
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := payload.Parse([]byte(`{"x":`))
		require.Error(t, err)
	})

	t.Run("non-object json", func(t *testing.T) {
		_, err := payload.Parse([]byte(`[1, 2, 3]`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JSON object")
	})
}
