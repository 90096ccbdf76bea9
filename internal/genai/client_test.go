package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)

	c, err := NewClient(Config{APIKey: "test-key"})
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestGenerateJSON(t *testing.T) {
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req, "contents")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"ingredients\":[{\"name\":\"Milk\"}]}"}]}}]}`))
	}))
	defer srv.Close()

	c, err := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)

	out, err := c.GenerateJSON(context.Background(), "gemini-2.5-flash", []Part{{Text: "identify"}})
	require.NoError(t, err)

	assert.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.JSONEq(t, `{"ingredients":[{"name":"Milk"}]}`, string(out))
}

func TestGenerateJSONStripsFences(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"` + "```json\\n{\\\"ok\\\":true}\\n```" + `"}]}}]}`))
	}))
	defer srv.Close()

	c, err := NewClient(Config{APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)

	out, err := c.GenerateJSON(context.Background(), "m", []Part{{Text: "p"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(out))
}

func TestGenerateJSONBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`))
	}))
	defer srv.Close()

	c, err := NewClient(Config{APIKey: "bad", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = c.GenerateJSON(context.Background(), "m", []Part{{Text: "p"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not valid")
}

func TestSplitDataURI(t *testing.T) {
	mime, data := SplitDataURI("data:image/png;base64,AAAA")
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, "AAAA", data)

	mime, data = SplitDataURI("data:image/jpeg;base64,BBBB")
	assert.Equal(t, "image/jpeg", mime)
	assert.Equal(t, "BBBB", data)

	// Bare base64 defaults to JPEG.
	mime, data = SplitDataURI("CCCC")
	assert.Equal(t, "image/jpeg", mime)
	assert.Equal(t, "CCCC", data)
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripFences(`{"a":1}`))
	assert.Equal(t, "", StripFences("```\n```"))
}
