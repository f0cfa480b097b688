package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	t.Run("translates text", func(t *testing.T) {
		var gotPayload map[string]interface{}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
			json.NewEncoder(w).Encode(map[string]string{"translatedText": "ciao"})
		}))
		defer server.Close()

		client := NewClient(server.URL, "")
		got := client.Translate(context.Background(), "hello", "en", "it")

		assert.Equal(t, "ciao", got)
		assert.Equal(t, "hello", gotPayload["q"])
		assert.Equal(t, "en", gotPayload["source"])
		assert.Equal(t, "it", gotPayload["target"])
		assert.Equal(t, "text", gotPayload["format"])
	})

	t.Run("same language is a no-op", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		}))
		defer server.Close()

		client := NewClient(server.URL, "")
		assert.Equal(t, "ciao", client.Translate(context.Background(), "ciao", "it", "it"))
	})

	t.Run("unknown codes fall back to auto and en", func(t *testing.T) {
		var gotPayload map[string]interface{}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
			json.NewEncoder(w).Encode(map[string]string{"translatedText": "hello"})
		}))
		defer server.Close()

		client := NewClient(server.URL, "")
		client.Translate(context.Background(), "hola", "es", "xx")

		assert.Equal(t, "auto", gotPayload["source"])
		assert.Equal(t, "en", gotPayload["target"])
	})

	t.Run("API error returns input", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := NewClient(server.URL, "")
		assert.Equal(t, "hello", client.Translate(context.Background(), "hello", "en", "it"))
	})

	t.Run("unreachable endpoint returns input", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:1/translate", "")
		assert.Equal(t, "hello", client.Translate(context.Background(), "hello", "en", "it"))
	})

	t.Run("empty translation returns input", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{"translatedText": ""})
		}))
		defer server.Close()

		client := NewClient(server.URL, "")
		assert.Equal(t, "hello", client.Translate(context.Background(), "hello", "en", "it"))
	})
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "italian", text: "Dove sono gli uffici per il permesso?", want: "it"},
		{name: "french", text: "Comment puis-je trouver un logement avec mes enfants?", want: "fr"},
		{name: "english", text: "Where can I find the right office for this?", want: "en"},
		{name: "wolof", text: "Naka nga def, fan la bureau bi nekk?", want: "wo"},
		{name: "hausa", text: "Ina ofishin yake? Yaya zan samu taimako?", want: "ha"},
		{name: "no match defaults to italian", text: "xyzzy", want: "it"},
		{name: "empty defaults to italian", text: "", want: "it"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectLanguage(tt.text))
		})
	}
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("it"))
	assert.True(t, IsSupported("snk"))
	assert.False(t, IsSupported("es"))
	assert.False(t, IsSupported(""))
}
