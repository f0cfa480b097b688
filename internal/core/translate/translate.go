package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Client talks to a LibreTranslate-compatible API. Translation is
// best-effort: on any failure the original text is returned unchanged
// so the chat pipeline keeps working without translation.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a translation client. baseURL must point at the
// /translate endpoint of a LibreTranslate instance.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = "https://libretranslate.com/translate"
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type translateRequest struct {
	Query   string `json:"q"`
	Source  string `json:"source"`
	Target  string `json:"target"`
	Format  string `json:"format"`
	APIKey  string `json:"api_key,omitempty"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

// Translate translates text from source to target language. Unknown
// language codes fall back to "auto" for the source and "en" for the
// target, matching LibreTranslate conventions.
func (c *Client) Translate(ctx context.Context, text, sourceLang, targetLang string) string {
	if sourceLang == targetLang || text == "" {
		return text
	}

	source := sourceLang
	if !IsSupported(source) {
		source = "auto"
	}
	target := targetLang
	if !IsSupported(target) {
		target = "en"
	}

	payload, err := json.Marshal(translateRequest{
		Query:  text,
		Source: source,
		Target: target,
		Format: "text",
		APIKey: c.apiKey,
	})
	if err != nil {
		log.Error().Err(err).Msg("❌ Translation request encoding failed")
		return text
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		log.Error().Err(err).Msg("❌ Translation request failed")
		return text
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("❌ Translation request failed")
		return text
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Error().Int("status", resp.StatusCode).Msg("❌ LibreTranslate API error")
		return text
	}

	var result translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Error().Err(err).Msg("❌ Translation response decoding failed")
		return text
	}

	if result.TranslatedText == "" {
		return text
	}
	return result.TranslatedText
}

// Healthy checks whether the translation endpoint is reachable
func (c *Client) Healthy(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("translation endpoint unreachable: %w", err)
	}
	resp.Body.Close()
	return nil
}
