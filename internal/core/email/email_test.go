package email

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingProvider struct {
	to, subject, text, html string
	err                     error
}

func (r *recordingProvider) SendEmail(to, subject, body string) error {
	r.to, r.subject, r.text = to, subject, body
	return r.err
}

func (r *recordingProvider) SendHTMLEmail(to, subject, textBody, htmlBody string) error {
	r.to, r.subject, r.text, r.html = to, subject, textBody, htmlBody
	return r.err
}

func (r *recordingProvider) GetProviderName() string { return "recording" }

func TestResendProvider(t *testing.T) {
	var gotAuth string
	var gotBody resendEmailRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	p := NewResendProvider("rk_test", "noreply@jokko.ai", "JOKKO")
	p.baseURL = server.URL

	require.NoError(t, p.SendEmail("user@example.com", "Hi", "hello"))

	assert.Equal(t, "Bearer rk_test", gotAuth)
	assert.Equal(t, "JOKKO <noreply@jokko.ai>", gotBody.From)
	assert.Equal(t, []string{"user@example.com"}, gotBody.To)
	assert.Equal(t, "hello", gotBody.Text)
	assert.Empty(t, gotBody.HTML)

	require.NoError(t, p.SendHTMLEmail("user@example.com", "Hi", "text", "<b>html</b>"))
	assert.Equal(t, "<b>html</b>", gotBody.HTML)
}

func TestResendProviderAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	p := NewResendProvider("bad", "noreply@jokko.ai", "")
	p.baseURL = server.URL

	err := p.SendEmail("user@example.com", "Hi", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestResendFromAddressWithoutName(t *testing.T) {
	p := NewResendProvider("key", "noreply@jokko.ai", "")
	assert.Equal(t, "noreply@jokko.ai", p.fromAddress())
}

func TestBrevoProvider(t *testing.T) {
	var gotKey string
	var gotBody brevoEmailRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	p := NewBrevoProvider("bk_test", "noreply@jokko.ai", "JOKKO")
	p.baseURL = server.URL

	require.NoError(t, p.SendHTMLEmail("user@example.com", "Hi", "text", "<b>html</b>"))

	assert.Equal(t, "bk_test", gotKey)
	assert.Equal(t, "noreply@jokko.ai", gotBody.Sender.Email)
	assert.Equal(t, "JOKKO", gotBody.Sender.Name)
	require.Len(t, gotBody.To, 1)
	assert.Equal(t, "user@example.com", gotBody.To[0].Email)
	assert.Equal(t, "<b>html</b>", gotBody.HTMLContent)
}

func TestServiceWithoutProvider(t *testing.T) {
	s := NewService(nil)

	assert.Error(t, s.SendEmail("a@b.c", "s", "b"))
	assert.Error(t, s.SendHTMLEmail("a@b.c", "s", "t", "h"))
	assert.Equal(t, "none", s.GetProviderName())
}

func TestNotifierSendAdminNotification(t *testing.T) {
	provider := &recordingProvider{}
	n := NewNotifier(NewService(provider), "admin@jokko.ai")

	err := n.SendAdminNotification("API Error", "boom", map[string]interface{}{
		"endpoint": "/api/chat",
	})

	require.NoError(t, err)
	assert.Equal(t, "admin@jokko.ai", provider.to)
	assert.Equal(t, "[Chatbot] API Error", provider.subject)
	assert.Contains(t, provider.text, "Notification: API Error")
	assert.Contains(t, provider.text, "Message: boom")
	assert.Contains(t, provider.text, `"endpoint": "/api/chat"`)
	assert.Contains(t, provider.html, "🤖 Chatbot Notification")
	assert.Contains(t, provider.html, "<pre>")
}

func TestNotifierEscapesHTMLBody(t *testing.T) {
	provider := &recordingProvider{}
	n := NewNotifier(NewService(provider), "admin@jokko.ai")

	err := n.SendAdminNotification("<script>alert(1)</script>", "a < b & c", map[string]interface{}{
		"detail": "<img src=x>",
	})

	require.NoError(t, err)
	assert.NotContains(t, provider.html, "<script>")
	assert.Contains(t, provider.html, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.Contains(t, provider.html, "a &lt; b &amp; c")
	assert.NotContains(t, provider.html, "<img")
	// Plain-text body stays verbatim
	assert.Contains(t, provider.text, "Notification: <script>alert(1)</script>")
}

func TestNotifierSendAdminNotificationNoData(t *testing.T) {
	provider := &recordingProvider{}
	n := NewNotifier(NewService(provider), "admin@jokko.ai")

	require.NoError(t, n.SendAdminNotification("Heads up", "fyi", nil))

	assert.NotContains(t, provider.text, "Data:")
	assert.NotContains(t, provider.html, "<pre>")
}

func TestNotifierPropagatesProviderError(t *testing.T) {
	provider := &recordingProvider{err: errors.New("smtp down")}
	n := NewNotifier(NewService(provider), "admin@jokko.ai")

	assert.Error(t, n.SendEmail("a@b.c", "s", "b"))
	assert.Error(t, n.SendAdminNotification("s", "m", nil))
	assert.Equal(t, "admin@jokko.ai", n.AdminEmail())
}
