package email

import (
	"encoding/json"
	"fmt"
	"html"
	"time"

	"github.com/rs/zerolog/log"
)

// Notifier sends formatted notifications to a fixed admin recipient.
// Delivery is best-effort: failures are returned to the caller for
// logging but carry no retry semantics.
type Notifier struct {
	service    *Service
	adminEmail string
}

// NewNotifier creates a notifier that delivers through the given service
func NewNotifier(service *Service, adminEmail string) *Notifier {
	return &Notifier{
		service:    service,
		adminEmail: adminEmail,
	}
}

// AdminEmail returns the fixed admin recipient address
func (n *Notifier) AdminEmail() string {
	return n.adminEmail
}

// SendEmail sends a plain text email to an arbitrary recipient
func (n *Notifier) SendEmail(to, subject, body string) error {
	if err := n.service.SendEmail(to, subject, body); err != nil {
		return err
	}
	log.Info().Str("to", to).Str("subject", subject).Msg("📧 Email sent")
	return nil
}

// SendAdminNotification sends a formatted plain-text and HTML admin
// email, including a pretty-printed dump of the event data.
func (n *Notifier) SendAdminNotification(subject, message string, data map[string]interface{}) error {
	timestamp := time.Now().Format(time.RFC3339)

	body := fmt.Sprintf(`Notification: %s

Message: %s

Timestamp: %s
`, subject, message, timestamp)

	dataDump := ""
	if len(data) > 0 {
		raw, err := json.MarshalIndent(data, "", "  ")
		if err == nil {
			dataDump = string(raw)
			body += fmt.Sprintf("\nData: %s", dataDump)
		}
	}

	htmlBody := fmt.Sprintf(`<html>
<body>
	<h2>🤖 Chatbot Notification</h2>
	<h3>%s</h3>
	<p>%s</p>
	<p><strong>Timestamp:</strong> %s</p>
	%s
</body>
</html>`, html.EscapeString(subject), html.EscapeString(message), timestamp, htmlPre(dataDump))

	if err := n.service.SendHTMLEmail(n.adminEmail, fmt.Sprintf("[Chatbot] %s", subject), body, htmlBody); err != nil {
		return err
	}

	log.Info().Str("subject", subject).Msg("📧 Admin notification sent")
	return nil
}

func htmlPre(dump string) string {
	if dump == "" {
		return ""
	}
	return fmt.Sprintf("<pre>%s</pre>", html.EscapeString(dump))
}
