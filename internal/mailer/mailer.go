package mailer

import (
	"fmt"
	"html"
	"strings"

	"github.com/labstack/gommon/log"
	"github.com/sbochoun/folio/internal/boot"
	"gopkg.in/gomail.v2"
)

// Mailer sends outbound mail over SMTP. Without configured credentials it
// runs in log-only mode so local development works without a mail account.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func New(config *boot.Config) *Mailer {
	m := &Mailer{from: config.MailFrom}
	if config.SMTPUser != "" && config.SMTPPass != "" {
		m.dialer = gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPUser, config.SMTPPass)
	}
	return m
}

func (m *Mailer) Send(to, subject, text, htmlBody string) error {
	if htmlBody == "" {
		htmlBody = "<p>" + strings.ReplaceAll(html.EscapeString(text), "\n", "<br>") + "</p>"
	}

	if m.dialer == nil {
		log.Infof("mail (log-only): to=%s subject=%q", to, subject)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", text)
	msg.AddAlternative("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending mail: %w", err)
	}
	return nil
}

// SendReply composes and sends the admin reply to a contact message, quoting
// the original message under the reply.
func (m *Mailer) SendReply(to, name, subject, reply, original string) error {
	text := fmt.Sprintf(`Hello %s,

Thank you for contacting us. Here is our reply to your message:

%s

---
Your original message:
%q

Best regards,
Portfolio Admin Team
`, name, reply, original)

	htmlBody := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
	<h2 style="color: #333;">Hello %s,</h2>
	<p>Thank you for contacting us. Here is our reply to your message:</p>
	<div style="background: #f8f9fa; padding: 20px; border-radius: 5px; margin: 20px 0;">%s</div>
	<hr style="margin: 30px 0; border: none; border-top: 1px solid #eee;">
	<div style="color: #666; font-size: 14px;">
		<strong>Your original message:</strong><br>
		<em>%q</em>
	</div>
	<div style="margin-top: 30px; color: #666; font-size: 12px;">
		<p>Best regards,<br>Portfolio Admin Team</p>
	</div>
</div>`,
		html.EscapeString(name),
		strings.ReplaceAll(html.EscapeString(reply), "\n", "<br>"),
		html.EscapeString(original))

	return m.Send(to, "Re: "+subject, text, htmlBody)
}
