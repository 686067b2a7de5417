package notifyservice

import (
	"time"

	"github.com/go-mail/mail/v2"
)

const smtpDialTimeout = 5 * time.Second

// NewMailer builds the SMTP-backed mailer used for admin notifications.
func NewMailer(host string, port int, username, password, sender string, parser *Template) *Mail {
	dialer := mail.NewDialer(host, port, username, password)
	dialer.Timeout = smtpDialTimeout

	return &Mail{
		dialer: dialer,
		parser: parser,
		sender: sender,
	}
}

// send renders the named template and delivers it to a single recipient. The
// mutex serializes sends because the notification consumer retries from its
// own goroutine.
func (m *Mail) send(recipient string, data any, templateFile string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	subject, plainBody, htmlBody, err := m.parser.ParseTemplate(templateFile, data)
	if err != nil {
		return err
	}

	msg := mail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", subject.String())
	msg.SetBody("text/plain", plainBody.String())
	msg.AddAlternative("text/html", htmlBody.String())

	return m.dialer.DialAndSend(msg)
}
