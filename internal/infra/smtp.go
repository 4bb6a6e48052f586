package infra

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"

	"github.com/frogshopping/PharmaCare-POS-sub001/internal/config"
)

// Mailer sends transactional mail (receipts, stock alerts) over plain SMTP.
type Mailer struct {
	from string
	host string
	auth smtp.Auth
	addr string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		from: cfg.SMTPUser,
		host: cfg.SMTPHost,
		auth: smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost),
		addr: fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

func (m *Mailer) send(to, subject, body string, attachments ...string) error {
	e := email.NewEmail()
	e.From = m.from
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	for _, path := range attachments {
		if path == "" {
			continue
		}
		if _, err := e.AttachFile(path); err != nil {
			return fmt.Errorf("mailer: attach %s: %w", path, err)
		}
	}
	return e.Send(m.addr, m.auth)
}

// SendReceipt mails a sale receipt, attaching the rendered PDF when present.
func (m *Mailer) SendReceipt(to, subject, body, pdfPath string) error {
	return m.send(to, subject, body, pdfPath)
}

// SendAlert mails a plain-text notification (low-stock summaries).
func (m *Mailer) SendAlert(to, subject, body string) error {
	return m.send(to, subject, body)
}
