package notify

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/wneessen/go-mail"

	"github.com/cabwise/dispatch-go/internal/config"
)

// Mailer delivers confirmation email for newly created users.
type Mailer interface {
	SendConfirmation(username, confirmURL string) error
}

const mailSender = "system@cabwise.com"

const confirmBodyTemplate = `<p>A new user <b>%s</b> is awaiting confirmation.</p>
<p><a href="%s">Confirm user</a></p>
`

// SMTPMailer sends confirmation mail over SMTP with TLS. There is no
// retry and no timeout: a slow mail server blocks the request.
type SMTPMailer struct {
	client     *mail.Client
	adminEmail string
}

// NewSMTPMailer builds a mailer from the mail settings in cfg.
func NewSMTPMailer(cfg config.Config) (*SMTPMailer, error) {
	port, err := strconv.Atoi(cfg.MailPort)
	if err != nil {
		return nil, fmt.Errorf("invalid MAIL_PORT %q: %w", cfg.MailPort, err)
	}

	client, err := mail.NewClient(cfg.MailServer,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.MailUsername),
		mail.WithPassword(cfg.MailPassword),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("creating mail client: %w", err)
	}

	return &SMTPMailer{client: client, adminEmail: cfg.AdminEmail}, nil
}

// SendConfirmation mails the admin a confirmation link for the user.
func (m *SMTPMailer) SendConfirmation(username, confirmURL string) error {
	msg := mail.NewMsg()
	if err := msg.From(mailSender); err != nil {
		return err
	}
	if err := msg.To(m.adminEmail); err != nil {
		return err
	}
	msg.Subject(fmt.Sprintf("Confirm User: %s", username))
	msg.SetBodyString(mail.TypeTextHTML, fmt.Sprintf(confirmBodyTemplate, username, confirmURL))

	return m.client.DialAndSend(msg)
}

// LogMailer logs the confirmation link instead of sending mail. Wired in
// dev mode, where new users are auto-confirmed and no mail goes out.
type LogMailer struct{}

func (LogMailer) SendConfirmation(username, confirmURL string) error {
	slog.Info("confirmation mail suppressed", "username", username, "url", confirmURL)
	return nil
}
