// AngelaMos | 2026
// mailer.go

package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/jhillyerd/enmime"

	"github.com/carterperez-dev/templates/contacts-api/internal/config"
	"github.com/carterperez-dev/templates/contacts-api/internal/core"
)

const verificationSubject = "Verify your email"

var verificationTemplate = template.Must(template.New("verify").Parse(
	`<p>Welcome! Confirm your email address to finish signing up.</p>
<p><a target="_blank" href="{{.}}">Click to verify email</a></p>`,
))

// Mailer sends account mail over SMTP. The transport is an enmime.Sender so
// it can be swapped in tests.
type Mailer struct {
	sender   enmime.Sender
	from     string
	fromName string
	logger   *slog.Logger
}

func New(cfg config.MailConfig, logger *slog.Logger) *Mailer {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return NewWithSender(enmime.NewSMTP(cfg.Address(), auth), cfg, logger)
}

func NewWithSender(sender enmime.Sender, cfg config.MailConfig, logger *slog.Logger) *Mailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mailer{
		sender:   sender,
		from:     cfg.From,
		fromName: cfg.FromName,
		logger:   logger,
	}
}

func (m *Mailer) SendVerification(ctx context.Context, to, link string) (err error) {
	_, span := core.StartSpan(ctx, "mail.SendVerification")
	defer func() { core.EndSpan(span, err) }()

	if err := ctx.Err(); err != nil {
		return err
	}

	var html bytes.Buffer
	if err := verificationTemplate.Execute(&html, link); err != nil {
		return fmt.Errorf("render verification mail: %w", err)
	}

	text := "Confirm your email address: " + link + "\n"

	err = enmime.Builder().
		From(m.fromName, m.from).
		To("", to).
		Subject(verificationSubject).
		Date(time.Now()).
		Text([]byte(text)).
		HTML(html.Bytes()).
		Send(m.sender)
	if err != nil {
		return fmt.Errorf("send verification mail: %w", err)
	}

	m.logger.Info("verification mail sent", "to", to)
	return nil
}
