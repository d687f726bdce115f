package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// ErrNoRecipient is returned when message has no recipient address.
var ErrNoRecipient = errors.New("no recipient")

// SMTPConfig is SMTP server configuration.
type SMTPConfig struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT" envDefault:"587"`
	User     string `env:"USER"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM"`
}

// Enabled reports whether config is complete enough to send emails.
func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.From != ""
}

// Dialer sends prepared messages.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Email sends HTML messages through SMTP server.
type Email struct {
	dialer Dialer
	from   string
}

// NewEmail returns new Email notifier sending through dialer.
func NewEmail(dialer Dialer, from string) *Email {
	return &Email{
		dialer: dialer,
		from:   from,
	}
}

// NewSMTPEmail returns Email notifier sending through configured SMTP server.
func NewSMTPEmail(cfg SMTPConfig) *Email {
	return NewEmail(gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password), cfg.From)
}

// Send sends HTML email to recipient.
func (e Email) Send(_ context.Context, recipient, subject, body string) error {
	if recipient == "" {
		return fmt.Errorf("can't send email: %w", ErrNoRecipient)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", e.from)
	m.SetHeader("To", recipient)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := e.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("can't send email to %s: %w", recipient, err)
	}

	return nil
}

// Log only logs messages. Used when SMTP server isn't configured.
type Log struct {
	logger *zerolog.Logger
}

// NewLog returns new Log notifier.
func NewLog(logger *zerolog.Logger) *Log {
	return &Log{logger: logger}
}

// Send logs message subject and recipient.
func (l Log) Send(_ context.Context, recipient, subject, _ string) error {
	l.logger.Warn().
		Str("recipient", recipient).
		Str("subject", subject).
		Msg("smtp not configured, notification not sent")
	return nil
}

// Notifier delivers messages.
type Notifier interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// Async sends messages in background. Send never fails, delivery errors are logged.
type Async struct {
	next   Notifier
	logger *zerolog.Logger
	wg     sync.WaitGroup
}

// NewAsync returns new Async notifier delivering through next.
func NewAsync(next Notifier, logger *zerolog.Logger) *Async {
	return &Async{
		next:   next,
		logger: logger,
	}
}

// Send starts delivery and returns immediately.
func (a *Async) Send(ctx context.Context, recipient, subject, body string) error {
	ctx = context.WithoutCancel(ctx)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		if err := a.next.Send(ctx, recipient, subject, body); err != nil {
			a.logger.Error().
				Err(err).
				Str("recipient", recipient).
				Str("subject", subject).
				Msg("notification delivery failed")
		}
	}()

	return nil
}

// Wait blocks until all started deliveries finish.
func (a *Async) Wait() {
	a.wg.Wait()
}
