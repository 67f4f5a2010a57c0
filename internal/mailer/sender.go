// Package mailer renders and delivers outbound email through a background worker pool.
package mailer

import (
	"context"
	"fmt"
	"time"

	"medspace-api/pkg/config"
	"medspace-api/pkg/logger"

	"gopkg.in/gomail.v2"
)

const (
	KindWelcome   = "welcome"
	KindOTP       = "otp"
	KindEmergency = "emergency"
	KindBroadcast = "broadcast"
)

type Message struct {
	Kind    string
	To      string
	Subject string
	HTML    string
}

// Sender delivers one message synchronously.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPSender relays mail through an authenticated SMTP server.
type SMTPSender struct {
	dialer  *gomail.Dialer
	from    string
	timeout time.Duration
}

func NewSMTPSender(cfg *config.Config) *SMTPSender {
	return &SMTPSender{
		dialer:  gomail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password),
		from:    cfg.SMTP.From,
		timeout: cfg.Mail.SendTimeout,
	}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	// gomail has no context support; the dial runs in its own goroutine so the caller can give up.
	done := make(chan error, 1)
	go func() {
		done <- s.dialer.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send to %s failed: %w", msg.To, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("smtp send to %s aborted: %w", msg.To, ctx.Err())
	}
}

// LogSender writes messages to the log instead of sending them. Used when SMTP is not configured.
type LogSender struct{}

func (LogSender) Send(_ context.Context, msg Message) error {
	logger.GlobalLogger.Printf("mail (not sent, smtp disabled): kind=%s to=%s subject=%q", msg.Kind, msg.To, msg.Subject)
	return nil
}

// NewSender picks the SMTP relay when configured and the log sender otherwise.
func NewSender(cfg *config.Config) Sender {
	if cfg.SMTPEnabled() {
		return NewSMTPSender(cfg)
	}
	logger.GlobalLogger.Warnf("SMTP_HOST not set, outbound mail will only be logged")
	return LogSender{}
}
