package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"attendance-service/internal/config"
	"attendance-service/internal/metrics"
)

const (
	smtpTarget      = "smtp"
	smtpSSLPort     = 465
	smtpTimeout     = 15 * time.Second
	defaultSMTPPort = 587
)

// ErrNoRecipients is returned when a message has nobody to go to
var ErrNoRecipients = errors.New("no recipients")

// MailClient defines the interface for outbound alert mail
type MailClient interface {
	// IsConfigured reports whether the client can actually deliver
	IsConfigured() bool
	// Send delivers one plain-text message to all recipients
	Send(ctx context.Context, to []string, subject, body string) error
}

// smtpMailClient implements MailClient over SMTP
type smtpMailClient struct {
	cfg     config.SMTPConfig
	from    string
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewMailClient returns an SMTP client, or a no-op client when SMTP is not configured
func NewMailClient(cfg config.SMTPConfig, from string, logger *zap.Logger, m *metrics.Metrics) MailClient {
	if !cfg.IsConfigured() {
		logger.Warn("SMTP not configured, alert mail disabled")
		return NewNoOpMailClient()
	}
	if cfg.Port == 0 {
		cfg.Port = defaultSMTPPort
	}
	return &smtpMailClient{
		cfg:     cfg,
		from:    from,
		logger:  logger,
		metrics: m,
	}
}

func (c *smtpMailClient) IsConfigured() bool {
	return true
}

// Send opens one SMTP session per call. Port 465 uses implicit TLS, any other port requires STARTTLS.
func (c *smtpMailClient) Send(ctx context.Context, to []string, subject, body string) error {
	if len(to) == 0 {
		return ErrNoRecipients
	}

	msg := mail.NewMsg()
	if err := msg.From(c.from); err != nil {
		return fmt.Errorf("invalid sender %q: %w", c.from, err)
	}
	if err := msg.To(to...); err != nil {
		return fmt.Errorf("invalid recipients: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	opts := []mail.Option{
		mail.WithPort(c.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(c.cfg.User),
		mail.WithPassword(c.cfg.Pass),
		mail.WithTimeout(smtpTimeout),
	}
	if c.cfg.Port == smtpSSLPort {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}

	mc, err := mail.NewClient(c.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}

	start := time.Now()
	err = mc.DialAndSendWithContext(ctx, msg)
	duration := time.Since(start)

	if c.metrics != nil {
		c.metrics.RecordExternalCall(smtpTarget, "send", duration, err)
	}

	if err != nil {
		c.logger.Error("Failed to send mail",
			zap.String("host", c.cfg.Host),
			zap.Int("port", c.cfg.Port),
			zap.String("subject", subject),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return fmt.Errorf("smtp send failed: %w", err)
	}

	c.logger.Debug("Mail sent",
		zap.String("subject", subject),
		zap.Int("recipients", len(to)),
		zap.Duration("duration", duration),
	)
	return nil
}

// noOpMailClient is used when SMTP is not configured
type noOpMailClient struct{}

// NewNoOpMailClient creates a client that delivers nothing
func NewNoOpMailClient() MailClient {
	return &noOpMailClient{}
}

func (c *noOpMailClient) IsConfigured() bool {
	return false
}

func (c *noOpMailClient) Send(ctx context.Context, to []string, subject, body string) error {
	return nil
}
