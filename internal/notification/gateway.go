package notification

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

//go:generate mockgen -source=gateway.go -destination=mock/gateway_mock.go -package=mock

// Gateway delivers a notification to a single address. Delivery is
// best-effort: callers log failures and move on, a broken mail path must
// never block a workflow transition.
type Gateway interface {
	Notify(ctx context.Context, address, subject, body string) error
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

type smtpGateway struct {
	cfg    SMTPConfig
	logger *zap.Logger
}

func NewSMTPGateway(cfg SMTPConfig, logger ...*zap.Logger) Gateway {
	l := zap.L().Named("notification.smtp")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.smtp")
	}
	return &smtpGateway{cfg: cfg, logger: l}
}

func (g *smtpGateway) Notify(ctx context.Context, address, subject, body string) error {
	if address == "" {
		return fmt.Errorf("empty recipient address")
	}

	msg := strings.Join([]string{
		"From: " + g.cfg.From,
		"To: " + address,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	auth := smtp.PlainAuth("", g.cfg.Username, g.cfg.Password, g.cfg.Host)
	addr := g.cfg.Host + ":" + g.cfg.Port

	if err := smtp.SendMail(addr, auth, g.cfg.From, []string{address}, []byte(msg)); err != nil {
		return err
	}

	g.logger.Debug("notification delivered",
		zap.String("to", address),
		zap.String("subject", subject),
	)
	return nil
}

type logGateway struct {
	logger *zap.Logger
}

// NewLogGateway returns a Gateway that only logs. Used in development and in
// deployments without an SMTP relay.
func NewLogGateway(logger ...*zap.Logger) Gateway {
	l := zap.L().Named("notification.log")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.log")
	}
	return &logGateway{logger: l}
}

func (g *logGateway) Notify(ctx context.Context, address, subject, body string) error {
	g.logger.Info("notification",
		zap.String("to", address),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}
