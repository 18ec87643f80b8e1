package notification

import (
	"fmt"
	"net/smtp"
	"strings"

	"pixshare/internal/config"
	"pixshare/internal/logger"
)

// EmailSender delivers mail over SMTP. When the SMTP settings are missing it
// degrades to a disabled sender that drops messages with a warning, which
// keeps local development working without a mail account.
type EmailSender struct {
	host     string
	port     string
	username string
	password string
	from     string
	enabled  bool
}

func NewEmailSender(cfg *config.SMTPConfig) *EmailSender {
	enabled := cfg.Host != "" && cfg.Port != "" && cfg.From != ""
	if !enabled {
		logger.Warn("Email sender disabled: missing SMTP configuration")
	}

	return &EmailSender{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.User,
		password: cfg.Password,
		from:     cfg.From,
		enabled:  enabled,
	}
}

func (s *EmailSender) Send(to, subject, body string) error {
	if !s.enabled {
		logger.Warn("Email sender disabled, dropping message")
		return nil
	}

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("From: %s\r\n", s.from))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	return smtp.SendMail(addr, auth, s.from, []string{to}, []byte(msg.String()))
}
