// Package mailer sends invitation and password-reset email over SMTP.
package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/DDricck/price-pulse-product-manager/internal/config"
)

// Mailer is the outbound mail collaborator. Faked in tests.
type Mailer interface {
	SendInvitation(toEmail, displayName, tempPassword string) error
	SendPasswordReset(toEmail, displayName, newPassword string) error
}

type smtpMailer struct {
	cfg config.SMTP
}

func New(cfg config.SMTP) Mailer {
	return &smtpMailer{cfg: cfg}
}

func (m *smtpMailer) SendInvitation(toEmail, displayName, tempPassword string) error {
	body := fmt.Sprintf(
		"Hello %s,\r\n\r\nYou have been invited to PricePulse.\r\n\r\n"+
			"Sign in with:\r\n  Email: %s\r\n  Temporary password: %s\r\n\r\n"+
			"Please change your password after your first sign-in.\r\n",
		displayName, toEmail, tempPassword,
	)
	return m.send(toEmail, "You have been invited to PricePulse", body)
}

func (m *smtpMailer) SendPasswordReset(toEmail, displayName, newPassword string) error {
	body := fmt.Sprintf(
		"Hello %s,\r\n\r\nYour PricePulse password has been reset.\r\n\r\n"+
			"New password: %s\r\n\r\n"+
			"Please change it after signing in.\r\n",
		displayName, newPassword,
	)
	return m.send(toEmail, "PricePulse password reset", body)
}

func (m *smtpMailer) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	return dialer.DialAndSend(msg)
}
