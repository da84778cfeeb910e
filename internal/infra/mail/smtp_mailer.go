// Package mail implements transactional email dispatch over SMTP.
package mail

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"bazar/config"
	"bazar/internal/domain/service"
	"bazar/internal/errors"
)

// smtpMailer is a concrete implementation of the Mailer interface using gomail.
type smtpMailer struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
	baseURL  string
}

// NewSMTPMailer is the constructor for smtpMailer.
func NewSMTPMailer(cfg *config.Config) (service.Mailer, error) {
	if cfg.Mail == nil {
		return nil, errors.New("mail configuration must be provided")
	}

	dialer := gomail.NewDialer(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.Username, cfg.Mail.Password)

	return &smtpMailer{
		dialer:   dialer,
		from:     cfg.Mail.From,
		fromName: cfg.Mail.FromName,
		baseURL:  cfg.HTTP.BaseURL,
	}, nil
}

// verificationLink builds the user-surface activation link. The path
// must match the mounted route, GET /api/v1/auth/verify/:token.
func verificationLink(baseURL, token string) string {
	return fmt.Sprintf("%s/api/v1/auth/verify/%s", baseURL, token)
}

// adminVerificationLink builds the admin-surface activation link,
// GET /api/v1/admin/verify/:token.
func adminVerificationLink(baseURL, token string) string {
	return fmt.Sprintf("%s/api/v1/admin/verify/%s", baseURL, token)
}

// SendVerificationEmail mails the account activation link carrying the cleartext token.
func (m *smtpMailer) SendVerificationEmail(ctx context.Context, to, name, token string) error {
	return m.sendVerification(ctx, to, name, verificationLink(m.baseURL, token))
}

// SendAdminVerificationEmail mails the activation link for an admin account.
func (m *smtpMailer) SendAdminVerificationEmail(ctx context.Context, to, name, token string) error {
	return m.sendVerification(ctx, to, name, adminVerificationLink(m.baseURL, token))
}

func (m *smtpMailer) sendVerification(ctx context.Context, to, name, link string) error {
	body := fmt.Sprintf(
		"<p>Hello %s,</p><p>Welcome! Please confirm your email address by clicking the link below. "+
			"The link expires in 30 minutes.</p><p><a href=%q>Verify your email</a></p>",
		name, link,
	)

	return m.send(ctx, to, "Verify your email address", body)
}

// SendPasswordResetEmail mails the password reset link.
func (m *smtpMailer) SendPasswordResetEmail(ctx context.Context, to, name, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", m.baseURL, token)
	body := fmt.Sprintf(
		"<p>Hello %s,</p><p>We received a request to reset your password. "+
			"The link below expires in 30 minutes. If you did not ask for this, ignore this email.</p>"+
			"<p><a href=%q>Reset your password</a></p>",
		name, link,
	)

	return m.send(ctx, to, "Reset your password", body)
}

// send dispatches one message. gomail has no context support, so the
// deadline is only honored between attempts.
func (m *smtpMailer) send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "mail dispatch aborted")
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.fromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return errors.Wrap(err, "dial and send")
	}

	return nil
}
