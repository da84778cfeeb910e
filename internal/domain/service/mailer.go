package service

import "context"

// Mailer sends transactional email. Implementations dispatch over SMTP;
// tests substitute a recording fake.
type Mailer interface {
	// SendVerificationEmail mails the user account activation link
	// carrying the cleartext token.
	SendVerificationEmail(ctx context.Context, to, name, token string) error

	// SendAdminVerificationEmail mails the activation link for an admin
	// account, which verifies on the admin surface.
	SendAdminVerificationEmail(ctx context.Context, to, name, token string) error

	// SendPasswordResetEmail mails the password reset link.
	SendPasswordResetEmail(ctx context.Context, to, name, token string) error
}
