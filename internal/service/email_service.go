package service

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"
)

// ==============================================
// MAILER INTERFACE (for testing)
// ==============================================

// Mailer delivers outbound account emails. Sends are at-least-once; a
// failed send never rolls back the operation that triggered it.
type Mailer interface {
	SendOTPEmail(to, code string) error
	SendResetPasswordEmail(to, code string) error
	SendWelcomeEmail(to string) error
}

// ==============================================
// EMAIL SERVICE
// ==============================================

type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

type EmailService struct {
	cfg EmailConfig
}

func NewEmailService(cfg EmailConfig) *EmailService {
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &EmailService{cfg: cfg}
}

// ==============================================
// SEND OPERATIONS
// ==============================================

// SendOTPEmail sends an account-verification code
func (s *EmailService) SendOTPEmail(to, code string) error {
	subject := "Your OTP for Account Verification"
	html := emailTemplate("Verify your account", fmt.Sprintf(`
		<p>Use the code below to verify your account.</p>
		<div class="info-box"><strong>%s</strong></div>
		<p>This code expires in 30 minutes. Do not share it with anyone.</p>`, code))
	text := fmt.Sprintf("Your OTP is: %s. Do not share this with anyone.", code)

	return s.send(to, subject, html, text)
}

// SendResetPasswordEmail sends a password-reset code
func (s *EmailService) SendResetPasswordEmail(to, code string) error {
	subject := "Your OTP for creating new password"
	html := emailTemplate("Reset your password", fmt.Sprintf(`
		<p>We received a request to create a new password for your account.</p>
		<div class="info-box"><strong>%s</strong></div>
		<p>This code expires in 1 hour. If you didn't request this, you can ignore this email.</p>`, code))
	text := fmt.Sprintf("Your OTP is: %s. Do not share this with anyone.", code)

	return s.send(to, subject, html, text)
}

// SendWelcomeEmail sends the post-signup welcome message
func (s *EmailService) SendWelcomeEmail(to string) error {
	subject := "Welcome to the Plug LR family! 🎉"
	html := emailTemplate("Welcome aboard", `
		<p>Your account is ready. We're glad to have you with us.</p>
		<p>Log in any time to complete your profile and get started.</p>`)
	text := "Welcome to Plug LR! Your account is ready."

	return s.send(to, subject, html, text)
}

// ==============================================
// SMTP DELIVERY
// ==============================================

// send delivers a multipart/alternative message (plain-text fallback plus
// HTML body) over SMTP with STARTTLS. The dial is bounded by the configured
// timeout; net/smtp has no context support.
func (s *EmailService) send(to, subject, htmlBody, textBody string) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	conn, err := net.DialTimeout("tcp", addr, s.cfg.Timeout)
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}

	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp client: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: s.cfg.Host}); err != nil {
			return fmt.Errorf("smtp starttls: %w", err)
		}
	}

	if s.cfg.Username != "" {
		auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := client.Mail(s.cfg.From); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(buildMessage(s.cfg.From, to, subject, htmlBody, textBody)); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close: %w", err)
	}

	return client.Quit()
}

const mimeBoundary = "plugr-alt-7f3a9c"

func buildMessage(from, to, subject, htmlBody, textBody string) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "From: Plug LR <%s>\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", mimeBoundary)

	fmt.Fprintf(&b, "--%s\r\n", mimeBoundary)
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(textBody)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", mimeBoundary)
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(htmlBody)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s--\r\n", mimeBoundary)

	return []byte(b.String())
}

// ==============================================
// EMAIL TEMPLATES
// ==============================================

func emailTemplate(title, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #1A1A2E; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A1A2E; line-height: 1.6; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; font-size: 22px; letter-spacing: 4px; text-align: center; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>PLUG LR</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; Plug LR. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}
