package services

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"strconv"
	"time"

	gomail "gopkg.in/gomail.v2"
)

// Mailer sends the platform's transactional emails over SMTP. It is
// constructed once at startup and injected into the controllers so tests can
// substitute a double.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailer builds a Mailer from SMTP_* environment variables.
func NewMailer() *Mailer {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil || port == 0 {
		port = 587
	}
	from := os.Getenv("EMAIL_FROM")
	if from == "" {
		from = "noreply@konze.com"
	}
	return &Mailer{
		dialer: gomail.NewDialer(
			os.Getenv("SMTP_HOST"),
			port,
			os.Getenv("SMTP_USER"),
			os.Getenv("SMTP_PASS"),
		),
		from: from,
	}
}

// Send delivers a single HTML email. Failures surface to the caller; no
// retry is attempted here.
func (m *Mailer) Send(to, subject, html string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("email sending failed: %w", err)
	}
	return nil
}

// SendVerificationEmail mails the 6-digit registration code.
func (m *Mailer) SendVerificationEmail(email, code, name string) error {
	html, err := renderCodeEmail("Email Verification", name,
		"Thank you for registering with Konze Digital Solutions. Please use the verification code below to complete your registration:",
		code,
		"If you didn't create an account with us, please ignore this email.")
	if err != nil {
		return err
	}
	return m.Send(email, "Verify Your Email - Konze Digital Solutions", html)
}

// SendPasswordResetEmail mails the 6-digit reset code.
func (m *Mailer) SendPasswordResetEmail(email, code, name string) error {
	html, err := renderCodeEmail("Password Reset", name,
		"We received a request to reset your password. Please use the verification code below:",
		code,
		"If you didn't request a password reset, please ignore this email and your password will remain unchanged.")
	if err != nil {
		return err
	}
	return m.Send(email, "Password Reset Request - Konze Digital Solutions", html)
}

// SendWelcomeEmail mails the post-verification welcome message.
func (m *Mailer) SendWelcomeEmail(email, name string) error {
	html, err := renderSimpleEmail("Welcome to Konze!", name,
		"Welcome to Konze Digital Solutions! We're excited to have you on board. "+
			"Get started by exploring our services and investment options from your dashboard. "+
			"If you have any questions, feel free to reach out to our support team.")
	if err != nil {
		return err
	}
	return m.Send(email, "Welcome to Konze Digital Solutions!", html)
}

// SendContactConfirmation acknowledges a received contact message.
func (m *Mailer) SendContactConfirmation(email, name, subject string) error {
	html, err := renderSimpleEmail("Message Received", name,
		fmt.Sprintf("Thank you for contacting Konze Digital Solutions! We have received your message regarding %q and our team will get back to you within 24-48 hours.", subject))
	if err != nil {
		return err
	}
	return m.Send(email, "Message Received - Konze Digital Solutions", html)
}

var codeEmailTmpl = template.Must(template.New("code").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <div style="background: #2c3e50; color: white; padding: 20px; text-align: center;">
      <h1>{{.Heading}}</h1>
    </div>
    <div style="background: #f8f9fa; padding: 30px;">
      <h2>Hello {{.Name}},</h2>
      <p>{{.Intro}}</p>
      <div style="background: #fff; border: 2px dashed #3498db; padding: 20px; font-size: 32px; font-weight: bold; text-align: center; letter-spacing: 10px; margin: 20px 0;">{{.Code}}</div>
      <p>This code will expire in 10 minutes.</p>
      <p>{{.Outro}}</p>
      <p>Best regards,<br>The Konze Team</p>
    </div>
    <div style="text-align: center; margin-top: 30px; color: #666; font-size: 12px;">
      <p>&copy; {{.Year}} Konze Digital Solutions. All rights reserved.</p>
    </div>
  </div>
</body>
</html>`))

var simpleEmailTmpl = template.Must(template.New("simple").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <div style="background: #2c3e50; color: white; padding: 20px; text-align: center;">
      <h1>{{.Heading}}</h1>
    </div>
    <div style="background: #f8f9fa; padding: 30px;">
      <h2>Hello {{.Name}},</h2>
      <p>{{.Body}}</p>
      <p>Best regards,<br>The Konze Team</p>
    </div>
    <div style="text-align: center; margin-top: 30px; color: #666; font-size: 12px;">
      <p>&copy; {{.Year}} Konze Digital Solutions. All rights reserved.</p>
    </div>
  </div>
</body>
</html>`))

func renderCodeEmail(heading, name, intro, code, outro string) (string, error) {
	var buf bytes.Buffer
	err := codeEmailTmpl.Execute(&buf, map[string]interface{}{
		"Heading": heading,
		"Name":    name,
		"Intro":   intro,
		"Code":    code,
		"Outro":   outro,
		"Year":    time.Now().Year(),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderSimpleEmail(heading, name, body string) (string, error) {
	var buf bytes.Buffer
	err := simpleEmailTmpl.Execute(&buf, map[string]interface{}{
		"Heading": heading,
		"Name":    name,
		"Body":    body,
		"Year":    time.Now().Year(),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
