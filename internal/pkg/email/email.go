package email

import (
	"fmt"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// EmailService defines the interface for email operations
type EmailService interface {
	SendNotificationEmail(toEmail, toName, subject, message string) error
	SendPasswordResetEmail(toEmail, toName, token string) error
	SendWelcomeEmail(toEmail, toName string) error
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	BaseURL   string
}

// EmailServiceImpl implements EmailService over gomail
type EmailServiceImpl struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewEmailService creates a new EmailService
func NewEmailService(config SMTPConfig, logger zerolog.Logger) EmailService {
	return &EmailServiceImpl{config: config, logger: logger}
}

func (s *EmailServiceImpl) send(toEmail, subject, htmlBody string) error {
	// Without SMTP credentials (development), log instead of sending.
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("subject", subject).
			Msg("SMTP credentials not configured - email not sent")
		return nil
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromEmail, s.config.FromName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.config.Host, s.config.Port, s.config.Username, s.config.Password)
	if err := d.DialAndSend(m); err != nil {
		s.logger.Error().Err(err).Str("toEmail", toEmail).Msg("Failed to send email")
		return err
	}
	return nil
}

// SendNotificationEmail mirrors an in-app notification to email
func (s *EmailServiceImpl) SendNotificationEmail(toEmail, toName, subject, message string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2 style="color: #333;">%s</h2>
			<p>Здравей, %s,</p>
			<p>%s</p>
			<p style="color: #888; font-size: 12px;">SchoolMate — това съобщение е изпратено автоматично.</p>
		</div>`, subject, toName, message)
	return s.send(toEmail, subject, body)
}

// SendPasswordResetEmail sends a password reset link
func (s *EmailServiceImpl) SendPasswordResetEmail(toEmail, toName, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.config.BaseURL, token)
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2 style="color: #333;">Възстановяване на парола</h2>
			<p>Здравей, %s,</p>
			<p>Получихме заявка за смяна на паролата на твоя акаунт. Натисни бутона по-долу, за да зададеш нова парола:</p>
			<div style="text-align: center; margin: 30px 0;">
				<a href="%s" style="background-color: #4a86e8; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px; font-weight: bold;">Нова парола</a>
			</div>
			<p>Линкът е валиден 1 час. Ако не си заявявал смяна, игнорирай това писмо.</p>
		</div>`, toName, resetURL)
	return s.send(toEmail, "Възстановяване на парола - SchoolMate", body)
}

// SendWelcomeEmail greets a newly registered user
func (s *EmailServiceImpl) SendWelcomeEmail(toEmail, toName string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2 style="color: #333;">Добре дошъл в SchoolMate!</h2>
			<p>Здравей, %s,</p>
			<p>Твоят акаунт е създаден успешно. Вече можеш да следиш кредити, цели, събития и постижения.</p>
		</div>`, toName)
	return s.send(toEmail, "Добре дошъл в SchoolMate", body)
}
