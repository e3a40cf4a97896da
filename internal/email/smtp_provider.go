package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPConfig - настройки SMTP провайдера
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	// Публичный адрес фронтенда для ссылок в письмах
	PublicBaseURL string
}

// SMTPProvider реализует Provider поверх gomail
type SMTPProvider struct {
	config    *SMTPConfig
	dialer    *gomail.Dialer
	templates *TemplateManager
}

// NewSMTPProvider создает новый SMTP провайдер
func NewSMTPProvider(config *SMTPConfig, templates *TemplateManager) *SMTPProvider {
	if templates == nil {
		templates = NewTemplateManager()
	}
	return &SMTPProvider{
		config:    config,
		dialer:    gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
		templates: templates,
	}
}

// Send отправляет простое письмо
func (p *SMTPProvider) Send(email *Email) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.config.FromEmail, p.config.FromName)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)
	if email.IsHTML {
		m.SetBody("text/html", email.Body)
	} else {
		m.SetBody("text/plain", email.Body)
	}

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendTemplate отправляет письмо по шаблону
func (p *SMTPProvider) SendTemplate(to []string, subject, templateName string, data TemplateData) error {
	body, err := p.templates.Render(templateName, data)
	if err != nil {
		return err
	}
	return p.Send(&Email{To: to, Subject: subject, Body: body, IsHTML: true})
}

// SendVerification отправляет письмо верификации
func (p *SMTPProvider) SendVerification(email, token string) error {
	return p.SendTemplate([]string{email}, "Подтверждение email", "verification", TemplateData{
		"VerifyURL": fmt.Sprintf("%s/verify-email?token=%s", p.config.PublicBaseURL, token),
	})
}

// SendPasswordReset отправляет письмо для сброса пароля
func (p *SMTPProvider) SendPasswordReset(email, token string) error {
	return p.SendTemplate([]string{email}, "Сброс пароля", "password_reset", TemplateData{
		"ResetURL": fmt.Sprintf("%s/reset-password?token=%s", p.config.PublicBaseURL, token),
	})
}

// Close - у gomail нет постоянного соединения
func (p *SMTPProvider) Close() error {
	return nil
}
