package email

// TemplateData - данные для подстановки в шаблон письма
type TemplateData map[string]interface{}

// Email - простое сообщение
type Email struct {
	To      []string
	Subject string
	Body    string
	IsHTML  bool
}

// Provider определяет интерфейс для отправки email
type Provider interface {
	// Send отправляет простое email сообщение
	Send(email *Email) error

	// SendTemplate отправляет email по именованному шаблону
	SendTemplate(to []string, subject string, templateName string, data TemplateData) error

	// SendVerification отправляет письмо верификации
	SendVerification(email string, token string) error

	// SendPasswordReset отправляет письмо для сброса пароля
	SendPasswordReset(email string, token string) error

	// Close закрывает соединение с провайдером
	Close() error
}
