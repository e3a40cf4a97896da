package email

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"
)

// TemplateManager хранит разобранные html-шаблоны писем
type TemplateManager struct {
	templates map[string]*template.Template
}

// NewTemplateManager создает менеджер и регистрирует встроенные шаблоны
func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{templates: make(map[string]*template.Template)}

	// Встроенные шаблоны - достаточно для верификации и сброса пароля.
	// Шаблоны из каталога (LoadTemplates) переопределяют встроенные.
	tm.mustAdd("verification", `
		<h2>Добро пожаловать в SkillSpace!</h2>
		<p>Для подтверждения адреса перейдите по ссылке:</p>
		<p><a href="{{.VerifyURL}}">Подтвердить email</a></p>`)
	tm.mustAdd("password_reset", `
		<h2>Сброс пароля</h2>
		<p>Для сброса пароля перейдите по ссылке (действует 1 час):</p>
		<p><a href="{{.ResetURL}}">Сбросить пароль</a></p>`)

	return tm
}

func (tm *TemplateManager) mustAdd(name, body string) {
	tm.templates[name] = template.Must(template.New(name).Parse(body))
}

// AddTemplate добавляет шаблон в менеджер
func (tm *TemplateManager) AddTemplate(name, body string) error {
	t, err := template.New(name).Parse(body)
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	tm.templates[name] = t
	return nil
}

// LoadTemplates загружает *.html шаблоны из каталога
func (tm *TemplateManager) LoadTemplates(dirPath string) error {
	matches, err := filepath.Glob(filepath.Join(dirPath, "*.html"))
	if err != nil {
		return err
	}
	for _, path := range matches {
		name := filepath.Base(path)
		name = name[:len(name)-len(filepath.Ext(name))]
		t, err := template.ParseFiles(path)
		if err != nil {
			return fmt.Errorf("failed to parse template %s: %w", path, err)
		}
		tm.templates[name] = t
	}
	return nil
}

// Render рендерит шаблон с данными
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	t, ok := tm.templates[templateName]
	if !ok {
		return "", fmt.Errorf("template %s not found", templateName)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", templateName, err)
	}
	return buf.String(), nil
}
