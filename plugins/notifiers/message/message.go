package message

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/goto/signoff/domain"
)

//go:embed defaults/*.yaml
var defaultTemplates embed.FS

// Render resolves the template of m, custom templates first then the embedded defaults, and executes it with m.Variables
func Render(m domain.NotificationMessage, custom domain.NotificationMessages) (subject string, body string, err error) {
	tmpl, err := lookup(m, custom)
	if err != nil {
		return "", "", err
	}

	subject, err = execute("subject", tmpl.Subject, m.Variables)
	if err != nil {
		return "", "", err
	}
	body, err = execute("body", tmpl.Body, m.Variables)
	if err != nil {
		return "", "", err
	}
	return subject, body, nil
}

func lookup(m domain.NotificationMessage, custom domain.NotificationMessages) (domain.MessageTemplate, error) {
	for _, key := range []string{m.Key(), m.Type} {
		if t, ok := custom[key]; ok && t.Body != "" {
			return t, nil
		}
	}
	for _, key := range []string{m.Key(), m.Type} {
		content, err := defaultTemplates.ReadFile(fmt.Sprintf("defaults/%s.yaml", key))
		if err != nil {
			continue
		}
		var t domain.MessageTemplate
		if err := yaml.Unmarshal(content, &t); err != nil {
			return t, fmt.Errorf("parsing default template %q: %w", key, err)
		}
		return t, nil
	}
	return domain.MessageTemplate{}, fmt.Errorf("template not found for message %q", m.Key())
}

func execute(name, text string, vars map[string]interface{}) (string, error) {
	t, err := template.New(name).Option("missingkey=zero").Parse(text)
	if err != nil {
		return "", fmt.Errorf("parsing %s template: %w", name, err)
	}
	var buff bytes.Buffer
	if err := t.Execute(&buff, vars); err != nil {
		return "", fmt.Errorf("rendering %s template: %w", name, err)
	}
	return buff.String(), nil
}
