// Package notify renders notification emails from an embedded YAML catalog.
//
// Each notification kind has a subject and a body template. Templates use
// text/template syntax and receive a Data value. The catalog is parsed once
// at startup; a missing kind or a template that fails to parse is a
// configuration bug and is reported by Load.
package notify

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"joywork.app/api/internal/model"
)

//go:embed templates.yaml
var defaultTemplates []byte

// PreviewLength is the number of characters of message content quoted in an email.
const PreviewLength = 200

// Kinds lists every notification kind the catalog must define.
var Kinds = []model.NotificationKind{
	model.NotificationTicketCreated,
	model.NotificationTicketMessageFromApplicant,
	model.NotificationTicketReplyFromCompany,
	model.NotificationApplicationMessageToCompany,
	model.NotificationApplicationMessageToApplicant,
}

// Data is the template input. Empty fields render as empty strings.
type Data struct {
	RecipientName string
	SenderName    string
	CompanyName   string
	JobTitle      string
	TicketTitle   string
	Preview       string
	Link          string
}

type entry struct {
	Subject string `yaml:"subject"`
	Body    string `yaml:"body"`
}

type compiled struct {
	subject *template.Template
	body    *template.Template
}

type Catalog struct {
	templates map[model.NotificationKind]compiled
}

// Default loads the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Load(defaultTemplates)
}

// Load parses a YAML catalog and compiles every template in it.
func Load(data []byte) (*Catalog, error) {
	var raw map[string]entry
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing notification templates: %w", err)
	}

	c := &Catalog{templates: make(map[model.NotificationKind]compiled, len(raw))}
	for _, kind := range Kinds {
		e, ok := raw[string(kind)]
		if !ok {
			return nil, fmt.Errorf("notification template %q missing", kind)
		}
		if strings.TrimSpace(e.Subject) == "" || strings.TrimSpace(e.Body) == "" {
			return nil, fmt.Errorf("notification template %q needs a subject and a body", kind)
		}

		subject, err := template.New(string(kind) + ".subject").Option("missingkey=error").Parse(e.Subject)
		if err != nil {
			return nil, fmt.Errorf("parsing %s subject: %w", kind, err)
		}
		body, err := template.New(string(kind) + ".body").Option("missingkey=error").Parse(e.Body)
		if err != nil {
			return nil, fmt.Errorf("parsing %s body: %w", kind, err)
		}
		c.templates[kind] = compiled{subject: subject, body: body}
	}

	return c, nil
}

// Render produces the email for kind addressed to the given recipient.
func (c *Catalog) Render(kind model.NotificationKind, to string, data Data) (model.Notification, error) {
	t, ok := c.templates[kind]
	if !ok {
		return model.Notification{}, fmt.Errorf("unknown notification kind %q", kind)
	}

	var subject, body strings.Builder
	if err := t.subject.Execute(&subject, data); err != nil {
		return model.Notification{}, fmt.Errorf("rendering %s subject: %w", kind, err)
	}
	if err := t.body.Execute(&body, data); err != nil {
		return model.Notification{}, fmt.Errorf("rendering %s body: %w", kind, err)
	}

	return model.Notification{
		Kind:    kind,
		To:      to,
		Subject: singleLine(subject.String()),
		Body:    body.String(),
	}, nil
}

// Preview shortens message content for quoting in an email. It counts
// characters, not bytes, and folds newlines so the quote stays on one line.
func Preview(content string) string {
	content = singleLine(content)
	if utf8.RuneCountInString(content) <= PreviewLength {
		return content
	}
	runes := []rune(content)
	return strings.TrimSpace(string(runes[:PreviewLength])) + "…"
}

// singleLine keeps header values free of CR/LF.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
