package core

import (
	"bytes"
	"fmt"
	"log"
	"net/mail"
	"path/filepath"
	"strings"
	"sync"
	texttmpl "text/template"
)

var (
	templates map[string]*texttmpl.Template
	tmplInit  sync.Once
)

type (
	EmailMessage struct {
		To      []mail.Address
		Subject string
		BodyStr string // simple text/plain, non-templated content

		// templated contents
		TemplateName string // without ext
		TemplateData interface{}
		TextContent  string
	}

	// EmailService is any service that can send emails
	EmailService interface {
		// SendMessages sends messages concurrently
		SendMessages(messages ...*EmailMessage)
	}
)

// Render resolves the message body: BodyStr wins, otherwise the named
// template is executed with TemplateData.
func (m *EmailMessage) Render(conf *Config) error {
	if m.BodyStr != "" {
		m.TextContent = m.BodyStr
		return nil
	}
	if m.TemplateName == "" {
		return nil
	}

	tmplInit.Do(func() { parseTemplates(conf) }) // only execute once during first send

	tmpl, ok := templates[m.TemplateName]
	if !ok {
		return fmt.Errorf("core: unknown email template %q", m.TemplateName)
	}
	var buff bytes.Buffer
	if err := tmpl.Execute(&buff, m.TemplateData); err != nil {
		return err
	}
	m.TextContent = buff.String()
	return nil
}

func (m *EmailMessage) HasRecipients() bool { return len(m.To) > 0 }
func (m *EmailMessage) HasContent() bool    { return m.TextContent != "" }

func parseTemplates(conf *Config) {
	templates = make(map[string]*texttmpl.Template)

	rp := filepath.Join(conf.WorkDir, "assets", "templates", "email")
	fps, err := filepath.Glob(filepath.Join(rp, "*.txt"))
	if err != nil {
		log.Print(fmt.Errorf("core.parseTemplates: %v", err))
	}

	for _, fp := range fps {
		fname := filepath.Base(fp)
		if strings.HasPrefix(fname, "_") {
			continue
		}
		name := strings.TrimSuffix(fname, ".txt")
		tmpl, err := texttmpl.ParseFiles(filepath.Join(rp, "_base.txt"), fp)
		if err != nil {
			log.Print(fmt.Errorf("core.parseTemplates: %v", err))
			continue
		}
		if conf.Debug || conf.TestMode {
			tmpl = tmpl.Option("missingkey=error")
		}
		templates[name] = tmpl
	}
}
