// Package mailer envía correos transaccionales (invitaciones, pedidos a proveedor)
// a partir de plantillas embebidas con los bloques "subject", "plainBody" y "htmlBody".
package mailer

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io"
	"text/template"
	"time"

	"github.com/go-mail/mail"
	"github.com/rs/zerolog"
)

//go:embed templates/*
var templatesFS embed.FS

const sendAttempts = 3

// Mailer cliente SMTP con reintentos.
type Mailer struct {
	dialer *mail.Dialer
	sender string
	log    zerolog.Logger
}

// New crea el mailer. El timeout de conexión es de 5 segundos.
func New(host string, port int, username, password, sender string, log zerolog.Logger) *Mailer {
	dialer := mail.NewDialer(host, port, username, password)
	dialer.Timeout = 5 * time.Second
	return &Mailer{dialer: dialer, sender: sender, log: log}
}

// Send envía un correo renderizando la plantilla indicada.
func (m *Mailer) Send(recipient, templateFile string, data any) error {
	msg, err := m.build(recipient, templateFile, data)
	if err != nil {
		return err
	}
	return m.deliver(msg, recipient, templateFile)
}

// SendWithAttachment igual que Send con un adjunto en memoria (PDF del pedido).
func (m *Mailer) SendWithAttachment(recipient, templateFile string, data any, filename string, content []byte) error {
	msg, err := m.build(recipient, templateFile, data)
	if err != nil {
		return err
	}
	msg.Attach(filename, mail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(content)
		return err
	}))
	return m.deliver(msg, recipient, templateFile)
}

func (m *Mailer) build(recipient, templateFile string, data any) (*mail.Message, error) {
	subject, plainBody, htmlBody, err := render(templateFile, data)
	if err != nil {
		return nil, err
	}
	msg := mail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", plainBody)
	msg.AddAlternative("text/html", htmlBody)
	return msg, nil
}

func (m *Mailer) deliver(msg *mail.Message, recipient, templateFile string) error {
	var err error
	for i := 0; i < sendAttempts; i++ {
		if err = m.dialer.DialAndSend(msg); err == nil {
			m.log.Info().Str("to", recipient).Str("template", templateFile).Msg("correo enviado")
			return nil
		}
		m.log.Warn().Err(err).Int("attempt", i+1).Str("template", templateFile).Msg("fallo enviando correo")
		time.Sleep(5 * time.Millisecond)
	}
	return fmt.Errorf("mailer: enviar %s: %w", templateFile, err)
}

// render ejecuta los tres bloques de la plantilla. "subject" y "plainBody" son texto plano
// y no se escapan; solo "htmlBody" pasa por html/template.
func render(templateFile string, data any) (subject, plainBody, htmlBody string, err error) {
	path := "templates/" + templateFile
	text, err := template.ParseFS(templatesFS, path)
	if err != nil {
		return "", "", "", fmt.Errorf("mailer: plantilla %s: %w", templateFile, err)
	}
	html, err := htmltemplate.ParseFS(templatesFS, path)
	if err != nil {
		return "", "", "", fmt.Errorf("mailer: plantilla %s: %w", templateFile, err)
	}
	if subject, err = execute(text, templateFile, "subject", data); err != nil {
		return "", "", "", err
	}
	if plainBody, err = execute(text, templateFile, "plainBody", data); err != nil {
		return "", "", "", err
	}
	if htmlBody, err = execute(html, templateFile, "htmlBody", data); err != nil {
		return "", "", "", err
	}
	return subject, plainBody, htmlBody, nil
}

type executor interface {
	ExecuteTemplate(w io.Writer, name string, data any) error
}

func execute(tmpl executor, templateFile, name string, data any) (string, error) {
	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, name, data); err != nil {
		return "", fmt.Errorf("mailer: %s/%s: %w", templateFile, name, err)
	}
	return buf.String(), nil
}
