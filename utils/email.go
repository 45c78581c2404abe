package utils

import (
	"ModelHub/config"
	"crypto/tls"
	"errors"
	"html"
	"net/smtp"

	"github.com/jordan-wright/email"
)

// ErrMailDisabled is returned when SMTP is not configured.
var ErrMailDisabled = errors.New("smtp config missing")

// MailEnabled reports whether every SMTP setting is present.
func MailEnabled() bool {
	c := config.AppConfig
	return c.SMTPHost != "" && c.SMTPPort != "" && c.SMTPUser != "" && c.SMTPPass != "" && c.SMTPFrom != ""
}

// SendWelcomeMail greets a user created on first login.
func SendWelcomeMail(to, name string) error {
	if !MailEnabled() {
		return ErrMailDisabled
	}
	c := config.AppConfig

	e := email.NewEmail()
	e.From = c.SMTPFrom
	e.To = []string{to}
	e.Subject = "Bienvenido a la galería de modelos 3D"
	e.HTML = []byte(`
		<h2>Hola ` + html.EscapeString(name) + `</h2>
		<p>Tu cuenta está lista. Ya puedes subir y calificar modelos 3D.</p>
	`)

	addr := c.SMTPHost + ":" + c.SMTPPort
	auth := smtp.PlainAuth("", c.SMTPUser, c.SMTPPass, c.SMTPHost)
	tlsConfig := &tls.Config{ServerName: c.SMTPHost}
	useTLS := c.SMTPTLS || c.SMTPPort == "465"

	if useTLS {
		return e.SendWithTLS(addr, auth, tlsConfig)
	}
	if c.SMTPStartTLS {
		return e.SendWithStartTLS(addr, auth, tlsConfig)
	}
	return e.Send(addr, auth)
}
