package email

import (
	"crypto/tls"

	"gopkg.in/gomail.v2"
)

type Sender interface {
	Send(email *Email) error
}

type SmtpConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// GomailSender opens one SMTP connection per message.
type GomailSender struct {
	config SmtpConfig
}

func NewGomailSender(config SmtpConfig) *GomailSender {
	return &GomailSender{config: config}
}

func (s *GomailSender) Send(email *Email) error {
	message := gomail.NewMessage()
	message.SetHeader("From", s.config.From)
	message.SetHeader("To", email.To)
	message.SetHeader("Subject", email.Subject)
	message.SetBody("text/html", email.HTMLBody)

	dialer := gomail.NewDialer(s.config.Host, s.config.Port, s.config.Username, s.config.Password)
	dialer.TLSConfig = &tls.Config{ServerName: s.config.Host}

	return dialer.DialAndSend(message)
}
