package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/aegis-safety/backend/pkg/circuit"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Sender delivers templated mail. Implementations must be safe for
// concurrent use.
type Sender interface {
	Send(to, subject, templateName string, data map[string]interface{}) error
}

// Config holds SMTP connection settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// SMTPSender sends mail over SMTP with templates rendered per message.
// A circuit breaker fails mail fast while the relay keeps erroring so
// request handlers do not stack up behind SMTP timeouts.
type SMTPSender struct {
	cfg       Config
	dialer    *gomail.Dialer
	templates *template.Template
	breaker   *circuit.Breaker
	logger    *zap.Logger
}

// NewSMTPSender parses the built-in templates and prepares a dialer.
// The connection is established lazily on the first Send.
func NewSMTPSender(cfg Config, logger *zap.Logger) (*SMTPSender, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.FromName == "" {
		cfg.FromName = "Aegis"
	}

	tmpl := template.New("mail").Funcs(sprig.FuncMap())
	for name, body := range builtinTemplates {
		if _, err := tmpl.New(name).Parse(body); err != nil {
			return nil, fmt.Errorf("parse mail template %s: %w", name, err)
		}
	}

	return &SMTPSender{
		cfg:       cfg,
		dialer:    gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		templates: tmpl,
		breaker:   circuit.NewBreaker("smtp", circuit.DefaultConfig(), nil, logger),
		logger:    logger,
	}, nil
}

// Send renders the named template with data and delivers it as HTML.
func (s *SMTPSender) Send(to, subject, templateName string, data map[string]interface{}) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("render mail template %s: %w", templateName, err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.From, s.cfg.FromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body.String())

	err := s.breaker.Do(func() error {
		return s.dialer.DialAndSend(m)
	})
	if err != nil {
		s.logger.Error("SMTP delivery failed",
			zap.String("template", templateName),
			zap.Error(err))
		return fmt.Errorf("send mail: %w", err)
	}

	s.logger.Debug("Mail delivered", zap.String("template", templateName))

	return nil
}
