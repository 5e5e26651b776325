package mail

import (
	"context"

	gomail "github.com/wneessen/go-mail"
)

type Message struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// Mailer is the delivery collaborator. The service only hands over rendered
// strings, templating happens before a Message is built.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type SMTPMailer struct {
	client *gomail.Client
	from   string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func NewSMTPMailer(cfg SMTPConfig) (*SMTPMailer, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}
	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, err
	}
	return &SMTPMailer{client: client, from: cfg.From}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	mail := gomail.NewMsg()
	if err := mail.From(m.from); err != nil {
		return err
	}
	if err := mail.To(msg.To); err != nil {
		return err
	}
	mail.Subject(msg.Subject)
	mail.SetBodyString(gomail.TypeTextPlain, msg.TextBody)
	mail.AddAlternativeString(gomail.TypeTextHTML, msg.HTMLBody)
	return m.client.DialAndSendWithContext(ctx, mail)
}
