package mailer

//go:generate go run go.uber.org/mock/mockgen -source=./mailer.go -destination=./mocks/mailer_mock.go -package=mocks

import (
	"context"
	"fmt"
	"lankaride/config"
	"lankaride/infras/otel"
	"lankaride/shared/constant"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cast"
	gomail "github.com/wneessen/go-mail"
)

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type smtpMailer struct {
	config *config.Config
	otel   otel.Otel
	send   func(ctx context.Context, msg *gomail.Msg) error
}

// headerBreaks keeps caller text such as vehicle names on a single header line.
var headerBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

func New(config *config.Config, otel otel.Otel) Mailer {
	m := &smtpMailer{
		config: config,
		otel:   otel,
	}
	m.send = m.dialAndSend

	return m
}

func (m *smtpMailer) Send(ctx context.Context, to, subject, body string) (err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelMailerScopeName, constant.OtelMailerScopeName+".Send")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	msg, err := buildMessage(m.config.External.SMTP.From, to, subject, body)
	if err != nil {
		return err
	}

	if err = m.send(ctx, msg); err != nil {
		log.Error().Err(err).Str("to", to).Msg("failed to send email")

		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Info().Str("to", to).Str("subject", subject).Msg("email sent")

	return nil
}

func (m *smtpMailer) dialAndSend(ctx context.Context, msg *gomail.Msg) error {
	options, err := clientOptions(m.config)
	if err != nil {
		return err
	}

	client, err := gomail.NewClient(m.config.External.SMTP.Host, options...)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}

	return client.DialAndSendWithContext(ctx, msg) //nolint:wrapcheck
}

func clientOptions(config *config.Config) ([]gomail.Option, error) {
	cfg := config.External.SMTP

	port, err := cast.ToIntE(cfg.Port)
	if err != nil {
		return nil, fmt.Errorf("invalid smtp port %q: %w", cfg.Port, err)
	}

	options := []gomail.Option{
		gomail.WithPort(port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}

	if cfg.Username != "" {
		options = append(options,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	return options, nil
}

// buildMessage encodes non-ASCII headers as RFC 2047 words.
func buildMessage(from, to, subject, body string) (*gomail.Msg, error) {
	msg := gomail.NewMsg()

	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}

	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}

	msg.Subject(headerBreaks.Replace(subject))
	msg.SetDate()
	msg.SetBodyString(gomail.TypeTextPlain, body)

	return msg, nil
}
