package mailer

import (
	"bytes"
	"context"
	"errors"
	"lankaride/config"
	"lankaride/infras/otel/mocks"
	"mime"
	"net/mail"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomail "github.com/wneessen/go-mail"
)

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.External.SMTP.Host = "localhost"
	cfg.External.SMTP.Port = "1025"
	cfg.External.SMTP.From = "LankaRide <no-reply@lankaride.lk>"

	return cfg
}

func newTestMailer(send func(context.Context, *gomail.Msg) error) *smtpMailer {
	return &smtpMailer{config: newTestConfig(), otel: mocks.NewOtel(), send: send}
}

func render(t *testing.T, msg *gomail.Msg) (string, *mail.Message) {
	t.Helper()

	var buf bytes.Buffer

	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.String()

	parsed, err := mail.ReadMessage(strings.NewReader(raw))
	require.NoError(t, err)

	return raw, parsed
}

func TestSend(t *testing.T) {
	var sent *gomail.Msg

	m := newTestMailer(func(_ context.Context, msg *gomail.Msg) error {
		sent = msg

		return nil
	})

	err := m.Send(context.Background(), "Nimal <nimal@example.com>", "Booking confirmed", "Line one\nLine two")
	require.NoError(t, err)
	require.NotNil(t, sent)

	recipients, err := sent.GetRecipients()
	require.NoError(t, err)
	assert.Equal(t, []string{"nimal@example.com"}, recipients)

	raw, parsed := render(t, sent)
	assert.Contains(t, raw, "Subject: Booking confirmed\r\n")
	assert.Contains(t, parsed.Header.Get("From"), "no-reply@lankaride.lk")
	assert.Contains(t, raw, "Line one")
	assert.Contains(t, raw, "Line two")
}

func TestSend_SubjectHeader(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		want    string
	}{
		{
			name:    "carriage return cannot start a new header",
			subject: "New booking request for Toyota\rBcc: evil@x.com",
			want:    "New booking request for Toyota Bcc: evil@x.com",
		},
		{
			name:    "sinhala vehicle name with CRLF",
			subject: "New booking request for ටොයොටා\r\nBcc: evil@x.com",
			want:    "New booking request for ටොයොටා Bcc: evil@x.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sent *gomail.Msg

			m := newTestMailer(func(_ context.Context, msg *gomail.Msg) error {
				sent = msg

				return nil
			})

			require.NoError(t, m.Send(context.Background(), "b@x.lk", tt.subject, "hi"))

			raw, parsed := render(t, sent)
			assert.NotContains(t, raw, "\rBcc")
			assert.NotContains(t, raw, "\nBcc")
			assert.Empty(t, parsed.Header.Get("Bcc"))

			decoded, err := new(mime.WordDecoder).DecodeHeader(parsed.Header.Get("Subject"))
			require.NoError(t, err)
			assert.Equal(t, tt.want, decoded)
		})
	}
}

func TestSend_NonASCIISubjectIsEncoded(t *testing.T) {
	var sent *gomail.Msg

	m := newTestMailer(func(_ context.Context, msg *gomail.Msg) error {
		sent = msg

		return nil
	})

	require.NoError(t, m.Send(context.Background(), "b@x.lk", "වාහනය අනුමත කළා", "hi"))

	_, parsed := render(t, sent)
	subject := parsed.Header.Get("Subject")

	assert.True(t, strings.HasPrefix(subject, "=?UTF-8?"), "subject %q is not an encoded word", subject)
	assert.NotContains(t, subject, "වාහනය")
}

func TestSend_Errors(t *testing.T) {
	m := newTestMailer(func(context.Context, *gomail.Msg) error {
		return errors.New("connection refused")
	})

	assert.ErrorContains(t, m.Send(context.Background(), "not-an-address", "s", "b"), "invalid recipient address")
	assert.ErrorContains(t, m.Send(context.Background(), "a@b.lk", "s", "b"), "connection refused")
}

func TestClientOptions(t *testing.T) {
	cfg := newTestConfig()

	options, err := clientOptions(cfg)
	require.NoError(t, err)
	assert.Len(t, options, 2)

	cfg.External.SMTP.Username = "mailer"
	options, err = clientOptions(cfg)
	require.NoError(t, err)
	assert.Len(t, options, 5)

	cfg.External.SMTP.Port = "smtp"
	_, err = clientOptions(cfg)
	assert.ErrorContains(t, err, "invalid smtp port")
}
