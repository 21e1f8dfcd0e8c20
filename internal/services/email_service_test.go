package services

import (
	"sync"
	"testing"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/require"

	"github.com/mansionmuse/backend/internal/config"
)

type capturingMailSender struct {
	mu   sync.Mutex
	sent []*mail.SGMailV3
}

func (c *capturingMailSender) Send(m *mail.SGMailV3) (*rest.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, m)
	return &rest.Response{StatusCode: 202}, nil
}

func TestEmailSendGoesThroughClient(t *testing.T) {
	sender := &capturingMailSender{}
	svc := &EmailService{
		cfg: &config.Config{
			OrganizationName:           "MansionMuse",
			LDFlag_SendgridFromEmail:   "no-reply@mansionmuse.app",
			LDFlag_SendgridSandboxMode: true,
		},
		client: sender,
	}

	svc.send("Asha Verma", "asha@example.com", "Payment Received", "thanks", "<p>thanks</p>")

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	require.Equal(t, "no-reply@mansionmuse.app", msg.From.Address)
	require.Equal(t, "asha@example.com", msg.Personalizations[0].To[0].Address)
	require.NotNil(t, msg.MailSettings)
	require.True(t, *msg.MailSettings.SandboxMode.Enable)
}

func TestEmailSendSkipsEmptyRecipient(t *testing.T) {
	sender := &capturingMailSender{}
	svc := &EmailService{cfg: &config.Config{OrganizationName: "MansionMuse"}, client: sender}

	svc.send("Nobody", "", "subject", "plain", "<p>html</p>")

	require.Empty(t, sender.sent)
}
