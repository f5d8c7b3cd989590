// AngelaMos | 2026
// mailer_test.go

package mail

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/jhillyerd/enmime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/contacts-api/internal/config"
)

type captureSender struct {
	from       string
	recipients []string
	msg        []byte
	err        error
}

func (c *captureSender) Send(reversePath string, recipients []string, msg []byte) error {
	c.from = reversePath
	c.recipients = recipients
	c.msg = msg
	return c.err
}

func testMailConfig() config.MailConfig {
	return config.MailConfig{From: "noreply@example.com", FromName: "Contacts"}
}

func TestSendVerification(t *testing.T) {
	sender := &captureSender{}
	m := NewWithSender(sender, testMailConfig(), nil)

	link := "https://contacts.example.com/users/verify/tok123"
	require.NoError(t, m.SendVerification(context.Background(), "ann@example.com", link))

	assert.Equal(t, "noreply@example.com", sender.from)
	assert.Equal(t, []string{"ann@example.com"}, sender.recipients)

	env, err := enmime.ReadEnvelope(bytes.NewReader(sender.msg))
	require.NoError(t, err)
	assert.Equal(t, verificationSubject, env.GetHeader("Subject"))
	assert.Contains(t, env.HTML, `href="`+link+`"`)
	assert.Contains(t, env.Text, link)
}

func TestSendVerificationTransportError(t *testing.T) {
	sender := &captureSender{err: errors.New("connection refused")}
	m := NewWithSender(sender, testMailConfig(), nil)

	err := m.SendVerification(context.Background(), "ann@example.com", "https://x/users/verify/t")
	assert.ErrorContains(t, err, "connection refused")
}

func TestSendVerificationCanceled(t *testing.T) {
	sender := &captureSender{}
	m := NewWithSender(sender, testMailConfig(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, m.SendVerification(ctx, "ann@example.com", "https://x"), context.Canceled)
	assert.Nil(t, sender.msg)
}
