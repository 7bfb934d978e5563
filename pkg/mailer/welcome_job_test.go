package mailer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeWelcomeJob(t *testing.T) {
	job, err := DecodeWelcomeJob([]byte(`{"id":3,"name":"Ada","username":"ada","email":"ada@example.com","occurredAt":"2024-05-01T10:00:00Z"}`))
	require.NoError(t, err)
	assert.Equal(t, int64(3), job.ID)
	assert.Equal(t, "ada@example.com", job.Email)

	_, err = DecodeWelcomeJob([]byte(`{"id":3}`))
	assert.ErrorIs(t, err, ErrNoRecipient)

	_, err = DecodeWelcomeJob([]byte(`nope`))
	assert.Error(t, err)
}

func TestRenderWelcome(t *testing.T) {
	job := WelcomeJob{
		ID:         3,
		Name:       "Ada <Lovelace>",
		Username:   "ada",
		Email:      "ada@example.com",
		OccurredAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}

	msg, err := RenderWelcome(job, "Blog", "https://blog.example.com")
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", msg.To)
	assert.Equal(t, "Welcome to Blog, Ada <Lovelace>", msg.Subject)
	assert.Contains(t, msg.Text, "@ada")
	assert.Contains(t, msg.Text, "2024-05-01")
	assert.Contains(t, msg.HTML, "Ada &lt;Lovelace&gt;")
	assert.Contains(t, msg.HTML, `href="https://blog.example.com"`)
}

func TestRenderWelcomeDefaults(t *testing.T) {
	msg, err := RenderWelcome(WelcomeJob{Name: "Ada", Username: "ada", Email: "ada@example.com"}, "", "")
	require.NoError(t, err)

	assert.Equal(t, "Welcome to the blog, Ada", msg.Subject)
	assert.NotContains(t, msg.HTML, "href=")
}
