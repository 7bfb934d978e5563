package mailer

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/oksasatya/go-ddd-blog/pkg/mailer/templates"
)

// WelcomeJob is the user.signed_up event body as consumed by the notify
// worker.
type WelcomeJob struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurredAt"`
}

var ErrNoRecipient = errors.New("welcome job has no recipient")

// DecodeWelcomeJob parses an event body and rejects jobs without an email.
func DecodeWelcomeJob(body []byte) (WelcomeJob, error) {
	var job WelcomeJob
	if err := json.Unmarshal(body, &job); err != nil {
		return job, err
	}
	if strings.TrimSpace(job.Email) == "" {
		return job, ErrNoRecipient
	}
	return job, nil
}

// Message is a rendered email ready for delivery.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// RenderWelcome renders the welcome templates for job.
func RenderWelcome(job WelcomeJob, appName, siteURL string) (Message, error) {
	joined := job.OccurredAt
	if joined.IsZero() {
		joined = time.Now()
	}
	subject, text, html, err := templates.Render(templates.Welcome, templates.WelcomeData{
		Name:     job.Name,
		Username: job.Username,
		Email:    job.Email,
		AppName:  appName,
		SiteURL:  siteURL,
		JoinedAt: joined,
	})
	if err != nil {
		return Message{}, err
	}
	return Message{To: job.Email, Subject: subject, Text: text, HTML: html}, nil
}
