// Package mailer delivers transactional mail (rating links) over SMTP.
package mailer

import (
	"bytes"
	"errors"
	"html/template"

	"gopkg.in/gomail.v2"
)

// Options is the SMTP sender configuration from SiteConfig.
type Options struct {
	Enable   bool
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

var ErrMailDisabled = errors.New("mail delivery is not configured")

// Mailer sends HTML mail through a configured SMTP relay. Options are read
// through a provider func so admin config edits apply without a restart.
type Mailer struct {
	opts func() Options
}

func New(opts func() Options) *Mailer {
	return &Mailer{opts: opts}
}

// Send delivers a single HTML message.
func (m *Mailer) Send(to, subject, htmlBody string) error {
	opts := m.opts()
	if !opts.Enable || opts.Host == "" || opts.From == "" {
		return ErrMailDisabled
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", opts.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(opts.Host, opts.Port, opts.Username, opts.Password)
	return d.DialAndSend(msg)
}

// RatingLinkData fills the rating-invitation template.
type RatingLinkData struct {
	StudioName   string
	ProjectTitle string
	Link         string
}

var ratingLinkTpl = template.Must(template.New("rating_link").Parse(`<!DOCTYPE html>
<html>
<body style="font-family:sans-serif;background:#f5f5f5;padding:20px">
<div style="max-width:600px;margin:0 auto;background:#fff;border-radius:8px;padding:24px">
  <h2 style="color:#333">{{.StudioName}}</h2>
  <p>Thank you for working with us on <strong>{{.ProjectTitle}}</strong>.</p>
  <p>We would love to hear how it went. The link below opens a short, one-time feedback form:</p>
  <p><a href="{{.Link}}">{{.Link}}</a></p>
</div>
</body>
</html>`))

// RenderRatingLink renders the rating-invitation mail body.
func RenderRatingLink(data RatingLinkData) (string, error) {
	var buf bytes.Buffer
	if err := ratingLinkTpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
