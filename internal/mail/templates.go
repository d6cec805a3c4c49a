package mail

import (
	"bytes"
	"fmt"
	"text/template"
	"time"
)

// MagicLinkData fills the magic link and invitation templates.
type MagicLinkData struct {
	Name         string
	Link         string
	Code         string
	ExpiresIn    time.Duration
	BusinessName string
}

var funcs = template.FuncMap{"minutes": minutes}

var (
	magicLinkTmpl = template.Must(template.New("magic_link").Funcs(funcs).Parse(
		`Hi {{if .Name}}{{.Name}}{{else}}there{{end}},

Use the link below to sign in to StallHub:

{{.Link}}

Or enter this code: {{.Code}}

The link and code expire in {{minutes .ExpiresIn}} minutes and can only be used once.
If you did not ask to sign in, you can ignore this email.
`))

	inviteTmpl = template.Must(template.New("invite").Funcs(funcs).Parse(
		`Hi {{if .Name}}{{.Name}}{{else}}there{{end}},

You have been added to {{if .BusinessName}}{{.BusinessName}}{{else}}StallHub{{end}}.
Open the link below to set up your account:

{{.Link}}

Or enter this code: {{.Code}}

The link expires in {{minutes .ExpiresIn}} minutes.
`))
)

func minutes(d time.Duration) int {
	return int(d.Round(time.Minute) / time.Minute)
}

// MagicLinkMessage renders the sign-in email.
func MagicLinkMessage(to string, data MagicLinkData) (Message, error) {
	return render(magicLinkTmpl, to, "Your StallHub sign-in link", data)
}

// InviteMessage renders the account setup email sent to invited staff.
func InviteMessage(to string, data MagicLinkData) (Message, error) {
	subject := "You're invited to StallHub"
	if data.BusinessName != "" {
		subject = fmt.Sprintf("You're invited to %s on StallHub", data.BusinessName)
	}
	return render(inviteTmpl, to, subject, data)
}

func render(t *template.Template, to, subject string, data MagicLinkData) (Message, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return Message{}, fmt.Errorf("render %s: %w", t.Name(), err)
	}
	return Message{To: to, Subject: subject, Text: buf.String()}, nil
}
