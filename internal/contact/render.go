package contact

import (
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/microcosm-cc/bluemonday"

	"lucavisser.dev/portfolio/internal/prefs"
)

// DeriveSubject picks the explicit subject when present, otherwise a default
// keyed on the view mode only. The operator reads email in one language, so
// the default is deliberately not localized.
func DeriveSubject(s *Submission) string {
	if subj := strings.TrimSpace(s.Subject); subj != "" {
		return subj
	}
	if s.Mode() == prefs.ModeFreelance {
		return fmt.Sprintf("New project inquiry from %s", s.Name)
	}
	return fmt.Sprintf("New contact message from %s", s.Name)
}

// emailData is the shared view model for both email representations.
type emailData struct {
	Name             string
	Email            string
	Company          string
	ProjectType      string
	Budget           string
	Timeline         string
	PreferredContact string
	Message          string
	MessageHTML      htmltemplate.HTML
	ViewMode         string
}

var messagePolicy = bluemonday.StrictPolicy()

const htmlBody = `<!DOCTYPE html>
<html>
<body style="font-family:sans-serif;color:#1a1a1a;max-width:600px;margin:0 auto;padding:24px">
<h2 style="border-bottom:2px solid #2563eb;padding-bottom:8px">New contact form submission</h2>
<table style="width:100%;border-collapse:collapse">
<tr><td style="padding:6px 12px 6px 0;font-weight:bold">Name</td><td>{{.Name}}</td></tr>
<tr><td style="padding:6px 12px 6px 0;font-weight:bold">Email</td><td><a href="mailto:{{.Email}}">{{.Email}}</a></td></tr>
{{if .Company}}<tr><td style="padding:6px 12px 6px 0;font-weight:bold">Company</td><td>{{.Company}}</td></tr>{{end}}
{{if .ProjectType}}<tr><td style="padding:6px 12px 6px 0;font-weight:bold">Project type</td><td>{{.ProjectType}}</td></tr>{{end}}
{{if .Budget}}<tr><td style="padding:6px 12px 6px 0;font-weight:bold">Budget</td><td>{{.Budget}}</td></tr>{{end}}
{{if .Timeline}}<tr><td style="padding:6px 12px 6px 0;font-weight:bold">Timeline</td><td>{{.Timeline}}</td></tr>{{end}}
<tr><td style="padding:6px 12px 6px 0;font-weight:bold">Preferred contact</td><td>{{.PreferredContact}}</td></tr>
</table>
<h3 style="margin-top:24px">Message</h3>
<p style="white-space:normal;line-height:1.6">{{.MessageHTML}}</p>
<p style="margin-top:32px;color:#6b7280;font-size:12px">Sent from the portfolio contact form ({{.ViewMode}} view).</p>
</body>
</html>`

const textBody = `New contact form submission

Name: {{.Name}}
Email: {{.Email}}
{{if .Company}}Company: {{.Company}}
{{end}}{{if .ProjectType}}Project type: {{.ProjectType}}
{{end}}{{if .Budget}}Budget: {{.Budget}}
{{end}}{{if .Timeline}}Timeline: {{.Timeline}}
{{end}}Preferred contact: {{.PreferredContact}}

Message:
{{.Message}}

--
Sent from the portfolio contact form ({{.ViewMode}} view).
`

var (
	htmlTmpl = htmltemplate.Must(htmltemplate.New("email").Parse(htmlBody))
	textTmpl = texttemplate.Must(texttemplate.New("email").Parse(textBody))
)

// Render produces the HTML and plain-text representations of the submission.
func Render(s *Submission) (html string, text string, err error) {
	data := emailData{
		Name:             s.Name,
		Email:            s.Email,
		Company:          s.Company,
		ProjectType:      s.ProjectType,
		Budget:           s.Budget,
		Timeline:         s.Timeline,
		PreferredContact: preferredContactOrDefault(s.PreferredContact),
		Message:          s.Message,
		MessageHTML:      messageAsHTML(s.Message),
		ViewMode:         string(s.Mode()),
	}

	var hb, tb strings.Builder
	if err := htmlTmpl.Execute(&hb, data); err != nil {
		return "", "", err
	}
	if err := textTmpl.Execute(&tb, data); err != nil {
		return "", "", err
	}
	return hb.String(), tb.String(), nil
}

// messageAsHTML strips and escapes any markup in the free-text message, then
// converts line breaks to <br> for the HTML representation. The strict policy
// already entity-escapes its output, so the result is safe to inline.
func messageAsHTML(msg string) htmltemplate.HTML {
	clean := messagePolicy.Sanitize(msg)
	clean = strings.ReplaceAll(clean, "\r\n", "\n")
	return htmltemplate.HTML(strings.ReplaceAll(clean, "\n", "<br>"))
}

func preferredContactOrDefault(v string) string {
	if strings.TrimSpace(v) == "" {
		return "email"
	}
	return v
}
