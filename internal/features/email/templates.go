package email

import (
	"bytes"
	"fmt"
	"html/template"
)

type ApplicationDecisionEmail struct {
	ApplicantName   string
	ProjectTitle    string
	RoleTitle       string
	IsAccepted      bool
	RejectionReason string
	ProjectURL      string
	RepositoryURL   string
}

var applicationDecisionTemplate = template.Must(template.New("application_decision").Parse(`
<p>Hi {{.ApplicantName}},</p>
{{if .IsAccepted}}
<p>Your application for <b>{{.RoleTitle}}</b> on <b>{{.ProjectTitle}}</b> was accepted.</p>
{{if .RepositoryURL}}<p>An invitation to <a href="{{.RepositoryURL}}">the repository</a> is waiting for you on GitHub.</p>{{end}}
{{else}}
<p>Your application for <b>{{.RoleTitle}}</b> on <b>{{.ProjectTitle}}</b> was not accepted.</p>
{{if .RejectionReason}}<p>Reason: {{.RejectionReason}}</p>{{end}}
{{end}}
<p><a href="{{.ProjectURL}}">Open the project</a></p>
`))

func RenderApplicationDecision(data ApplicationDecisionEmail) (string, string, error) {
	var body bytes.Buffer
	if err := applicationDecisionTemplate.Execute(&body, data); err != nil {
		return "", "", fmt.Errorf("failed to render e-mail: %w", err)
	}

	subject := fmt.Sprintf("Your application to %s was rejected", data.ProjectTitle)
	if data.IsAccepted {
		subject = fmt.Sprintf("Your application to %s was accepted", data.ProjectTitle)
	}

	return subject, body.String(), nil
}
