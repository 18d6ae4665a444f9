package mail

import (
	"bytes"
	"html/template"
)

var notificationTmpl = template.Must(template.New("notification").Parse(`
<p>Hello {{.Name}},</p>
<p><strong>{{.Title}}</strong></p>
<p>{{.Body}}</p>
{{if .ActionURL}}<p><a href="{{.ActionURL}}">Open in the app</a></p>{{end}}
<p>Best regards,<br>The Daycare Team</p>
`))

type NotificationData struct {
	Name      string
	Title     string
	Body      string
	ActionURL string
}

func RenderNotification(d NotificationData) (string, error) {
	var buf bytes.Buffer
	if err := notificationTmpl.Execute(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}
