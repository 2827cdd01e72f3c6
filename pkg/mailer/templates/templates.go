package templates

import (
	"bytes"
	"html/template"
)

var inviteTmpl = template.Must(template.New("invite").Parse(`<!doctype html>
<html>
  <body style="font-family: sans-serif; color: #1a1a1a;">
    <h2>You were added to a board</h2>
    <p>Hi {{.Name}},</p>
    <p>You were added to the board <strong>{{.BoardName}}</strong>.
    Open it to start collaborating.</p>
    <p><a href="{{.BoardURL}}">Open {{.BoardName}}</a></p>
  </body>
</html>`))

type InviteData struct {
	Name      string
	BoardName string
	BoardURL  string
}

// RenderInvite renders the board invitation email body.
func RenderInvite(data InviteData) (string, error) {
	var buf bytes.Buffer
	if err := inviteTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// InviteSubject builds the subject line for an invitation.
func InviteSubject(boardName string) string {
	if boardName == "" {
		boardName = "a board"
	}
	return "You were added to " + boardName
}
