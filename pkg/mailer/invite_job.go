package mailer

// InviteJob is the JSON payload put on the RabbitMQ queue when a user is
// added to a board. The worker renders and sends the invitation email.
type InviteJob struct {
	To        string `json:"to"`
	Name      string `json:"name"`
	BoardID   string `json:"boardId"`
	BoardName string `json:"boardName"`
}
