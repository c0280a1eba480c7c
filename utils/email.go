package utils

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/Vikramop/task-mangement-app/models"
)

// Mailer sends best-effort notification mail over SMTP. It satisfies
// services.Notifier.
type Mailer struct {
	Host     string
	Port     string
	From     string
	Password string
}

func NewMailer(host, port, from, password string) *Mailer {
	return &Mailer{Host: host, Port: port, From: from, Password: password}
}

func (m *Mailer) SendEmail(to string, subject string, body string) error {
	auth := smtp.PlainAuth("", m.From, m.Password, m.Host)

	msg := []byte(fmt.Sprintf("Subject: %s\r\n\r\n%s", subject, body))

	return smtp.SendMail(
		m.Host+":"+m.Port,
		auth,
		m.From,
		[]string{to},
		msg,
	)
}

// TaskAssigned notifies a user that work has been assigned to them. A nil
// task means a bulk reassignment.
func (m *Mailer) TaskAssigned(_ context.Context, to string, task *models.Task) error {
	if task == nil {
		return m.SendEmail(to, "Tasks assigned to you",
			"A set of tasks has been assigned to you. Log in to see them.")
	}
	body := fmt.Sprintf("The task %q is now assigned to you. It is due %s.",
		task.Title, task.DueDate.Format("Jan 2, 2006"))
	return m.SendEmail(to, "A task was assigned to you", body)
}
