package service

import (
	"bitwise74/files-api/internal/queue"
	"context"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type mailer interface {
	DialAndSend(m ...*gomail.Message) error
}

// WelcomeSender greets newly registered users. Without a mail host the
// greeting is only logged
type WelcomeSender struct {
	users  UserRepo
	from   string
	mailer mailer
}

func NewWelcomeSender(users UserRepo, mc MailConfig) *WelcomeSender {
	w := &WelcomeSender{users: users, from: mc.From}

	if mc.Host != "" {
		username := mc.Username
		if username == "" {
			username = mc.From
		}

		w.mailer = gomail.NewDialer(mc.Host, mc.Port, username, mc.Password)
	}

	return w
}

func (w *WelcomeSender) Process(ctx context.Context, j queue.WelcomeJob) error {
	user, err := w.users.FindByID(ctx, j.UserID)
	if err != nil {
		return fmt.Errorf("failed to find user %d, %w", j.UserID, err)
	}

	zap.L().Info(fmt.Sprintf("Welcome %s!", user.Email))

	if w.mailer == nil || user.Email == w.from {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", w.from)
	m.SetHeader("To", user.Email)
	m.SetHeader("Subject", "Welcome to files-api")
	m.SetBody("text/plain", fmt.Sprintf("Welcome %s!\n\nYour account is ready to use.", user.Email))

	if err := w.mailer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome mail, %w", err)
	}

	return nil
}
