package services

import (
	"fmt"
	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendDailySummary(email string, streak, tasksCompleted int) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendDailySummary(email string, streak, tasksCompleted int) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your daily PACE summary")

	body := fmt.Sprintf(`
		<h2>Your day at a glance</h2>
		<p>Tasks completed today: <strong>%d</strong></p>
		<p>Current streak: <strong>%d day(s)</strong> — keep it going!</p>
		<p>Best regards,<br>The PACE Team</p>
	`, tasksCompleted, streak)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send daily summary email: %w", err)
	}

	return nil
}
