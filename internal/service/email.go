package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/gomail.v2"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewEmailService(host string, port int, username, password, from string) EmailService {
	return &emailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *emailService) SendPaymentDueReminder(ctx context.Context, email, name, assetName string, rate decimal.Decimal, dueDate time.Time) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", fmt.Sprintf("Payment due for %s", assetName))

	body := fmt.Sprintf("Hello %s,\n\nA payment of %s for %s is due on %s.\n\nBest regards,\nRentLedger",
		name, rate.StringFixed(2), assetName, dueDate.Format("2006-01-02"))
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send reminder via gomail: %w", err)
	}

	return nil
}
