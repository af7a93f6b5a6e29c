package service

import (
	"fmt"
	"net/smtp"
	"predictions-api/config"
	"predictions-api/logger"
)

// IEmailSender is the outbound email contract. All sends are fire-and-forget:
// a delivery failure is logged, never surfaced to the caller.
type IEmailSender interface {
	SendWelcomeEmail(toEmail, name string)
	SendVerifyOtpEmail(toEmail, name, otp string)
	SendAccountVerifiedEmail(toEmail, name string)
	SendResetPasswordEmail(toEmail, name string)
	SendChangedPasswordEmail(toEmail, name string)
}

// EmailService implements IEmailSender over plain SMTP.
type EmailService struct {
	host     string
	port     string
	from     string
	username string
	password string
}

func NewEmailService() *EmailService {
	cfg := config.AppConfig.SMTP
	return &EmailService{
		host:     cfg.Host,
		port:     cfg.Port,
		from:     cfg.From,
		username: cfg.Username,
		password: cfg.Password,
	}
}

func (s *EmailService) SendWelcomeEmail(toEmail, name string) {
	body := fmt.Sprintf("Hello %s,\n\n"+
		"Welcome to the Predictions League! We know you'll love your time here.\n\n"+
		"Regards,\nThe Predictions Team", name)
	s.send(toEmail, "Welcome to the Predictions League!", body)
}

func (s *EmailService) SendVerifyOtpEmail(toEmail, name, otp string) {
	body := fmt.Sprintf("Hello %s,\n\n"+
		"To log in, verify your account with the following 6-digit code:\n\n"+
		"Code: %s\n\n"+
		"This code expires in 15 minutes.\n\n"+
		"Regards,\nThe Predictions Team", name, otp)
	s.send(toEmail, "Verify your Account", body)
}

func (s *EmailService) SendAccountVerifiedEmail(toEmail, name string) {
	body := fmt.Sprintf("Hello %s,\n\n"+
		"Your account has been verified successfully!\n\n"+
		"Regards,\nThe Predictions Team", name)
	s.send(toEmail, "Account Verified Successfully!", body)
}

func (s *EmailService) SendResetPasswordEmail(toEmail, name string) {
	body := fmt.Sprintf("Hello %s,\n\n"+
		"We've received a request to reset your password.\n\n"+
		"If you didn't request this, you can safely ignore this email.\n\n"+
		"Regards,\nThe Predictions Team", name)
	s.send(toEmail, "Reset your password", body)
}

func (s *EmailService) SendChangedPasswordEmail(toEmail, name string) {
	body := fmt.Sprintf("Hello %s,\n\n"+
		"Your password has just been changed successfully.\n\n"+
		"If you didn't do this yourself, contact support immediately.\n\n"+
		"Regards,\nThe Predictions Team", name)
	s.send(toEmail, "Your password has been changed", body)
}

func (s *EmailService) send(to, subject, body string) {
	go func() {
		msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", s.from, to, subject, body)
		addr := fmt.Sprintf("%s:%s", s.host, s.port)

		var auth smtp.Auth
		if s.username != "" {
			auth = smtp.PlainAuth("", s.username, s.password, s.host)
		}

		if err := smtp.SendMail(addr, auth, s.from, []string{to}, []byte(msg)); err != nil {
			logger.Log.WithError(err).WithField("recipient", to).Error("Failed to send email")
		}
	}()
}
