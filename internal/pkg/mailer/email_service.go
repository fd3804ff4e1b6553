package mailer

import (
	"fmt"
	"html"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendSubmissionNotice(toEmail, formTitle, summaryText string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

// SendSubmissionNotice mails the form owner the plain-text summary of a
// finished session.
func (s *emailService) SendSubmissionNotice(toEmail, formTitle, summaryText string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("New submission: %s", formTitle))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>%s</h2>
			<p>A new submission just came in:</p>
			<pre style="background: #f5f5f5; padding: 15px; border-radius: 5px;">%s</pre>
		</div>
	`, html.EscapeString(formTitle), html.EscapeString(summaryText))

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send submission notice to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Submission notice sent to %s\n", toEmail)
	return nil
}
