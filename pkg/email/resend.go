package email

import (
	"fmt"
	"log"
	"os"

	"github.com/resendlabs/resend-go"
)

type EmailService struct {
	client   *resend.Client
	from     string
	fromName string
	logger   *log.Logger
}

func NewEmailService() *EmailService {
	return &EmailService{
		client:   resend.NewClient(os.Getenv("RESEND_API_KEY")),
		from:     os.Getenv("EMAIL_FROM_ADDRESS"),
		fromName: os.Getenv("EMAIL_FROM_NAME"),
		logger:   log.New(os.Stdout, "EMAIL: ", log.LstdFlags),
	}
}

func (s *EmailService) SendWelcomeEmail(to, firstName string) error {
	s.logger.Printf("Sending welcome email to: %s (%s)", to, firstName)

	html := fmt.Sprintf(`<h2>Welcome to PlanningKart, %s!</h2>
<p>Your account is ready. Browse events or start planning your own.</p>`, firstName)

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{to},
		Subject: "Welcome to PlanningKart!",
		Html:    html,
	}

	if _, err := s.client.Emails.Send(params); err != nil {
		s.logger.Printf("Failed to send welcome email to %s: %v", to, err)
		return err
	}
	return nil
}

func (s *EmailService) SendOrganizerWelcomeEmail(to, firstName, organizationName string) error {
	s.logger.Printf("Sending organizer welcome email to: %s (%s)", to, organizationName)

	html := fmt.Sprintf(`<h2>Welcome to PlanningKart, %s!</h2>
<p>%s is registered as an organizer. Draft your first event from the dashboard
and submit it for review when it is ready.</p>`, firstName, organizationName)

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{to},
		Subject: "Your organizer account is ready",
		Html:    html,
	}

	if _, err := s.client.Emails.Send(params); err != nil {
		s.logger.Printf("Failed to send organizer welcome email to %s: %v", to, err)
		return err
	}
	return nil
}
