package resend

import (
	"context"
	"fmt"
	"log"

	resend "github.com/resend/resend-go/v2"
)

// Service delivers invitation mail. Delivery is fire and forget from the
// caller's point of view; the invitation record is already committed before
// mail goes out.
type Service struct {
	client  *resend.Client
	hostURL string
}

// NewService creates a new mail service.
func NewService(apiKey, hostURL string) *Service {
	return &Service{
		client:  resend.NewClient(apiKey),
		hostURL: hostURL,
	}
}

func (s *Service) SendInvite(_ context.Context, email, eventName, code string) error {
	body := inviteTemplate(eventName, fmt.Sprintf("%s/join/%s", s.hostURL, code))
	params := &resend.SendEmailRequest{
		From:    "invites@resend.dev",
		To:      []string{email},
		Subject: fmt.Sprintf("You are invited to %s", eventName),
		Html:    body,
	}

	if _, err := s.client.Emails.Send(params); err != nil {
		log.Printf("Failed to send invite mail: %v\n", err)
		return err
	}
	return nil
}

func inviteTemplate(eventName, url string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <style>
        body {
            font-family: Arial, sans-serif;
            background-color: #f4f4f4;
            margin: 0;
            padding: 20px;
        }
        .container {
            background-color: #ffffff;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
            box-shadow: 0 0 10px rgba(0,0,0,0.1);
        }
        .button {
            display: block;
            width: 200px;
            height: 50px;
            margin: 20px auto;
            background-color: #007BFF;
            color: #ffffff;
            font-size: 16px;
            text-align: center;
            line-height: 50px;
            text-decoration: none;
            border-radius: 5px;
        }
    </style>
</head>
<body>
    <div class="container">
        <h2>Hello,</h2>
        <p>You have been invited to join %s. Click the button below to accept:</p>
        <a href="%s" class="button">Join the event</a>
    </div>
</body>
</html>`, eventName, url)
}
