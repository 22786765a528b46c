package notifier

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"os"
	"time"

	gomail "gopkg.in/mail.v2"

	"reel-keeper/storage"
)

// EmailNotifier handles sending email notifications
type EmailNotifier struct {
	smtpHost       string
	smtpPort       int
	senderEmail    string
	senderPass     string
	recipientEmail string
	htmlTemplate   *template.Template
}

// EmailConfig contains configuration for email notifications
type EmailConfig struct {
	SMTPHost       string
	SMTPPort       int
	SenderEmail    string
	SenderPassword string
	RecipientEmail string
}

// NewEmailNotifier creates a new email notifier
func NewEmailNotifier(config EmailConfig) (*EmailNotifier, error) {
	// Initialize HTML template for emails
	tmpl, err := template.New("email").Parse(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Reel Keeper - Suggested Deletions</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 800px; margin: 0 auto; }
        h1 { color: #e50914; }
        table { width: 100%; border-collapse: collapse; margin-bottom: 20px; }
        th { background-color: #f4f4f4; text-align: left; padding: 10px; }
        td { padding: 10px; border-bottom: 1px solid #ddd; }
        .candidate { background-color: #fff3e0; }
        .footer { font-size: 12px; color: #666; margin-top: 50px; text-align: center; }
        .count { font-weight: bold; color: #e50914; }
    </style>
</head>
<body>
    <h1>Reel Keeper - Suggested Deletions</h1>
    <p>As of {{.Date}}, the following movies have a rating below 6 and haven't been opened for 2 years.</p>

    <p>Candidates: <span class="count">{{.TotalCount}}</span></p>

    <table>
        <tr>
            <th>Title</th>
            <th>Personal Rating</th>
            <th>Last Viewed</th>
        </tr>
        {{range .Candidates}}
        <tr class="candidate">
            <td>{{.Title}}</td>
            <td>{{.PersonalRating}}/10</td>
            <td>{{if .LastView}}{{.LastView}}{{else}}never{{end}}</td>
        </tr>
        {{end}}
    </table>

    <p>Please consider deleting them. Nothing has been removed automatically.</p>

    <div class="footer">
        <p>This is an automated email from Reel Keeper. Please do not reply.</p>
    </div>
</body>
</html>
`)
	if err != nil {
		return nil, fmt.Errorf("failed to parse email template: %v", err)
	}

	return &EmailNotifier{
		smtpHost:       config.SMTPHost,
		smtpPort:       config.SMTPPort,
		senderEmail:    config.SenderEmail,
		senderPass:     config.SenderPassword,
		recipientEmail: config.RecipientEmail,
		htmlTemplate:   tmpl,
	}, nil
}

// GetEmailConfigFromEnv loads email configuration from environment variables
func GetEmailConfigFromEnv() EmailConfig {
	// Parse SMTP port with default value of 587 if not specified or invalid
	smtpPort := 587
	if portStr := os.Getenv("EMAIL_SMTP_PORT"); portStr != "" {
		if p, err := fmt.Sscanf(portStr, "%d", &smtpPort); err != nil || p != 1 {
			log.Printf("Invalid SMTP port '%s', using default 587", portStr)
			smtpPort = 587
		}
	}

	return EmailConfig{
		SMTPHost:       os.Getenv("EMAIL_SMTP_HOST"),
		SMTPPort:       smtpPort,
		SenderEmail:    os.Getenv("EMAIL_SENDER"),
		SenderPassword: os.Getenv("EMAIL_PASSWORD"),
		RecipientEmail: os.Getenv("EMAIL_RECIPIENT"),
	}
}

// NotifySuggestedDeletions sends an email listing the stale deletion
// candidates found by the catalog sweep.
func (n *EmailNotifier) NotifySuggestedDeletions(candidates []storage.Movie) error {
	if len(candidates) == 0 {
		log.Println("No deletion candidates to notify about")
		return nil
	}

	if n.recipientEmail == "" {
		log.Println("No recipient email configured, skipping notification")
		return nil
	}

	// Prepare template data
	data := struct {
		Date       string
		TotalCount int
		Candidates []storage.Movie
	}{
		Date:       time.Now().Format("January 2, 2006 at 3:04 PM"),
		TotalCount: len(candidates),
		Candidates: candidates,
	}

	// Render email template
	var emailBody bytes.Buffer
	if err := n.htmlTemplate.Execute(&emailBody, data); err != nil {
		return fmt.Errorf("failed to render email template: %v", err)
	}

	// Create a new message using gomail
	m := gomail.NewMessage()

	// Set email headers
	m.SetHeader("From", n.senderEmail)
	m.SetHeader("To", n.recipientEmail)
	m.SetHeader("Subject", fmt.Sprintf("Reel Keeper: %d movies suggested for deletion", len(candidates)))

	// Set both plain text and HTML versions
	plainText := "The following movies have a rating below 6 and haven't been opened for 2 years:\n"
	for _, movie := range candidates {
		plainText += "- " + movie.Title + "\n"
	}
	plainText += "\nPlease consider deleting them.\n\n" +
		"This is an automated email from Reel Keeper. Please do not reply."

	m.SetBody("text/plain", plainText)
	m.AddAlternative("text/html", emailBody.String())

	d := gomail.NewDialer(n.smtpHost, n.smtpPort, "api", n.senderPass)

	// Send the email
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	log.Printf("Deletion suggestion email sent to %s with %d candidates",
		n.recipientEmail, len(candidates))
	return nil
}
