package wholesale

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/International-Combat-Archery-Alliance/email"
)

//go:embed templates
var templates embed.FS

// SendApplicationReceivedEmail tells an applicant their wholesale
// application is in and awaiting review. toAddress comes from the platform
// customer record; callers skip sending when the session has no email.
func SendApplicationReceivedEmail(ctx context.Context, emailSender email.Sender, fromAddress string, toAddress string, values RegistrationValues) error {
	htmlBody, err := makeEmailBody("templates/application-received.tmpl", values)
	if err != nil {
		return err
	}

	textOnlyBody, err := makeEmailBody("templates/application-received-textonly.tmpl", values)
	if err != nil {
		return err
	}

	return emailSender.SendEmail(ctx, email.Email{
		FromAddress: fromAddress,
		ToAddresses: []string{toAddress},
		Subject:     fmt.Sprintf("Wholesale application received - %s", values.CompanyName),
		HTMLBody:    htmlBody,
		TextBody:    textOnlyBody,
	})
}

func makeEmailBody(templateName string, values RegistrationValues) (string, error) {
	tmpl, err := template.ParseFS(templates, templateName)
	if err != nil {
		return "", fmt.Errorf("failed to parse email template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, map[string]any{
		"Values": values,
	})
	if err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}

	return buf.String(), nil
}
