// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/sirupsen/logrus"

	"github.com/asterohype/backend/internal/config"
	"github.com/asterohype/backend/internal/models"
)

// NotificationService delivers transactional email over SMTP. With no
// SMTP host configured the messages are logged instead of sent, which
// keeps local development working without a mail relay.
type NotificationService struct {
	config *config.Config
}

type EmailTemplate struct {
	Subject string
	Body    string
}

func NewNotificationService(config *config.Config) *NotificationService {
	return &NotificationService{config: config}
}

// SendAdminAccessRequestEmail notifies the approver about a new
// request. The approve/reject URLs carry their own signatures; the
// email body never includes the raw secret.
func (s *NotificationService) SendAdminAccessRequestEmail(user *models.User, request *models.AdminRequest, approveURL, rejectURL string) error {
	if s.config.AdminAccess.ApproverEmail == "" {
		return fmt.Errorf("approver email is not configured")
	}

	tmpl := s.getEmailTemplate("admin_access_request")

	data := map[string]interface{}{
		"Username":   user.Username,
		"Email":      user.Email,
		"MaskedIP":   request.MaskedIP,
		"DeviceInfo": request.DeviceInfo,
		"ApproveURL": approveURL,
		"RejectURL":  rejectURL,
		"ExpiresIn":  fmt.Sprintf("%d hours", s.config.AdminAccess.LinkTTLHours),
	}

	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(s.config.AdminAccess.ApproverEmail, tmpl.Subject, body)
}

// SendAccessDecisionEmail tells the applicant how their request was
// decided.
func (s *NotificationService) SendAccessDecisionEmail(user *models.User, approved bool) error {
	templateName := "admin_access_rejected"
	if approved {
		templateName = "admin_access_approved"
	}
	tmpl := s.getEmailTemplate(templateName)

	data := map[string]interface{}{
		"Username": user.Username,
		"LoginURL": fmt.Sprintf("%s/login", s.config.Frontend.BaseURL),
	}

	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(user.Email, tmpl.Subject, body)
}

// SendBackInStock satisfies StockNotifier.
func (s *NotificationService) SendBackInStock(to, productTitle, productID string) error {
	tmpl := s.getEmailTemplate("back_in_stock")

	if productTitle == "" {
		productTitle = "A product you were watching"
	}

	data := map[string]interface{}{
		"ProductTitle": productTitle,
		"ProductURL":   fmt.Sprintf("%s/products/%s", s.config.Frontend.BaseURL, productID),
	}

	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(to, tmpl.Subject, body)
}

func (s *NotificationService) sendEmail(to, subject, body string) error {
	if !s.config.Email.Enabled || s.config.Email.SMTPHost == "" {
		logrus.WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
		}).Info("email delivery disabled, skipping")
		return nil
	}

	auth := smtp.PlainAuth("", s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)

	msg := []byte(fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.config.Email.FromName, s.config.Email.FromEmail, to, subject, body))

	addr := fmt.Sprintf("%s:%s", s.config.Email.SMTPHost, s.config.Email.SMTPPort)
	return smtp.SendMail(addr, auth, s.config.Email.FromEmail, []string{to}, msg)
}

func (s *NotificationService) renderTemplate(templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *NotificationService) getEmailTemplate(templateType string) EmailTemplate {
	templates := map[string]EmailTemplate{
		"admin_access_request": {
			Subject: "AsteroHype: new admin access request",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Admin access requested</h2>
	<p><strong>{{.Username}}</strong> ({{.Email}}) is requesting admin access.</p>
	<ul>
		<li>IP: {{.MaskedIP}}</li>
		<li>Device: {{.DeviceInfo}}</li>
	</ul>
	<p>
		<a href="{{.ApproveURL}}">Approve</a> &nbsp;|&nbsp;
		<a href="{{.RejectURL}}">Reject</a>
	</p>
	<p>These links expire in {{.ExpiresIn}}.</p>
</body>
</html>`,
		},
		"admin_access_approved": {
			Subject: "Your AsteroHype admin access was approved",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Access granted</h2>
	<p>Hi {{.Username}}, your admin access request was approved.</p>
	<p><a href="{{.LoginURL}}">Sign in</a> to get started.</p>
</body>
</html>`,
		},
		"admin_access_rejected": {
			Subject: "Your AsteroHype admin access request",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Request declined</h2>
	<p>Hi {{.Username}}, your admin access request was not approved.</p>
	<p>If you believe this is a mistake, contact the team.</p>
</body>
</html>`,
		},
		"back_in_stock": {
			Subject: "Back in stock at AsteroHype",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>{{.ProductTitle}} is back!</h2>
	<p>The product you asked about is available again.</p>
	<p><a href="{{.ProductURL}}">Shop now</a></p>
</body>
</html>`,
		},
	}

	if tmpl, exists := templates[templateType]; exists {
		return tmpl
	}

	return EmailTemplate{
		Subject: "AsteroHype notification",
		Body:    `<p>{{.Message}}</p>`,
	}
}
