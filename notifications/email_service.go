package notifications

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/anjiri1684/certificate_validation/models"
	"github.com/anjiri1684/certificate_validation/services"
	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

const brevoEndpoint = "https://api.brevo.com/v3/smtp/email"

var issuedTemplate = template.Must(template.New("issued").Parse(
	`<h1>Congratulations, {{.Name}}!</h1>` +
		`<p>Your certificate for <strong>{{.Course}}</strong> was issued on {{.IssueDate}}.</p>` +
		`<p>Anyone can confirm it with the verification code <strong>{{.Code}}</strong>.</p>` +
		`{{if .DocumentURL}}<p><a href="{{.DocumentURL}}">Download your certificate</a></p>{{end}}`,
))

type BrevoService struct {
	APIKey      string
	SenderEmail string
	SenderName  string
	Endpoint    string

	client *http.Client
	logger *zap.Logger
}

var _ services.Notifier = (*BrevoService)(nil)

type brevoPayload struct {
	Sender      map[string]string   `json:"sender"`
	To          []map[string]string `json:"to"`
	Subject     string              `json:"subject"`
	HTMLContent string              `json:"htmlContent"`
}

func NewBrevoService(apiKey, senderEmail, senderName string, logger *zap.Logger) *BrevoService {
	return &BrevoService{
		APIKey:      apiKey,
		SenderEmail: senderEmail,
		SenderName:  senderName,
		Endpoint:    brevoEndpoint,
		client:      &http.Client{Timeout: 10 * time.Second},
		logger:      logger.Named("email"),
	}
}

func (s *BrevoService) NotifyIssued(ctx context.Context, cert *models.Certificate) error {
	if cert.Student.Email == nil {
		return fmt.Errorf("student %s has no email", cert.Student.StudentID)
	}

	view := struct {
		Name, Course, IssueDate, Code, DocumentURL string
	}{
		Name:      cert.Student.FullName(),
		Course:    cert.Course.Name,
		IssueDate: services.ISODate(cert.IssueDate),
		Code:      cert.UniqueCode,
	}
	if cert.DocumentURL != nil {
		view.DocumentURL = *cert.DocumentURL
	}

	var html bytes.Buffer
	if err := issuedTemplate.Execute(&html, view); err != nil {
		return err
	}

	subject := fmt.Sprintf("Your %s certificate", cert.Course.Name)
	return s.send(ctx, *cert.Student.Email, cert.Student.FullName(), subject, html.String())
}

func (s *BrevoService) send(ctx context.Context, toEmail, toName, subject, htmlContent string) error {
	if toEmail == "" || !strings.Contains(toEmail, "@") {
		return fmt.Errorf("invalid recipient email: %s", toEmail)
	}

	recipientName := toName
	if strings.TrimSpace(recipientName) == "" {
		recipientName = toEmail[:strings.Index(toEmail, "@")]
	}

	payload := brevoPayload{
		Sender:      map[string]string{"name": s.SenderName, "email": s.SenderEmail},
		To:          []map[string]string{{"email": toEmail, "name": recipientName}},
		Subject:     subject,
		HTMLContent: htmlContent,
	}

	body, err := sonic.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("api-key", s.APIKey)
	req.Header.Set("content-type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("brevo returned %d: %s", resp.StatusCode, string(bodyBytes))
	}

	s.logger.Info("✅ Email sent", zap.String("to", toEmail), zap.String("subject", subject))
	return nil
}
