package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/conterGui/Aconchego-Pap/internal/models"

	"github.com/rs/zerolog/log"
	"github.com/wneessen/go-mail"
)

// NotificationService tells customers about their orders.
type NotificationService interface {
	SendOrderConfirmation(ctx context.Context, order *models.Order) error
}

// MailSender is the part of *mail.Client used to deliver messages.
type MailSender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Georgia, serif; color: #3e2723;">
  <h2>Olá {{.CustomerName}},</h2>
  <p>Obrigado pela sua encomenda! Aqui estão os detalhes:</p>
  <ul>
  {{- range .Items}}
    <li>{{.ProductName}} x {{.Quantity}} &mdash; € {{.LineTotal.StringFixed 2}}</li>
  {{- end}}
  </ul>
  <p><strong>Total: € {{.TotalAmount.StringFixed 2}}</strong></p>
  <h3>Dados de envio</h3>
  <p>
    {{.CustomerName}}<br>
    {{.CustomerEmail}}<br>
    {{.CustomerAddress}}<br>
    {{.CustomerCity}}
  </p>
  <p>Encomenda n.º {{.ID}}</p>
  <p>Obrigado por escolher o Aconchego Coffee Shop!</p>
</body>
</html>`))

// RenderOrderConfirmation builds the HTML body of the confirmation email.
func RenderOrderConfirmation(order *models.Order) (string, error) {
	var buf bytes.Buffer
	if err := confirmationTemplate.Execute(&buf, order); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type smtpNotificationService struct {
	sender MailSender
	from   string
}

func NewSMTPClient(host string, port int, username, password string) (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(username),
			mail.WithPassword(password),
		)
	}
	return mail.NewClient(host, opts...)
}

func NewSMTPNotificationService(sender MailSender, from string) NotificationService {
	return &smtpNotificationService{sender: sender, from: from}
}

func (s *smtpNotificationService) SendOrderConfirmation(ctx context.Context, order *models.Order) error {
	body, err := RenderOrderConfirmation(order)
	if err != nil {
		return fmt.Errorf("failed to render confirmation: %w", err)
	}

	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(order.CustomerEmail); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject("Confirmação da sua encomenda - Aconchego Coffee Shop")
	msg.SetBodyString(mail.TypeTextHTML, body)

	if err := s.sender.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send confirmation: %w", err)
	}
	return nil
}

type logNotificationService struct{}

// NewLogNotificationService only logs; it is used when SMTP is not configured.
func NewLogNotificationService() NotificationService { return logNotificationService{} }

func (logNotificationService) SendOrderConfirmation(ctx context.Context, order *models.Order) error {
	log.Info().Str("order_id", order.ID.String()).Str("email", order.CustomerEmail).Msg("SMTP not configured, confirmation email skipped")
	return nil
}
