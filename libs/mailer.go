package libs

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"bayka/models"

	"gopkg.in/gomail.v2"
)

var ErrMailerNotConfigured = errors.New("SMTP configuration missing")

type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

type Mailer struct {
	sender mailSender
	from   string
}

func NewMailer(host string, port int, user, pass, from string) (*Mailer, error) {
	if host == "" || user == "" || pass == "" {
		return nil, ErrMailerNotConfigured
	}
	return &Mailer{sender: gomail.NewDialer(host, port, user, pass), from: from}, nil
}

func (m *Mailer) SendOrderConfirmation(session *models.CheckoutSession) error {
	if session.CustomerEmail == "" {
		return errors.New("no customer email on session")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", session.CustomerEmail)
	msg.SetHeader("Subject", fmt.Sprintf("Order Confirmation #%s - Bayka", shortRef(session)))
	msg.SetBody("text/html", orderConfirmationBody(session))

	if err := m.sender.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func shortRef(session *models.CheckoutSession) string {
	return strings.ToUpper(session.ID.String()[:8])
}

func orderConfirmationBody(session *models.CheckoutSession) string {
	var rows strings.Builder
	for _, it := range session.Items {
		name := it.Name
		if it.Variant != "" {
			name += " (" + it.Variant + ")"
		}
		fmt.Fprintf(&rows, `<tr><td>%s</td><td style="text-align:center;">%d</td><td style="text-align:right;">%s</td></tr>`,
			html.EscapeString(name), it.Quantity, it.LineTotal().StringFixed(2))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px; }
        .logo { font-size: 24px; font-weight: bold; color: #6f4e37; text-align: center; }
        table { width: 100%%; border-collapse: collapse; margin: 20px 0; }
        td { padding: 8px 0; border-bottom: 1px solid #eee; }
        .footer { text-align: center; margin-top: 30px; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="logo">Bayka</div>
        <h2 style="color: #333;">Thanks for your order!</h2>
        <p>Order reference: <strong>%s</strong></p>
        <table>%s</table>
        <p><strong>Total:</strong> %s %s</p>
        <div class="footer">
            <p>This is an automated email. Please do not reply.</p>
        </div>
    </div>
</body>
</html>
`, shortRef(session), rows.String(), html.EscapeString(session.Currency), session.Total.StringFixed(2))
}
