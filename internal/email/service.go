package email

import (
	"fmt"
	"net/smtp"
)

// Confirmation carries everything the order confirmation email needs.
type Confirmation struct {
	BrandName      string
	OrderID        string
	CustomerName   string
	Items          []Item
	Subtotal       float64
	DeliveryCharge float64
	Total          float64
}

// Item is one order line as rendered in the email.
type Item struct {
	Name      string
	Quantity  int
	UnitPrice float64
}

// Sender delivers order confirmations. Implementations must be safe for
// concurrent use; the order service fires confirmations from goroutines.
type Sender interface {
	SendOrderConfirmation(to string, c Confirmation) error
}

// SMTPService sends confirmations through a plain SMTP relay.
type SMTPService struct {
	host string
	port string
	from string
}

// NewSMTPService creates a new SMTP-backed sender.
func NewSMTPService(host, port, from string) *SMTPService {
	return &SMTPService{
		host: host,
		port: port,
		from: from,
	}
}

// SendOrderConfirmation sends an order confirmation email.
func (s *SMTPService) SendOrderConfirmation(to string, c Confirmation) error {
	shortID := c.OrderID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}
	subject := fmt.Sprintf("%s - order confirmed (#%s)", c.BrandName, shortID)
	body := BuildOrderConfirmationBody(c)
	return s.send(to, subject, body)
}

func (s *SMTPService) send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		s.from, to, subject, body)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	return smtp.SendMail(addr, nil, s.from, []string{to}, []byte(msg))
}
