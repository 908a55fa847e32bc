// Package notify delivers booking and contact notifications over email
// and SMS. Deliveries are best effort: failures are logged and never
// block the flow that raised them.
package notify

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/gomail.v2"

	"github.com/glamease/glamease/config"
	"github.com/glamease/glamease/internal/domain"
)

var inr = message.NewPrinter(language.English)

// FormatAmount renders a whole-rupee amount with digit grouping.
func FormatAmount(amount int64) string {
	return inr.Sprintf("₹%d", amount)
}

// Mailer sends transactional mail through the configured SMTP relay.
type Mailer struct {
	cfg    config.MailConfig
	dialer *gomail.Dialer
}

func NewMailer(cfg config.MailConfig) *Mailer {
	return &Mailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (m *Mailer) send(to, subject, htmlBody string) error {
	if !m.cfg.Enabled {
		zap.L().Debug("mailer disabled, dropping message", zap.String("to", to), zap.String("subject", subject))
		return nil
	}
	msg := gomail.NewMessage()
	from := m.cfg.From
	if from == "" {
		from = m.cfg.Username
	}
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)
	return m.dialer.DialAndSend(msg)
}

// SendContactNotification tells the salon admin about a new contact
// form submission.
func (m *Mailer) SendContactNotification(c domain.ContactMessage) error {
	body := RenderContactNotification(c)
	return m.send(m.cfg.AdminTo, fmt.Sprintf("New enquiry from %s", c.Name), body)
}

// SendBookingNotification tells the salon admin about a new booking.
func (m *Mailer) SendBookingNotification(b domain.Booking, customerName, phone, services string) error {
	body := RenderBookingNotification(b, customerName, phone, services)
	return m.send(m.cfg.AdminTo, fmt.Sprintf("New booking #%d", b.ID), body)
}

// SendBookingConfirmation confirms the appointment to the customer.
func (m *Mailer) SendBookingConfirmation(b domain.Booking, customerName, email, services string) error {
	if email == "" {
		return nil
	}
	body := RenderBookingConfirmation(b, customerName, services)
	return m.send(email, "Your GlamEase appointment is booked", body)
}

// SendOTPEmail delivers the signup verification code.
func (m *Mailer) SendOTPEmail(email, name, otp string) error {
	body := RenderOTPEmail(name, otp)
	return m.send(email, "Your GlamEase verification code", body)
}

// SendAppointmentReminder reminds the customer about an upcoming visit.
func (m *Mailer) SendAppointmentReminder(b domain.Booking, customerName, email, services string) error {
	if email == "" {
		return nil
	}
	body := RenderAppointmentReminder(b, customerName, services)
	return m.send(email, "Reminder: your GlamEase appointment", body)
}

// TestConfiguration sends a probe mail to the admin address.
func (m *Mailer) TestConfiguration() error {
	return m.send(m.cfg.AdminTo, "GlamEase mail configuration test",
		"<p>Mail delivery is configured correctly.</p>")
}

func formatAppointment(t time.Time) string {
	if t.IsZero() {
		return "to be scheduled"
	}
	return t.Format("Mon, 2 Jan 2006 at 3:04 pm")
}

// RenderContactNotification builds the admin enquiry mail body.
func RenderContactNotification(c domain.ContactMessage) string {
	var sb strings.Builder
	sb.WriteString("<h2>New Contact Enquiry</h2>")
	sb.WriteString("<table>")
	writeRow(&sb, "Name", c.Name)
	writeRow(&sb, "Phone", c.Phone)
	writeRow(&sb, "Service Interest", c.ServiceInterest)
	writeRow(&sb, "Address", c.Address)
	writeRow(&sb, "Message", c.Message)
	writeRow(&sb, "Submitted", formatAppointment(c.CreatedAt))
	sb.WriteString("</table>")
	return sb.String()
}

// RenderBookingNotification builds the admin booking mail body.
func RenderBookingNotification(b domain.Booking, customerName, phone, services string) string {
	var sb strings.Builder
	sb.WriteString("<h2>New Booking</h2>")
	sb.WriteString("<table>")
	writeRow(&sb, "Booking ID", fmt.Sprintf("%d", b.ID))
	writeRow(&sb, "Customer", customerName)
	writeRow(&sb, "Phone", phone)
	writeRow(&sb, "Services", services)
	writeRow(&sb, "Appointment", formatAppointment(b.AppointmentAt))
	writeRow(&sb, "Amount", FormatAmount(b.TotalAmount))
	writeRow(&sb, "Status", domain.NormalizeBookingStatus(b.Status))
	if b.Notes != "" {
		writeRow(&sb, "Notes", b.Notes)
	}
	sb.WriteString("</table>")
	return sb.String()
}

// RenderBookingConfirmation builds the customer confirmation mail body.
func RenderBookingConfirmation(b domain.Booking, customerName, services string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<h2>Hi %s, your appointment is booked!</h2>", customerName))
	sb.WriteString("<table>")
	writeRow(&sb, "Services", services)
	writeRow(&sb, "Appointment", formatAppointment(b.AppointmentAt))
	writeRow(&sb, "Amount", FormatAmount(b.TotalAmount))
	sb.WriteString("</table>")
	sb.WriteString("<p>Our stylist will arrive at your doorstep at the scheduled time.</p>")
	return sb.String()
}

// RenderOTPEmail builds the signup verification mail body.
func RenderOTPEmail(name, otp string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<h2>Welcome to GlamEase, %s!</h2>", name))
	sb.WriteString(fmt.Sprintf("<p>Your verification code is <b>%s</b>. It expires in 10 minutes.</p>", otp))
	return sb.String()
}

// RenderAppointmentReminder builds the customer reminder mail body.
func RenderAppointmentReminder(b domain.Booking, customerName, services string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<h2>Hi %s, see you soon!</h2>", customerName))
	sb.WriteString(fmt.Sprintf("<p>A reminder for your upcoming appointment: %s, %s.</p>",
		services, formatAppointment(b.AppointmentAt)))
	return sb.String()
}

func writeRow(sb *strings.Builder, label, value string) {
	sb.WriteString(fmt.Sprintf("<tr><td><b>%s</b></td><td>%s</td></tr>", label, value))
}
