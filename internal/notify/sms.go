package notify

import (
	"fmt"
	"time"

	"github.com/guonaihong/gout"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/glamease/glamease/config"
	"github.com/glamease/glamease/internal/domain"
)

// SmsSender posts messages to an MSG91 style HTTP gateway.
type SmsSender struct {
	cfg config.SmsConfig
}

func NewSmsSender(cfg config.SmsConfig) *SmsSender {
	return &SmsSender{cfg: cfg}
}

type smsGatewayResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Send posts one SMS. Disabled configuration is a silent no-op.
func (s *SmsSender) Send(to, text string) error {
	if !s.cfg.Enabled {
		zap.L().Debug("sms disabled, dropping message", zap.String("to", to))
		return nil
	}
	var resp smsGatewayResponse
	err := gout.POST(s.cfg.Gateway).
		SetTimeout(10 * time.Second).
		SetHeader(gout.H{"authkey": s.cfg.AuthKey}).
		SetJSON(gout.H{
			"sender":  s.cfg.Sender,
			"mobiles": to,
			"message": text,
		}).
		BindJSON(&resp).
		Do()
	if err != nil {
		return errors.Wrap(err, "sms gateway request")
	}
	if resp.Type != "" && resp.Type != "success" {
		return errors.Errorf("sms gateway rejected message: %s", resp.Message)
	}
	return nil
}

// SendBookingConfirmation texts the customer a short booking summary.
func (s *SmsSender) SendBookingConfirmation(b domain.Booking, phone, services string) error {
	if phone == "" {
		return nil
	}
	text := fmt.Sprintf("GlamEase: booking #%d confirmed for %s. Services: %s. Amount %s.",
		b.ID, formatAppointment(b.AppointmentAt), services, FormatAmount(b.TotalAmount))
	return s.Send(phone, text)
}

// SendAppointmentReminder texts the customer ahead of the visit.
func (s *SmsSender) SendAppointmentReminder(b domain.Booking, phone string) error {
	if phone == "" {
		return nil
	}
	text := fmt.Sprintf("GlamEase reminder: your appointment is %s. Reply to reschedule.",
		formatAppointment(b.AppointmentAt))
	return s.Send(phone, text)
}
