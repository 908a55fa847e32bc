package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/glamease/glamease/config"
	"github.com/glamease/glamease/internal/domain"
)

func testMailConfig(enabled bool) config.MailConfig {
	return config.MailConfig{
		Enabled: enabled,
		Host:    "smtp.example.com",
		Port:    587,
		AdminTo: "admin@example.com",
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "₹0", FormatAmount(0))
	assert.Equal(t, "₹1,500", FormatAmount(1500))
	assert.Equal(t, "₹125,000", FormatAmount(125000))
}

func TestRenderBookingNotification(t *testing.T) {
	b := domain.Booking{
		ID:            42,
		TotalAmount:   1500,
		Status:        "",
		AppointmentAt: time.Date(2025, 10, 10, 13, 30, 0, 0, time.Local),
		Notes:         "gate code 1234",
	}

	body := RenderBookingNotification(b, "Priya", "9900112233", "Haircut, Spa")
	assert.Contains(t, body, "Priya")
	assert.Contains(t, body, "9900112233")
	assert.Contains(t, body, "Haircut, Spa")
	assert.Contains(t, body, "₹1,500")
	assert.Contains(t, body, "pending")
	assert.Contains(t, body, "gate code 1234")
	assert.Contains(t, body, "Fri, 10 Oct 2025 at 1:30 pm")
}

func TestRenderBookingConfirmationUnscheduled(t *testing.T) {
	b := domain.Booking{ID: 7, TotalAmount: 900}

	body := RenderBookingConfirmation(b, "Asha", "Threading")
	assert.Contains(t, body, "Asha")
	assert.Contains(t, body, "to be scheduled")
}

func TestRenderOTPEmail(t *testing.T) {
	body := RenderOTPEmail("Priya", "123456")
	assert.Contains(t, body, "123456")
	assert.Contains(t, body, "10 minutes")
}

func TestDisabledMailerIsNoop(t *testing.T) {
	m := NewMailer(testMailConfig(false))
	assert.NoError(t, m.SendOTPEmail("x@example.com", "X", "000000"))
}
