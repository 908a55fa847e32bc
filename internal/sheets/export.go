package sheets

import (
	"io"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/glamease/glamease/internal/domain"
)

// bookingExport is the CSV row shape for the admin booking download.
type bookingExport struct {
	BookingID   int64  `csv:"booking_id"`
	Services    string `csv:"services"`
	Appointment string `csv:"appointment_at"`
	Status      string `csv:"status"`
	TotalAmount int64  `csv:"total_amount"`
	Notes       string `csv:"notes"`
	CreatedAt   string `csv:"created_at"`
}

// WriteBookingsCSV streams bookings as CSV. resolve translates a
// booking's service id list into display text; a nil resolver keeps the
// raw id JSON.
func WriteBookingsCSV(w io.Writer, bookings []domain.Booking, resolve func(ids []int64) string) error {
	rows := make([]*bookingExport, 0, len(bookings))
	for i := range bookings {
		b := &bookings[i]
		services := b.ServiceIds
		if resolve != nil {
			if ids := b.ServiceIdList(); len(ids) > 0 {
				services = resolve(ids)
			}
		}
		rows = append(rows, &bookingExport{
			BookingID:   b.ID,
			Services:    services,
			Appointment: formatExportTime(b.AppointmentAt),
			Status:      domain.NormalizeBookingStatus(b.Status),
			TotalAmount: b.TotalAmount,
			Notes:       b.Notes,
			CreatedAt:   formatExportTime(b.CreatedAt),
		})
	}
	return gocsv.Marshal(rows, w)
}

func formatExportTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
