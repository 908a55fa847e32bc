package notify

import (
	"path/filepath"

	"github.com/asaskevich/EventBus"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/glamease/glamease/internal/domain"
	"github.com/glamease/glamease/internal/sheets"
)

// EventBus topics raised by the booking and contact flows.
const (
	TopicBookingCreated = "booking.created"
	TopicContactCreated = "contact.created"
)

// BookingCreatedEvent carries everything the dispatcher needs so the
// handlers never query back into the request path.
type BookingCreatedEvent struct {
	Booking      domain.Booking
	CustomerName string
	Phone        string
	Email        string
	Services     string
}

// ContactCreatedEvent announces a stored contact message.
type ContactCreatedEvent struct {
	Message domain.ContactMessage
}

// Dispatcher subscribes to the application bus and runs deliveries
// (admin mail, customer mail, SMS, spreadsheet mirror) on a bounded
// worker pool so a slow SMTP relay cannot pile up goroutines.
type Dispatcher struct {
	db      *gorm.DB
	mailer  *Mailer
	sms     *SmsSender
	pool    *ants.Pool
	dataDir string
}

func NewDispatcher(db *gorm.DB, mailer *Mailer, sms *SmsSender, dataDir string, workers int) (*Dispatcher, error) {
	if workers <= 0 {
		workers = 8
	}
	pool, err := ants.NewPool(workers, ants.WithNonblocking(false))
	if err != nil {
		return nil, err
	}
	return &Dispatcher{db: db, mailer: mailer, sms: sms, pool: pool, dataDir: dataDir}, nil
}

// Subscribe registers the dispatcher on the bus.
func (d *Dispatcher) Subscribe(bus EventBus.Bus) error {
	if err := bus.SubscribeAsync(TopicBookingCreated, d.onBookingCreated, false); err != nil {
		return err
	}
	return bus.SubscribeAsync(TopicContactCreated, d.onContactCreated, false)
}

// Release drains the worker pool.
func (d *Dispatcher) Release() {
	d.pool.Release()
}

func (d *Dispatcher) submit(name string, task func()) {
	err := d.pool.Submit(func() {
		defer func() {
			if r := recover(); r != nil {
				zap.L().Error("notification task panicked", zap.String("task", name), zap.Any("cause", r))
			}
		}()
		task()
	})
	if err != nil {
		zap.L().Error("failed to submit notification task", zap.String("task", name), zap.Error(err))
	}
}

func (d *Dispatcher) onBookingCreated(ev BookingCreatedEvent) {
	d.submit("booking.admin_mail", func() {
		if err := d.mailer.SendBookingNotification(ev.Booking, ev.CustomerName, ev.Phone, ev.Services); err != nil {
			zap.L().Warn("booking admin mail failed", zap.Int64("booking_id", ev.Booking.ID), zap.Error(err))
		}
	})
	d.submit("booking.customer_mail", func() {
		if err := d.mailer.SendBookingConfirmation(ev.Booking, ev.CustomerName, ev.Email, ev.Services); err != nil {
			zap.L().Warn("booking confirmation mail failed", zap.Int64("booking_id", ev.Booking.ID), zap.Error(err))
		}
	})
	d.submit("booking.sms", func() {
		if err := d.sms.SendBookingConfirmation(ev.Booking, ev.Phone, ev.Services); err != nil {
			zap.L().Warn("booking sms failed", zap.Int64("booking_id", ev.Booking.ID), zap.Error(err))
		}
	})
	d.submit("booking.sheet", func() {
		d.mirrorBooking(ev)
	})
}

func (d *Dispatcher) onContactCreated(ev ContactCreatedEvent) {
	d.submit("contact.mail", func() {
		err := d.mailer.SendContactNotification(ev.Message)
		if err != nil {
			zap.L().Warn("contact mail failed", zap.Int64("message_id", ev.Message.ID), zap.Error(err))
			return
		}
		d.markContact(ev.Message.ID, "email_sent")
	})
	d.submit("contact.sheet", func() {
		row := sheets.ContactRow{
			Name:            ev.Message.Name,
			Phone:           ev.Message.Phone,
			ServiceInterest: ev.Message.ServiceInterest,
			Address:         ev.Message.Address,
			Message:         ev.Message.Message,
			SubmittedAt:     sheets.FormatLegacyTimestamp(ev.Message.CreatedAt),
		}
		path := filepath.Join(d.dataDir, sheets.ContactSheetFile)
		if err := sheets.AppendContactRow(path, row); err != nil {
			zap.L().Warn("contact sheet mirror failed", zap.Int64("message_id", ev.Message.ID), zap.Error(err))
			return
		}
		d.markContact(ev.Message.ID, "sheet_updated")
	})
}

func (d *Dispatcher) mirrorBooking(ev BookingCreatedEvent) {
	row := sheets.BookingRow{
		BookingID:   sheets.FormatBookingID(ev.Booking.ID),
		Name:        ev.CustomerName,
		Services:    ev.Services,
		TotalAmount: ev.Booking.TotalAmount,
		Status:      domain.NormalizeBookingStatus(ev.Booking.Status),
		Timestamp:   sheets.FormatLegacyTimestamp(ev.Booking.CreatedAt),
		Notes:       ev.Booking.Notes,
	}
	if !ev.Booking.AppointmentAt.IsZero() {
		row.Date = ev.Booking.AppointmentAt.Format("2/1/2006")
		row.Time = ev.Booking.AppointmentAt.Format("3:04 pm")
	}
	path := filepath.Join(d.dataDir, sheets.BookingSheetFile)
	if err := sheets.AppendBookingRow(path, row); err != nil {
		zap.L().Warn("booking sheet mirror failed", zap.Int64("booking_id", ev.Booking.ID), zap.Error(err))
	}
}

func (d *Dispatcher) markContact(id int64, column string) {
	if d.db == nil {
		return
	}
	if err := d.db.Model(&domain.ContactMessage{}).Where("id = ?", id).
		Update(column, true).Error; err != nil {
		zap.L().Warn("failed to update contact delivery flag",
			zap.Int64("message_id", id), zap.String("column", column), zap.Error(err))
	}
}
