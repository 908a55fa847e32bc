package adminapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/glamease/glamease/internal/domain"
	"github.com/glamease/glamease/internal/notify"
	"github.com/glamease/glamease/internal/sheets"
	"github.com/glamease/glamease/internal/webserver"
	"github.com/glamease/glamease/pkg/common"
	"gorm.io/gorm"
)

type bookingPayload struct {
	Name          string  `json:"name"`
	Phone         string  `json:"phone"`
	Email         string  `json:"email"`
	Address       string  `json:"address"`
	ServiceIds    []int64 `json:"service_ids"`
	AppointmentAt string  `json:"appointment_at"`
	TotalAmount   int64   `json:"total_amount"`
	Notes         string  `json:"notes"`
}

type statusPayload struct {
	Status string `json:"status"`
}

var bookingSortColumns = map[string]string{
	"id":             "id",
	"status":         "status",
	"total_amount":   "total_amount",
	"appointment_at": "appointment_at",
	"created_at":     "created_at",
}

func registerBookingRoutes() {
	webserver.PubPOST("/bookings", createBooking)

	webserver.ApiGET("/bookings", listBookings, requireAdmin)
	webserver.ApiGET("/bookings/:id", getBooking, requireAdmin)
	webserver.ApiPUT("/bookings/:id/status", updateBookingStatus, requireAdmin)
	webserver.ApiDELETE("/bookings/:id", deleteBooking, requireAdmin)
	webserver.ApiGET("/bookings/export", exportBookings, requireAdmin)
}

// createBooking stores the booking, upserts the customer contact and
// raises the booking.created event for notification delivery.
func createBooking(c echo.Context) error {
	var payload bookingPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse booking", err.Error())
	}
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Phone = strings.TrimSpace(payload.Phone)
	if payload.Name == "" || payload.Phone == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name and phone are required", nil)
	}
	if len(payload.ServiceIds) == 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "At least one service is required", nil)
	}

	db := GetDB(c)

	// validate service ids against the active catalog
	var count int64
	if err := db.Model(&domain.SalonService{}).
		Where("id in ? and is_active = ?", payload.ServiceIds, true).
		Count(&count).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to validate services", err.Error())
	}
	if count != int64(len(payload.ServiceIds)) {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "One or more services are unavailable", nil)
	}

	var appointment time.Time
	if strings.TrimSpace(payload.AppointmentAt) != "" {
		t, err := time.ParseInLocation("2006-01-02 15:04", payload.AppointmentAt, time.Local)
		if err != nil {
			t, err = time.Parse(time.RFC3339, payload.AppointmentAt)
		}
		if err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unrecognized appointment time", nil)
		}
		appointment = t
	}

	customer, err := upsertCustomer(db, payload)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to store customer", err.Error())
	}

	now := time.Now()
	booking := domain.Booking{
		ID:            common.UUIDint64(),
		CustomerId:    customer.ID,
		AppointmentAt: appointment,
		Status:        domain.BookingPending,
		TotalAmount:   payload.TotalAmount,
		Notes:         strings.TrimSpace(payload.Notes),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	booking.SetServiceIdList(payload.ServiceIds)

	if err := db.Create(&booking).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create booking", err.Error())
	}

	appCtx := GetApp(c)
	appCtx.Bus().Publish(notify.TopicBookingCreated, notify.BookingCreatedEvent{
		Booking:      booking,
		CustomerName: customer.Name,
		Phone:        customer.Phone,
		Email:        customer.Email,
		Services:     appCtx.Store().ResolveServiceNames(payload.ServiceIds),
	})

	return ok(c, booking)
}

func upsertCustomer(db *gorm.DB, payload bookingPayload) (*domain.Customer, error) {
	var customer domain.Customer
	err := db.Where("phone = ?", payload.Phone).First(&customer).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		customer = domain.Customer{
			ID:        common.UUIDint64(),
			Name:      payload.Name,
			Phone:     payload.Phone,
			Email:     strings.TrimSpace(payload.Email),
			Address:   strings.TrimSpace(payload.Address),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := db.Create(&customer).Error; err != nil {
			return nil, err
		}
		return &customer, nil
	case err != nil:
		return nil, err
	}

	updates := map[string]interface{}{"name": payload.Name, "updated_at": time.Now()}
	if e := strings.TrimSpace(payload.Email); e != "" {
		updates["email"] = e
		customer.Email = e
	}
	if a := strings.TrimSpace(payload.Address); a != "" {
		updates["address"] = a
	}
	if err := db.Model(&domain.Customer{}).Where("id = ?", customer.ID).Updates(updates).Error; err != nil {
		return nil, err
	}
	customer.Name = payload.Name
	return &customer, nil
}

func listBookings(c echo.Context) error {
	page, pageSize := parsePagination(c)

	db := GetDB(c).Model(&domain.Booking{})
	if status := strings.TrimSpace(c.QueryParam("status")); status != "" {
		if !domain.ValidBookingStatus(status) {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unknown booking status", nil)
		}
		db = db.Where("status = ?", status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query bookings", err.Error())
	}

	var rows []domain.Booking
	if err := db.Order(parseSort(c, bookingSortColumns, "created_at")).
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query bookings", err.Error())
	}

	return paged(c, rows, total, page, pageSize)
}

func getBooking(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID", nil)
	}
	var booking domain.Booking
	if err := GetDB(c).Where("id = ?", id).First(&booking).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Booking not found", nil)
	}
	return ok(c, booking)
}

func updateBookingStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID", nil)
	}

	var payload statusPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse status", err.Error())
	}
	if !domain.ValidBookingStatus(payload.Status) {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unknown booking status", nil)
	}

	db := GetDB(c)
	var booking domain.Booking
	if err := db.Where("id = ?", id).First(&booking).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Booking not found", nil)
	}

	if err := db.Model(&domain.Booking{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     payload.Status,
		"updated_at": time.Now(),
	}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update booking", err.Error())
	}
	booking.Status = payload.Status

	// confirmation notification when the admin approves the booking
	if payload.Status == domain.BookingConfirmed {
		appCtx := GetApp(c)
		var customer domain.Customer
		if err := db.First(&customer, booking.CustomerId).Error; err == nil {
			appCtx.Bus().Publish(notify.TopicBookingCreated, notify.BookingCreatedEvent{
				Booking:      booking,
				CustomerName: customer.Name,
				Phone:        customer.Phone,
				Email:        customer.Email,
				Services:     appCtx.Store().ResolveServiceNames(booking.ServiceIdList()),
			})
		}
	}

	logOperation(c, "booking.status", strconv.FormatInt(id, 10)+" -> "+payload.Status)
	return ok(c, booking)
}

func deleteBooking(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID", nil)
	}
	if err := GetDB(c).Where("id = ?", id).Delete(&domain.Booking{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete booking", err.Error())
	}

	logOperation(c, "booking.delete", strconv.FormatInt(id, 10))
	return ok(c, map[string]interface{}{"id": id})
}

// exportBookings streams the full booking list as CSV.
func exportBookings(c echo.Context) error {
	var rows []domain.Booking
	if err := GetDB(c).Order("created_at").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query bookings", err.Error())
	}

	appCtx := GetApp(c)
	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="bookings.csv"`)
	c.Response().WriteHeader(http.StatusOK)

	logOperation(c, "booking.export", strconv.Itoa(len(rows)))
	return sheets.WriteBookingsCSV(c.Response(), rows, appCtx.Store().ResolveServiceNames)
}
