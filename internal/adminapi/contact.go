package adminapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/glamease/glamease/internal/domain"
	"github.com/glamease/glamease/internal/notify"
	"github.com/glamease/glamease/internal/webserver"
	"github.com/glamease/glamease/pkg/common"
)

type contactPayload struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	ServiceInterest string `json:"service_interest"`
	Address         string `json:"address"`
	Message         string `json:"message"`
}

func registerContactRoutes() {
	webserver.PubPOST("/contact", submitContact)

	webserver.ApiGET("/contact", listContactMessages, requireAdmin)
	webserver.ApiGET("/contact/:id", getContactMessage, requireAdmin)
}

// submitContact stores the enquiry and raises the contact.created event
// for mail delivery and the spreadsheet mirror.
func submitContact(c echo.Context) error {
	var payload contactPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse message", err.Error())
	}
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Phone = strings.TrimSpace(payload.Phone)
	if payload.Name == "" || payload.Phone == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name and phone are required", nil)
	}

	msg := domain.ContactMessage{
		ID:              common.UUIDint64(),
		Name:            payload.Name,
		Phone:           payload.Phone,
		ServiceInterest: strings.TrimSpace(payload.ServiceInterest),
		Address:         strings.TrimSpace(payload.Address),
		Message:         strings.TrimSpace(payload.Message),
		CreatedAt:       time.Now(),
	}
	if err := GetDB(c).Create(&msg).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to store message", err.Error())
	}

	GetApp(c).Bus().Publish(notify.TopicContactCreated, notify.ContactCreatedEvent{Message: msg})

	return ok(c, map[string]interface{}{"id": msg.ID})
}

func listContactMessages(c echo.Context) error {
	page, pageSize := parsePagination(c)

	db := GetDB(c).Model(&domain.ContactMessage{})
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		db = db.Where("name ILIKE ? or phone ILIKE ?", "%"+q+"%", "%"+q+"%")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query messages", err.Error())
	}

	var rows []domain.ContactMessage
	if err := db.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query messages", err.Error())
	}

	return paged(c, rows, total, page, pageSize)
}

func getContactMessage(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid message ID", nil)
	}
	var msg domain.ContactMessage
	if err := GetDB(c).Where("id = ?", id).First(&msg).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Message not found", nil)
	}
	return ok(c, msg)
}
