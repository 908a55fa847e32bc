package adminapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/glamease/glamease/internal/domain"
	"github.com/glamease/glamease/internal/webserver"
	"github.com/glamease/glamease/pkg/common"
)

type servicePayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	PriceMin    int64  `json:"price_min"`
	PriceMax    int64  `json:"price_max"`
	Duration    int    `json:"duration"`
	ImageUrl    string `json:"image_url"`
	IsActive    *bool  `json:"is_active"`
}

var serviceSortColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"category":   "category",
	"price_min":  "price_min",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

func registerServiceRoutes() {
	// storefront catalog
	webserver.PubGET("/services", listPublicServices)

	// admin CRUD
	webserver.ApiGET("/services", listServices, requireAdmin)
	webserver.ApiGET("/services/:id", getService, requireAdmin)
	webserver.ApiPOST("/services", createService, requireAdmin)
	webserver.ApiPUT("/services/:id", updateService, requireAdmin)
	webserver.ApiDELETE("/services/:id", deleteService, requireAdmin)
}

// listPublicServices returns the active catalog grouped for the
// storefront, optionally filtered by category.
func listPublicServices(c echo.Context) error {
	db := GetDB(c).Model(&domain.SalonService{}).Where("is_active = ?", true)
	if cat := strings.TrimSpace(c.QueryParam("category")); cat != "" {
		db = db.Where("category = ?", cat)
	}
	var rows []domain.SalonService
	if err := db.Order("category, name").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query services", err.Error())
	}
	return ok(c, rows)
}

func listServices(c echo.Context) error {
	page, pageSize := parsePagination(c)

	db := GetDB(c).Model(&domain.SalonService{})
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		db = db.Where("name ILIKE ?", "%"+q+"%")
	}
	if cat := strings.TrimSpace(c.QueryParam("category")); cat != "" {
		db = db.Where("category = ?", cat)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query services", err.Error())
	}

	var rows []domain.SalonService
	if err := db.Order(parseSort(c, serviceSortColumns, "id")).
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query services", err.Error())
	}

	return paged(c, rows, total, page, pageSize)
}

func getService(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid service ID", nil)
	}
	var svc domain.SalonService
	if err := GetDB(c).Where("id = ?", id).First(&svc).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Service not found", nil)
	}
	return ok(c, svc)
}

func validateServicePayload(payload *servicePayload) string {
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return "Name is required"
	}
	switch payload.Category {
	case domain.CategoryWomen, domain.CategoryKids, domain.CategoryHome, domain.CategoryProducts:
	default:
		return "Category must be one of women, kids, home, products"
	}
	if payload.PriceMin < 0 || payload.PriceMax < 0 {
		return "Prices must not be negative"
	}
	if payload.PriceMax > 0 && payload.PriceMax < payload.PriceMin {
		return "price_max must be >= price_min"
	}
	return ""
}

func createService(c echo.Context) error {
	var payload servicePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse service", err.Error())
	}
	if msg := validateServicePayload(&payload); msg != "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", msg, nil)
	}

	active := true
	if payload.IsActive != nil {
		active = *payload.IsActive
	}

	now := time.Now()
	svc := domain.SalonService{
		ID:          common.UUIDint64(),
		Name:        payload.Name,
		Description: strings.TrimSpace(payload.Description),
		Category:    payload.Category,
		PriceMin:    payload.PriceMin,
		PriceMax:    payload.PriceMax,
		Duration:    payload.Duration,
		ImageUrl:    strings.TrimSpace(payload.ImageUrl),
		IsActive:    active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := GetDB(c).Create(&svc).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create service", err.Error())
	}

	logOperation(c, "service.create", svc.Name)
	return ok(c, svc)
}

func updateService(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid service ID", nil)
	}
	var svc domain.SalonService
	if err := GetDB(c).Where("id = ?", id).First(&svc).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Service not found", nil)
	}

	var payload servicePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse service", err.Error())
	}
	if msg := validateServicePayload(&payload); msg != "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", msg, nil)
	}

	svc.Name = payload.Name
	svc.Description = strings.TrimSpace(payload.Description)
	svc.Category = payload.Category
	svc.PriceMin = payload.PriceMin
	svc.PriceMax = payload.PriceMax
	svc.Duration = payload.Duration
	svc.ImageUrl = strings.TrimSpace(payload.ImageUrl)
	if payload.IsActive != nil {
		svc.IsActive = *payload.IsActive
	}
	svc.UpdatedAt = time.Now()

	if err := GetDB(c).Save(&svc).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update service", err.Error())
	}

	logOperation(c, "service.update", svc.Name)
	return ok(c, svc)
}

func deleteService(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid service ID", nil)
	}
	if err := GetDB(c).Where("id = ?", id).Delete(&domain.SalonService{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete service", err.Error())
	}

	logOperation(c, "service.delete", strconv.FormatInt(id, 10))
	return ok(c, map[string]interface{}{"id": id})
}
