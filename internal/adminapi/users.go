package adminapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/glamease/glamease/internal/domain"
	"github.com/glamease/glamease/internal/webserver"
)

var userSortColumns = map[string]string{
	"id":         "id",
	"email":      "email",
	"name":       "name",
	"created_at": "created_at",
	"last_login": "last_login",
}

func registerUserRoutes() {
	webserver.ApiGET("/users", listUsers, requireAdmin)
	webserver.ApiGET("/users/:id", getUser, requireAdmin)
	webserver.ApiDELETE("/users/:id", deleteUser, requireAdmin)
}

func listUsers(c echo.Context) error {
	page, pageSize := parsePagination(c)

	db := GetDB(c).Model(&domain.SysUser{})
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		db = db.Where("email ILIKE ? or name ILIKE ?", "%"+q+"%", "%"+q+"%")
	}
	if role := strings.TrimSpace(c.QueryParam("role")); role != "" {
		db = db.Where("role = ?", role)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query users", err.Error())
	}

	var rows []domain.SysUser
	if err := db.Order(parseSort(c, userSortColumns, "created_at")).
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query users", err.Error())
	}

	return paged(c, rows, total, page, pageSize)
}

func getUser(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID", nil)
	}
	var user domain.SysUser
	if err := GetDB(c).Where("id = ?", id).First(&user).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
	}
	return ok(c, user)
}

func deleteUser(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID", nil)
	}

	var user domain.SysUser
	if err := GetDB(c).Where("id = ?", id).First(&user).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
	}
	if user.Role == domain.RoleAdmin {
		return fail(c, http.StatusForbidden, "FORBIDDEN", "Admin accounts cannot be deleted", nil)
	}

	if err := GetDB(c).Delete(&domain.SysUser{}, id).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete user", err.Error())
	}

	logOperation(c, "user.delete", user.Email)
	return ok(c, map[string]interface{}{"id": id})
}
