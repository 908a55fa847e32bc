// Package adminapi implements the storefront and admin HTTP handlers:
// booking and contact submission, OTP verified signup, catalog CRUD,
// the dashboard analytics endpoint and the assistant chat.
package adminapi

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/glamease/glamease/internal/app"
	"github.com/glamease/glamease/internal/domain"
	"github.com/glamease/glamease/internal/webserver"
	"github.com/glamease/glamease/pkg/common"
)

type apiResponse struct {
	Success bool        `json:"success"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Detail  interface{} `json:"detail,omitempty"`
}

type pagedResponse struct {
	Success  bool        `json:"success"`
	Data     interface{} `json:"data"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(200, apiResponse{Success: true, Data: data})
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, apiResponse{
		Success: false,
		Code:    code,
		Message: message,
		Detail:  detail,
	})
}

func paged(c echo.Context, data interface{}, total int64, page, pageSize int) error {
	return c.JSON(200, pagedResponse{
		Success:  true,
		Data:     data,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// GetApp retrieves the application context injected by the web server.
func GetApp(c echo.Context) app.AppContext {
	return c.Get(webserver.AppContextKey).(app.AppContext)
}

// GetDB retrieves the request scoped database handle.
func GetDB(c echo.Context) *gorm.DB {
	return GetApp(c).DB()
}

// parsePagination reads page/pageSize query params with sane bounds.
func parsePagination(c echo.Context) (page, pageSize int) {
	page = 1
	pageSize = 20
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	if ps, err := strconv.Atoi(c.QueryParam("pageSize")); err == nil && ps > 0 && ps <= 500 {
		pageSize = ps
	}
	return page, pageSize
}

// parseSort validates the requested sort column against a whitelist to
// avoid SQL injection through order-by.
func parseSort(c echo.Context, allowed map[string]string, def string) string {
	col, okc := allowed[c.QueryParam("sort")]
	if !okc || col == "" {
		col = def
	}
	order := c.QueryParam("order")
	if order != "ASC" && order != "asc" {
		order = "DESC"
	}
	return col + " " + order
}

// requireAdmin rejects tokens without the admin role. Applied per
// route so account endpoints like /auth/me stay open to customers.
func requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := webserver.CurrentUserClaims(c)
		if claims == nil {
			return fail(c, 401, "UNAUTHORIZED", "Missing token", nil)
		}
		if role, okc := claims["role"].(string); !okc || role != domain.RoleAdmin {
			return fail(c, 403, "FORBIDDEN", "Admin access required", nil)
		}
		return next(c)
	}
}

// logOperation records an admin action in the operation log.
func logOperation(c echo.Context, action, desc string) {
	oprName := "anonymous"
	if claims := webserver.CurrentUserClaims(c); claims != nil {
		if email, okc := claims["email"].(string); okc {
			oprName = email
		}
	}
	err := GetDB(c).Create(&domain.SysOprLog{
		ID:        common.UUIDint64(),
		OprName:   oprName,
		OprIp:     c.RealIP(),
		OptAction: action,
		OptDesc:   desc,
		OptTime:   time.Now(),
	}).Error
	if err != nil {
		zap.L().Warn("failed to write operation log", zap.String("action", action), zap.Error(err))
	}
}

// Init registers every route on the global web server. Must run after
// webserver.Init.
func Init() {
	registerAuthRoutes()
	registerServiceRoutes()
	registerBookingRoutes()
	registerContactRoutes()
	registerDashboardRoutes()
	registerChatRoutes()
	registerUserRoutes()
	registerMetricsRoutes()
}
