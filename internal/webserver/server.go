// Package webserver hosts the public storefront API and the JWT
// protected admin API on a single echo instance.
package webserver

import (
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/glamease/glamease/internal/app"
	"github.com/glamease/glamease/pkg/metrics"
)

// Context keys shared with the API handler packages.
const (
	AppContextKey = "glamease_app"
	JwtUserKey    = "user"
)

var server *WebServer

type WebServer struct {
	appCtx app.AppContext
	root   *echo.Echo
	pub    *echo.Group
	api    *echo.Group
}

// Init builds the global web server instance around the application
// context. Route registrations (PubGET etc.) must happen after Init.
func Init(appCtx app.AppContext) *WebServer {
	s := &WebServer{appCtx: appCtx}
	s.root = echo.New()
	s.root.HideBanner = true
	s.root.HidePort = true
	s.root.Debug = appCtx.Config().System.Debug
	s.root.JSONSerializer = &JsoniterSerializer{}

	s.root.Use(middleware.Recover())
	s.root.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))
	s.root.Use(session.Middleware(sessions.NewCookieStore([]byte(appCtx.Config().Web.Secret))))
	s.root.Use(s.injectAppContext)
	s.root.Use(requestLogger)
	s.root.Use(countRequests)

	s.pub = s.root.Group("/api")
	s.api = s.root.Group("/api/admin")
	s.api.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(appCtx.Config().Web.Secret),
		ContextKey: JwtUserKey,
	}))

	server = s
	return s
}

// Listen starts serving and blocks until the listener fails.
func Listen() error {
	cfg := server.appCtx.Config().Web
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	zap.S().Infof("web server listening on %s", addr)
	return server.root.Start(addr)
}

// Shutdown closes the underlying listener.
func Shutdown() error {
	return server.root.Close()
}

func (s *WebServer) injectAppContext(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Set(AppContextKey, s.appCtx)
		return next(c)
	}
}

func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)
		status := c.Response().Status
		if he, ok := err.(*echo.HTTPError); ok {
			status = he.Code
		}
		zap.L().Debug("http request",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
			zap.Int("status", status),
			zap.String("remote", c.RealIP()),
		)
		return err
	}
}

func countRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		metrics.IncrCounter("http_requests", 1)
		err := next(c)
		if err != nil || c.Response().Status >= http.StatusBadRequest {
			metrics.IncrCounter("http_request_errors", 1)
		}
		return err
	}
}

// CurrentUserClaims extracts the JWT claims set by the admin group
// middleware. Returns nil on public routes.
func CurrentUserClaims(c echo.Context) jwt.MapClaims {
	token, ok := c.Get(JwtUserKey).(*jwt.Token)
	if !ok || token == nil {
		return nil
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	return claims
}

// Public route helpers

func PubGET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.pub.GET(path, h, m...)
}

func PubPOST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.pub.POST(path, h, m...)
}

// Admin route helpers (JWT protected)

func ApiGET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.GET(path, h, m...)
}

func ApiPOST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.POST(path, h, m...)
}

func ApiPUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.PUT(path, h, m...)
}

func ApiDELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.DELETE(path, h, m...)
}
