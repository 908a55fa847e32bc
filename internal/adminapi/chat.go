package adminapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	jsoniter "github.com/json-iterator/go"

	"github.com/glamease/glamease/internal/domain"
	"github.com/glamease/glamease/internal/webserver"
	"github.com/glamease/glamease/pkg/common"
)

const chatSessionCookie = "glamease_chat"

type chatPayload struct {
	Message string `json:"message"`
}

func registerChatRoutes() {
	webserver.PubPOST("/chat", chatMessage)
	webserver.PubPOST("/chat/reset", chatReset)
}

// chatSessionID reads (or mints) the visitor's chat session id from the
// cookie session.
func chatSessionID(c echo.Context) (string, error) {
	sess, err := session.Get(chatSessionCookie, c)
	if err != nil {
		return "", err
	}
	if sid, okc := sess.Values["sid"].(string); okc && sid != "" {
		return sid, nil
	}
	sid := common.UUID()
	sess.Values["sid"] = sid
	sess.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
	}
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return "", err
	}
	return sid, nil
}

func chatMessage(c echo.Context) error {
	appCtx := GetApp(c)
	if appCtx.Assistant() == nil || !appCtx.GetSettingsBoolValue("chat", "enabled") {
		return fail(c, http.StatusServiceUnavailable, "CHAT_DISABLED", "Chat is not available right now", nil)
	}

	var payload chatPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse chat message", err.Error())
	}
	payload.Message = strings.TrimSpace(payload.Message)
	if payload.Message == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Message is required", nil)
	}

	sid, err := chatSessionID(c)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to open chat session", nil)
	}

	reply, err := appCtx.Assistant().Chat(c.Request().Context(), sid, payload.Message)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to answer", nil)
	}

	return ok(c, map[string]interface{}{"reply": reply})
}

// chatReset archives the finished conversation and clears the live
// session history.
func chatReset(c echo.Context) error {
	appCtx := GetApp(c)
	if appCtx.Assistant() == nil {
		return ok(c, map[string]interface{}{"reset": true})
	}

	sid, err := chatSessionID(c)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to open chat session", nil)
	}

	archiveConversation(c, sid)

	if err := appCtx.Assistant().Reset(sid); err != nil {
		zap.L().Warn("chat reset failed", zap.String("session", sid), zap.Error(err))
	}
	return ok(c, map[string]interface{}{"reset": true})
}

func archiveConversation(c echo.Context, sid string) {
	appCtx := GetApp(c)
	history, err := appCtx.Assistant().History(sid)
	if err != nil || len(history) == 0 {
		return
	}
	raw, err := jsoniter.MarshalToString(history)
	if err != nil {
		return
	}
	err = GetDB(c).Create(&domain.ChatConversation{
		ID:        common.UUIDint64(),
		SessionId: sid,
		Messages:  raw,
		CreatedAt: time.Now(),
	}).Error
	if err != nil {
		zap.L().Warn("chat archive failed", zap.String("session", sid), zap.Error(err))
	}
}
