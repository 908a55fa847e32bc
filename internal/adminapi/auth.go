package adminapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/glamease/glamease/internal/domain"
	"github.com/glamease/glamease/internal/webserver"
	"github.com/glamease/glamease/pkg/common"
)

const tokenTTL = 24 * time.Hour

type signupPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

type otpPayload struct {
	Email string `json:"email"`
	Otp   string `json:"otp"`
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func registerAuthRoutes() {
	webserver.PubPOST("/auth/signup", signup)
	webserver.PubPOST("/auth/verify-otp", verifyOtp)
	webserver.PubPOST("/auth/resend-otp", resendOtp)
	webserver.PubPOST("/auth/login", login)
	webserver.ApiGET("/auth/me", currentUser)
}

func signup(c echo.Context) error {
	var payload signupPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse signup request", err.Error())
	}
	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))
	if payload.Email == "" || !strings.Contains(payload.Email, "@") {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "A valid email is required", nil)
	}
	if len(payload.Password) < 6 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Password must be at least 6 characters", nil)
	}

	db := GetDB(c)
	var existing domain.SysUser
	err := db.Where("email = ?", payload.Email).First(&existing).Error
	if err == nil && existing.IsVerified {
		return fail(c, http.StatusConflict, "ALREADY_REGISTERED", "An account with this email already exists", nil)
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query account", err.Error())
	}

	hashed, err := common.HashPassword(payload.Password)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process password", nil)
	}

	otp := common.GenerateOTP()
	user := domain.SysUser{
		Email:       payload.Email,
		Password:    hashed,
		Name:        strings.TrimSpace(payload.Name),
		Phone:       strings.TrimSpace(payload.Phone),
		Role:        domain.RoleCustomer,
		Otp:         otp,
		OtpExpiry:   common.OTPExpiry(),
		OtpAttempts: 0,
	}

	if existing.ID != 0 {
		// unverified re-signup replaces the pending account
		user.ID = existing.ID
		if err := db.Model(&domain.SysUser{}).Where("id = ?", existing.ID).Updates(map[string]interface{}{
			"password":     user.Password,
			"name":         user.Name,
			"phone":        user.Phone,
			"otp":          otp,
			"otp_expiry":   user.OtpExpiry,
			"otp_attempts": 0,
			"updated_at":   time.Now(),
		}).Error; err != nil {
			return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to refresh signup", err.Error())
		}
	} else {
		user.ID = common.UUIDint64()
		if err := db.Create(&user).Error; err != nil {
			return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create account", err.Error())
		}
	}

	mailer := GetApp(c).Mailer()
	go func() {
		if err := mailer.SendOTPEmail(user.Email, user.Name, otp); err != nil {
			zap.L().Warn("otp mail failed", zap.String("email", user.Email), zap.Error(err))
		}
	}()

	return ok(c, map[string]interface{}{"email": user.Email, "otp_sent": true})
}

func verifyOtp(c echo.Context) error {
	var payload otpPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse verification request", err.Error())
	}
	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))
	if !common.IsValidOTPFormat(payload.Otp) {
		return fail(c, http.StatusBadRequest, "INVALID_OTP", "Verification code must be 6 digits", nil)
	}

	db := GetDB(c)
	var user domain.SysUser
	if err := db.Where("email = ?", payload.Email).First(&user).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "No pending signup for this email", nil)
	}
	if user.IsVerified {
		return ok(c, map[string]interface{}{"verified": true})
	}
	if common.IsTooManyOTPAttempts(user.OtpAttempts) {
		return fail(c, http.StatusTooManyRequests, "TOO_MANY_ATTEMPTS", "Too many attempts, request a new code", nil)
	}
	if common.IsOTPExpired(user.OtpExpiry) {
		return fail(c, http.StatusBadRequest, "OTP_EXPIRED", "Verification code expired, request a new one", nil)
	}
	if user.Otp != payload.Otp {
		db.Model(&domain.SysUser{}).Where("id = ?", user.ID).
			Update("otp_attempts", gorm.Expr("otp_attempts + 1"))
		return fail(c, http.StatusBadRequest, "INVALID_OTP", "Incorrect verification code", nil)
	}

	if err := db.Model(&domain.SysUser{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"is_verified":  true,
		"otp":          "",
		"otp_attempts": 0,
		"updated_at":   time.Now(),
	}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to verify account", err.Error())
	}

	return ok(c, map[string]interface{}{"verified": true})
}

func resendOtp(c echo.Context) error {
	var payload otpPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", err.Error())
	}
	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))

	db := GetDB(c)
	var user domain.SysUser
	if err := db.Where("email = ?", payload.Email).First(&user).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "No pending signup for this email", nil)
	}
	if user.IsVerified {
		return fail(c, http.StatusBadRequest, "ALREADY_VERIFIED", "Account is already verified", nil)
	}

	otp := common.GenerateOTP()
	if err := db.Model(&domain.SysUser{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"otp":          otp,
		"otp_expiry":   common.OTPExpiry(),
		"otp_attempts": 0,
		"updated_at":   time.Now(),
	}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to refresh verification code", err.Error())
	}

	mailer := GetApp(c).Mailer()
	go func() {
		if err := mailer.SendOTPEmail(user.Email, user.Name, otp); err != nil {
			zap.L().Warn("otp mail failed", zap.String("email", user.Email), zap.Error(err))
		}
	}()

	return ok(c, map[string]interface{}{"otp_sent": true})
}

func login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse login request", err.Error())
	}
	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))

	db := GetDB(c)
	var user domain.SysUser
	if err := db.Where("email = ?", payload.Email).First(&user).Error; err != nil {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password is incorrect", nil)
	}
	if !user.IsVerified {
		return fail(c, http.StatusForbidden, "NOT_VERIFIED", "Verify your email before logging in", nil)
	}
	if !common.CheckPassword(user.Password, payload.Password) {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password is incorrect", nil)
	}

	claims := jwt.MapClaims{
		"uid":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(GetApp(c).Config().Web.Secret))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to issue token", nil)
	}

	db.Model(&domain.SysUser{}).Where("id = ?", user.ID).Update("last_login", time.Now())

	return ok(c, map[string]interface{}{
		"token": signed,
		"user": map[string]interface{}{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
			"role":  user.Role,
		},
	})
}

func currentUser(c echo.Context) error {
	claims := webserver.CurrentUserClaims(c)
	if claims == nil {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing token", nil)
	}
	email, _ := claims["email"].(string)

	var user domain.SysUser
	if err := GetDB(c).Where("email = ?", email).First(&user).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Account not found", nil)
	}
	return ok(c, user)
}
