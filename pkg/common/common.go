package common

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"golang.org/x/crypto/bcrypt"
)

const (
	NA       = "N/A"
	ENABLED  = "enabled"
	DISABLED = "disabled"
)

var snowflakeNode *snowflake.Node

func init() {
	var err error
	snowflakeNode, err = snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
}

// UUIDint64 returns a snowflake derived int64 identifier.
func UUIDint64() int64 {
	return snowflakeNode.Generate().Int64()
}

// UUID returns a snowflake identifier in base36 string form.
func UUID() string {
	return strings.ToLower(snowflakeNode.Generate().Base36())
}

func Sha256Hash(src string) string {
	h := sha256.New()
	h.Write([]byte(src))
	return hex.EncodeToString(h.Sum(nil))
}

func Sha256HashWithSalt(src string, salt string) string {
	return Sha256Hash(src + salt)
}

func GetSecretSalt() string {
	salt := os.Getenv("GLAMEASE_SECRET_SALT")
	if salt == "" {
		salt = "glamease-secret"
	}
	return salt
}

// HashPassword hashes a user password with bcrypt.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword compares a bcrypt hash with a plaintext candidate.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IfEmptyStr returns defval when src is empty.
func IfEmptyStr(src string, defval string) string {
	if strings.TrimSpace(src) == "" {
		return defval
	}
	return src
}

var otpPattern = regexp.MustCompile(`^\d{6}$`)

// GenerateOTP returns a 6 digit one-time password.
func GenerateOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand failure is not recoverable at this level
		panic(err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000)
}

// OTPExpiry returns the expiry instant for a freshly issued OTP.
func OTPExpiry() time.Time {
	return time.Now().Add(10 * time.Minute)
}

func IsOTPExpired(expiry time.Time) bool {
	if expiry.IsZero() {
		return true
	}
	return time.Now().After(expiry)
}

func IsValidOTPFormat(otp string) bool {
	return otpPattern.MatchString(otp)
}

// IsTooManyOTPAttempts guards against OTP brute force.
func IsTooManyOTPAttempts(attempts int) bool {
	return attempts >= 5
}
