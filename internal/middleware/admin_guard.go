package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/Zaebanec/NexusGear/internal/config"

	"github.com/labstack/echo/v4"
)

const (
	HeaderAdminUser  = "X-Admin-User"
	HeaderAdminToken = "X-Admin-Token"
)

// 管理APIのガード。X-Admin-Token = hex(HMAC-SHA256(APP_SECRET_TOKEN, X-Admin-User))
func AdminGuard(cfg config.Config) echo.MiddlewareFunc {
	secret := []byte(cfg.SecretToken)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := strings.TrimSpace(c.Request().Header.Get(HeaderAdminUser))
			token := strings.TrimSpace(c.Request().Header.Get(HeaderAdminToken))
			if user == "" || token == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized", "admin credentials required"))
			}

			want := AdminToken(secret, user)
			if !hmac.Equal([]byte(strings.ToLower(token)), []byte(want)) {
				return c.JSON(http.StatusForbidden, errorJSON("forbidden", "invalid admin token"))
			}

			c.Set(CtxAdminUserKey, user)
			return next(c)
		}
	}
}

// 管理者ユーザー名に対するトークン
func AdminToken(secret []byte, user string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(user))
	return hex.EncodeToString(mac.Sum(nil))
}
