package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Zaebanec/NexusGear/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	CtxTelegramIDKey = "telegram_id" // int64
	CtxAdminUserKey  = "admin_user"  // string
)

// bearerAuth用のJWT検証ミドルウェア。subはtelegram id
func AuthJWT(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//Authorizationヘッダを取得
			authz := c.Request().Header.Get("Authorization")
			if authz == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized", "missing bearer token"))
			}

			//Bearer形式か確認してtokenを抜く
			parts := strings.SplitN(authz, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized", "missing bearer token"))
			}
			rawToken := strings.TrimSpace(parts[1])
			if rawToken == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized", "missing bearer token"))
			}

			//JWTをパースして検証する（expも見る）
			claims := &jwt.RegisteredClaims{}
			token, err := jwt.ParseWithClaims(rawToken, claims, func(t *jwt.Token) (any, error) {
				return []byte(cfg.JWTSecret), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
			if err != nil || token == nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized", "invalid token"))
			}

			telegramID, err := strconv.ParseInt(claims.Subject, 10, 64)
			if err != nil || telegramID <= 0 {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized", "invalid token"))
			}

			//contextへ保存
			c.Set(CtxTelegramIDKey, telegramID)
			return next(c)
		}
	}
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func errorJSON(code string, msg string) errorResponse {
	return errorResponse{Error: errorBody{Code: code, Message: msg}}
}
