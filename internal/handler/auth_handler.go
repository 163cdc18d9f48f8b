package handler

import (
	"net/http"

	"github.com/Zaebanec/NexusGear/internal/config"
	"github.com/Zaebanec/NexusGear/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	uc *usecase.AuthUsecase
}

func NewAuthHandler(uc *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

type ValidateInitDataRequest struct {
	InitData string `json:"init_data"`
}

type ValidateInitDataResponse struct {
	Status    string `json:"status"`
	UserID    int64  `json:"user_id"`
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo, _ config.Config) {
	e.POST("/api/v1/auth/telegram/validate", h.validate)
}

// TWAのinitDataを検証してアクセストークンを返す
func (h *AuthHandler) validate(c echo.Context) error {
	var req ValidateInitDataRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.ValidateTelegram(c.Request().Context(), req.InitData)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, ValidateInitDataResponse{
		Status:    "ok",
		UserID:    out.TelegramID,
		Token:     out.Token,
		ExpiresIn: out.ExpiresIn,
	})
}
