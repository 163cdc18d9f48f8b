package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Zaebanec/NexusGear/internal/logging"
	"github.com/Zaebanec/NexusGear/internal/middleware"
	"github.com/Zaebanec/NexusGear/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: ErrorBody{Code: "bad_request", Message: msg}})
}

// usecaseのエラー種別からHTTPステータスを決める
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}

	status := http.StatusInternalServerError
	switch usecase.KindOf(err) {
	case usecase.KindValidation:
		status = http.StatusBadRequest
		// 明細の商品が無いのは404で返す
		if errors.Is(err, usecase.ErrProductNotFound) {
			status = http.StatusNotFound
		}
	case usecase.KindNotFound:
		status = http.StatusNotFound
	case usecase.KindConflict:
		status = http.StatusConflict
	case usecase.KindUnauthorized:
		status = http.StatusUnauthorized
	}

	//500は中身を出さない
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logging.FromCtx(c.Request().Context(), slog.Default()).Error("request failed", "err", err)
		msg = "internal server error, please retry later"
	}
	return c.JSON(status, ErrorResponse{Error: ErrorBody{Code: usecase.CodeOf(err), Message: msg}})
}

func getTelegramIDFromContext(c echo.Context) (int64, bool) {
	id, ok := c.Get(middleware.CtxTelegramIDKey).(int64)
	if !ok || id <= 0 {
		return 0, false
	}
	return id, true
}

func parseID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
