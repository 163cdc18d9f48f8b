package handler

import (
	"net/http"

	"github.com/Zaebanec/NexusGear/internal/config"
	"github.com/Zaebanec/NexusGear/internal/middleware"
	"github.com/Zaebanec/NexusGear/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/cartのHTTP
type CartHandler struct {
	uc     *usecase.CartUsecase
	orders *usecase.OrderUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase, orders *usecase.OrderUsecase) *CartHandler {
	return &CartHandler{uc: uc, orders: orders}
}

type AddCartRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type CartCheckoutRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/api/cart")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("", h.getCart)
	g.POST("", h.addToCart)
	g.DELETE("", h.clear)
	g.DELETE("/items/:product_id", h.deleteItem)
	g.POST("/checkout", h.checkout)
}

func (h *CartHandler) getCart(c echo.Context) error {
	telegramID, ok := getTelegramIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: ErrorBody{Code: "unauthorized", Message: "unauthorized"}})
	}

	out, err := h.uc.GetCart(c.Request().Context(), telegramID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) addToCart(c echo.Context) error {
	telegramID, ok := getTelegramIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: ErrorBody{Code: "unauthorized", Message: "unauthorized"}})
	}

	var req AddCartRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.AddItem(c.Request().Context(), telegramID, usecase.AddCartInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) clear(c echo.Context) error {
	telegramID, ok := getTelegramIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: ErrorBody{Code: "unauthorized", Message: "unauthorized"}})
	}

	if err := h.uc.Clear(c.Request().Context(), telegramID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHandler) deleteItem(c echo.Context) error {
	telegramID, ok := getTelegramIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: ErrorBody{Code: "unauthorized", Message: "unauthorized"}})
	}

	productID, ok := parseID(c, "product_id")
	if !ok {
		return badRequest(c, "invalid product_id")
	}

	out, err := h.uc.RemoveItem(c.Request().Context(), telegramID, productID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// カートの中身で注文する
func (h *CartHandler) checkout(c echo.Context) error {
	telegramID, ok := getTelegramIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: ErrorBody{Code: "unauthorized", Message: "unauthorized"}})
	}

	var req CartCheckoutRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	order, err := h.orders.CreateOrder(c.Request().Context(), telegramID, usecase.ShippingInfo{
		FullName: req.FullName,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, order)
}
