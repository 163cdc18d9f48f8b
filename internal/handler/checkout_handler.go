package handler

import (
	"net/http"

	"github.com/Zaebanec/NexusGear/internal/config"
	"github.com/Zaebanec/NexusGear/internal/domain/model"
	"github.com/Zaebanec/NexusGear/internal/usecase"

	"github.com/labstack/echo/v4"
)

// WebAppからの注文作成
type CheckoutHandler struct {
	uc *usecase.OrderUsecase
}

// DI
func NewCheckoutHandler(uc *usecase.OrderUsecase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

type CheckoutUser struct {
	ID int64 `json:"id"`
}

type CheckoutItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

// itemsが無ければカートから作る
type CheckoutRequest struct {
	User     CheckoutUser   `json:"user"`
	Items    []CheckoutItem `json:"items"`
	FullName string         `json:"full_name"`
	Phone    string         `json:"phone"`
	Address  string         `json:"address"`
}

type CheckoutResponse struct {
	Status  string `json:"status"`
	OrderID int64  `json:"order_id"`
}

func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo, _ config.Config) {
	e.POST("/api/create_order", h.createOrder)
}

func (h *CheckoutHandler) createOrder(c echo.Context) error {
	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if req.User.ID <= 0 {
		return badRequest(c, "user.id is required")
	}

	shipping := usecase.ShippingInfo{FullName: req.FullName, Phone: req.Phone, Address: req.Address}
	ctx := c.Request().Context()

	var (
		order model.Order
		err   error
	)
	if req.Items == nil {
		order, err = h.uc.CreateOrder(ctx, req.User.ID, shipping)
	} else {
		items := make([]usecase.ItemInput, 0, len(req.Items))
		for _, it := range req.Items {
			items = append(items, usecase.ItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
		}
		order, err = h.uc.CreateOrderFromItems(ctx, req.User.ID, items, shipping)
	}
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, CheckoutResponse{Status: "ok", OrderID: order.ID})
}
