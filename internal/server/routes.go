package server

import (
	"net/http"

	"github.com/Zaebanec/NexusGear/internal/config"
	"github.com/Zaebanec/NexusGear/internal/handler"
	"github.com/Zaebanec/NexusGear/internal/middleware"

	"github.com/labstack/echo/v4"
)

// mainで組み立てたhandler一式
type Handlers struct {
	Checkout     *handler.CheckoutHandler
	Auth         *handler.AuthHandler
	Catalog      *handler.CatalogHandler
	Cart         *handler.CartHandler
	Orders       *handler.OrderHandler
	AdminOrders  *handler.AdminOrderHandler
	AdminCatalog *handler.AdminCatalogHandler
}

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, handler.StatusResponse{Status: "ok"})
	})

	h.Checkout.RegisterRoutes(e, cfg)
	h.Auth.RegisterRoutes(e, cfg)
	h.Catalog.RegisterRoutes(e, cfg)
	h.Cart.RegisterRoutes(e, cfg)
	h.Orders.RegisterRoutes(e, cfg)

	//レート制限→HMACの順
	admin := e.Group("/api/v1/admin")
	admin.Use(middleware.AdminRateLimit(cfg.AdminRateLimit))
	admin.Use(middleware.AdminGuard(cfg))
	h.AdminOrders.RegisterRoutes(admin)
	h.AdminCatalog.RegisterRoutes(admin)
}
