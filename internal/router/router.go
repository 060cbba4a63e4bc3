package router

import (
	"net/http"

	"github.com/wb-go/wbf/ginext"
)

type Handler interface {
	CreateBusiness(c *ginext.Context)
	GetBusiness(c *ginext.Context)
	CreateSKU(c *ginext.Context)
	ListSKUs(c *ginext.Context)
	CheckAvailability(c *ginext.Context)
	PlaceHold(c *ginext.Context)
	Promote(c *ginext.Context)
	CancelReservation(c *ginext.Context)
	GetReservation(c *ginext.Context)
}

func InitRouter(mode string, h Handler, mw ...ginext.HandlerFunc) *ginext.Engine {
	router := ginext.New(mode)
	router.Use(mw...)

	api := router.Group("/api")
	{
		// Businesses
		api.POST("/businesses", h.CreateBusiness)
		api.GET("/businesses/:id", h.GetBusiness)
		api.POST("/businesses/:id/skus", h.CreateSKU)
		api.GET("/businesses/:id/skus", h.ListSKUs)

		// Availability (advisory, no locks taken)
		api.GET("/businesses/:id/availability", h.CheckAvailability)

		// Reservations
		api.POST("/businesses/:id/holds", h.PlaceHold)
		api.POST("/reservations/:id/promote", h.Promote)
		api.POST("/reservations/:id/cancel", h.CancelReservation)
		api.GET("/reservations/:id", h.GetReservation)
	}

	router.GET("/health", func(c *ginext.Context) {
		c.JSON(http.StatusOK, ginext.H{"status": "ok"})
	})

	return router
}
