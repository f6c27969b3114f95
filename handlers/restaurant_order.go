package handlers

import (
	"net/http"

	"food-ordering-api/middleware"
	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
)

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// GetMyRestaurantOrders lists orders placed with the caller's restaurant
func (h *Handler) GetMyRestaurantOrders(c *gin.Context) error {
	orders, err := h.orders.GetMyRestaurantOrders(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	c.JSON(http.StatusOK, orders)
	return nil
}

// UpdateOrderStatus sets the status of an order placed with the caller's
// restaurant. Any known status is accepted.
func (h *Handler) UpdateOrderStatus(c *gin.Context) error {
	req := middleware.Body[UpdateOrderStatusRequest](c)
	order, err := h.orders.UpdateOrderStatus(c.Request.Context(), middleware.UserID(c), c.Param("orderId"), req.Status)
	if err != nil {
		return err
	}
	c.JSON(http.StatusOK, order)
	return nil
}
