package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"reflect"

	"food-ordering-api/apperr"
	"food-ordering-api/middleware"
	"food-ordering-api/models"
	"food-ordering-api/services"

	"github.com/gin-gonic/gin"
)

// maxWebhookSize bounds the payment provider callback body.
const maxWebhookSize = 64 << 10

// Quantity accepts a JSON number or a numeric string.
type Quantity int

func (q *Quantity) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&n); err != nil || n == "" {
		return &json.UnmarshalTypeError{Value: string(b), Type: reflect.TypeOf(0)}
	}
	if i, err := n.Int64(); err == nil {
		*q = Quantity(i)
		return nil
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) {
		return &json.UnmarshalTypeError{Value: string(b), Type: reflect.TypeOf(0)}
	}
	*q = Quantity(f)
	return nil
}

type CartItemRequest struct {
	MenuItemID string   `json:"menuItemId" binding:"required"`
	Name       string   `json:"name"`
	Quantity   Quantity `json:"quantity" binding:"gte=1"`
}

type CheckoutRequest struct {
	RestaurantID    string                 `json:"restaurantId" binding:"required"`
	CartItems       []CartItemRequest      `json:"cartItems" binding:"required,min=1,dive"`
	DeliveryDetails models.DeliveryDetails `json:"deliveryDetails"`
}

// GetMyOrders lists the caller's orders, newest first
func (h *Handler) GetMyOrders(c *gin.Context) error {
	orders, err := h.orders.GetMyOrders(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	c.JSON(http.StatusOK, orders)
	return nil
}

// CreateCheckoutSession starts payment for a cart and returns the
// provider's redirect URL
func (h *Handler) CreateCheckoutSession(c *gin.Context) error {
	req := middleware.Body[CheckoutRequest](c)

	items := make([]services.CartItemInput, 0, len(req.CartItems))
	for _, item := range req.CartItems {
		items = append(items, services.CartItemInput{
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Quantity:   int(item.Quantity),
		})
	}

	url, err := h.orders.CreateCheckoutSession(c.Request.Context(), middleware.UserID(c), services.CheckoutInput{
		RestaurantID:    req.RestaurantID,
		CartItems:       items,
		DeliveryDetails: req.DeliveryDetails,
	})
	if err != nil {
		return err
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
	return nil
}

// StripeWebhook applies a signed payment provider callback. The body must
// reach the verifier byte for byte.
func (h *Handler) StripeWebhook(c *gin.Context) error {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookSize))
	if err != nil {
		return &apperr.Error{Kind: apperr.KindValidation, Message: "Webhook error: unreadable body", Err: err}
	}
	if err := h.orders.HandleWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature")); err != nil {
		return err
	}
	c.Status(http.StatusOK)
	return nil
}
