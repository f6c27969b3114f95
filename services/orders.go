package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"food-ordering-api/apperr"
	"food-ordering-api/events"
	"food-ordering-api/models"
	"food-ordering-api/payment"
	"food-ordering-api/statemachine"
	"food-ordering-api/store"

	"github.com/sirupsen/logrus"
)

type OrderService struct {
	orders      store.OrderStore
	restaurants store.RestaurantStore
	users       store.UserStore
	payments    payment.Gateway
	publisher   events.Publisher
	frontendURL string
	log         logrus.FieldLogger
	now         func() time.Time
}

func NewOrderService(
	orders store.OrderStore,
	restaurants store.RestaurantStore,
	users store.UserStore,
	payments payment.Gateway,
	publisher events.Publisher,
	frontendURL string,
	log logrus.FieldLogger,
) *OrderService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &OrderService{
		orders:      orders,
		restaurants: restaurants,
		users:       users,
		payments:    payments,
		publisher:   publisher,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		log:         log,
		now:         time.Now,
	}
}

type CartItemInput struct {
	MenuItemID string
	Name       string
	Quantity   int
}

type CheckoutInput struct {
	RestaurantID    string
	CartItems       []CartItemInput
	DeliveryDetails models.DeliveryDetails
}

// CreateCheckoutSession prices the cart from the restaurant's current menu,
// opens a payment session and, once the provider has returned a redirect
// URL, saves the order as placed. Nothing is saved on any failure.
func (s *OrderService) CreateCheckoutSession(ctx context.Context, userID string, in CheckoutInput) (string, error) {
	restaurant, err := s.restaurants.GetRestaurant(ctx, in.RestaurantID)
	if err != nil {
		return "", lookupError(err, "Restaurant not found")
	}

	lineItems := make([]payment.LineItem, 0, len(in.CartItems))
	cartItems := make([]models.CartItem, 0, len(in.CartItems))
	for _, cartItem := range in.CartItems {
		menuItem, ok := restaurant.FindMenuItem(cartItem.MenuItemID)
		if !ok {
			return "", apperr.Validation("Menu item not found: " + cartItem.MenuItemID)
		}
		lineItems = append(lineItems, payment.LineItem{
			Name:       menuItem.Name,
			UnitAmount: payment.ToMinorUnits(menuItem.Price),
			Quantity:   int64(cartItem.Quantity),
		})

		name := cartItem.Name
		if name == "" {
			name = menuItem.Name
		}
		cartItems = append(cartItems, models.CartItem{
			MenuItemID: cartItem.MenuItemID,
			Quantity:   cartItem.Quantity,
			Name:       name,
		})
	}

	order := &models.Order{
		ID:              models.NewID(),
		RestaurantID:    restaurant.ID,
		UserID:          userID,
		DeliveryDetails: in.DeliveryDetails,
		CartItems:       cartItems,
		Status:          models.StatusPlaced,
		CreatedAt:       s.now(),
	}

	session, err := s.payments.CreateCheckoutSession(ctx, payment.SessionRequest{
		LineItems:      lineItems,
		DeliveryAmount: payment.ToMinorUnits(restaurant.DeliveryPrice),
		OrderID:        order.ID,
		RestaurantID:   restaurant.ID,
		SuccessURL:     s.frontendURL + "/order-status?success=true",
		CancelURL:      fmt.Sprintf("%s/detail/%s?cancelled=true", s.frontendURL, restaurant.ID),
	})
	if err != nil {
		var pe *payment.ProviderError
		if errors.As(err, &pe) {
			return "", apperr.Upstream(pe.Message, err)
		}
		return "", apperr.Upstream("Error creating checkout session", err)
	}
	if session == nil || session.URL == "" {
		return "", apperr.Internal("Error creating stripe session", nil)
	}

	order.CheckoutSessionID = session.ID
	if err := s.orders.CreateOrder(ctx, order); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"order_id":   order.ID,
			"session_id": session.ID,
		}).Error("payment session created but order was not saved")
		return "", apperr.Internal("", err)
	}

	s.publish(ctx, events.NewOrderEvent(events.TypeOrderPlaced, order, ""))
	return session.URL, nil
}

// HandleWebhook verifies and applies a payment provider callback. Only a
// failed verification (Validation) or an unknown order (NotFound) is
// returned; storage failures after verification are logged and
// acknowledged so the provider does not treat them as delivery failures.
func (s *OrderService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.payments.ParseWebhook(payload, signature)
	if err != nil {
		return &apperr.Error{Kind: apperr.KindValidation, Message: "Webhook error: " + err.Error(), Err: err}
	}

	log := s.log.WithFields(logrus.Fields{"event_id": event.ID, "event_type": event.Type})
	if event.Type != payment.EventCheckoutSessionCompleted {
		log.Debug("ignoring webhook event")
		return nil
	}

	order, err := s.orders.GetOrder(ctx, event.OrderID)
	if errors.Is(err, store.ErrNotFound) {
		log.WithField("order_id", event.OrderID).Warn("webhook for unknown order")
		return apperr.NotFound("Order not found")
	}
	if err != nil {
		log.WithError(err).Error("failed to load order for webhook")
		return nil
	}

	previous := order.Status
	amount := event.AmountTotal
	order.TotalAmount = &amount
	order.Status = models.StatusPaid

	if err := s.orders.UpdateOrder(ctx, order); err != nil {
		log.WithError(err).WithField("order_id", order.ID).Error("failed to mark order paid")
		return nil
	}

	s.publish(ctx, events.NewOrderEvent(events.TypeOrderPaid, order, previous))
	return nil
}

// UpdateOrderStatus lets the restaurant owner set any known status. The
// lifecycle order is not enforced; moving backwards is logged.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, userID, orderID string, status models.OrderStatus) (*models.Order, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, lookupError(err, "Order not found")
	}

	restaurant, err := s.restaurants.GetRestaurant(ctx, order.RestaurantID)
	if err != nil {
		return nil, lookupError(err, "Restaurant not found")
	}
	if restaurant.UserID != userID {
		return nil, apperr.Unauthorized(fmt.Errorf("user %s does not own restaurant %s", userID, restaurant.ID))
	}

	if !statemachine.IsKnown(status) {
		return nil, apperr.Validation("Invalid order status: " + string(status))
	}

	previous := order.Status
	if !statemachine.IsForward(previous, status) {
		s.log.WithFields(logrus.Fields{
			"order_id": order.ID,
			"from":     previous,
			"to":       status,
		}).Warn("order status moved backwards")
	}

	order.Status = status
	if err := s.orders.UpdateOrder(ctx, order); err != nil {
		return nil, apperr.Internal("Unable to update order status", err)
	}

	s.publish(ctx, events.NewOrderEvent(events.TypeOrderStatusChanged, order, previous))
	return order, nil
}

// GetMyOrders lists the user's orders with restaurant and user attached.
func (s *OrderService) GetMyOrders(ctx context.Context, userID string) ([]models.Order, error) {
	orders, err := s.orders.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("", err)
	}
	if err := s.attach(ctx, orders, nil); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetMyRestaurantOrders lists orders placed with the user's restaurant.
func (s *OrderService) GetMyRestaurantOrders(ctx context.Context, userID string) ([]models.Order, error) {
	restaurant, err := s.restaurants.FindRestaurantByUser(ctx, userID)
	if err != nil {
		return nil, lookupError(err, "Restaurant not found")
	}

	orders, err := s.orders.ListOrdersByRestaurant(ctx, restaurant.ID)
	if err != nil {
		return nil, apperr.Internal("", err)
	}
	if err := s.attach(ctx, orders, restaurant); err != nil {
		return nil, err
	}
	return orders, nil
}

// attach fills Restaurant and User on each order, loading each distinct
// document once. References that no longer resolve are left nil.
func (s *OrderService) attach(ctx context.Context, orders []models.Order, known *models.Restaurant) error {
	restaurants := map[string]*models.Restaurant{}
	if known != nil {
		restaurants[known.ID] = known
	}
	users := map[string]*models.User{}

	for i := range orders {
		o := &orders[i]

		r, seen := restaurants[o.RestaurantID]
		if !seen {
			loaded, err := s.restaurants.GetRestaurant(ctx, o.RestaurantID)
			if err != nil && !errors.Is(err, store.ErrNotFound) {
				return apperr.Internal("", err)
			}
			r = loaded
			restaurants[o.RestaurantID] = r
		}
		o.Restaurant = r

		u, seen := users[o.UserID]
		if !seen {
			loaded, err := s.users.GetUser(ctx, o.UserID)
			if err != nil && !errors.Is(err, store.ErrNotFound) {
				return apperr.Internal("", err)
			}
			u = loaded
			users[o.UserID] = u
		}
		o.User = u
	}
	return nil
}

func (s *OrderService) publish(ctx context.Context, event events.OrderEvent) {
	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"order_id":   event.OrderID,
			"event_type": event.Type,
		}).Warn("failed to publish order event")
	}
}
