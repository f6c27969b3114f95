package models

import "time"

// OrderStatus represents all possible states of an order
type OrderStatus string

const (
	StatusPlaced         OrderStatus = "placed"
	StatusPaid           OrderStatus = "paid"
	StatusInProgress     OrderStatus = "inProgress"
	StatusOutForDelivery OrderStatus = "outForDelivery"
	StatusDelivered      OrderStatus = "delivered"
)

type Order struct {
	ID                string          `json:"_id" bson:"_id" gorm:"primaryKey"`
	RestaurantID      string          `json:"restaurantId" bson:"restaurantId" gorm:"index;not null"`
	Restaurant        *Restaurant     `json:"restaurant,omitempty" bson:"-" gorm:"-"`
	UserID            string          `json:"userId" bson:"userId" gorm:"index;not null"`
	User              *User           `json:"user,omitempty" bson:"-" gorm:"-"`
	DeliveryDetails   DeliveryDetails `json:"deliveryDetails" bson:"deliveryDetails" gorm:"embedded;embeddedPrefix:delivery_"`
	CartItems         []CartItem      `json:"cartItems" bson:"cartItems" gorm:"serializer:json;type:text"`
	TotalAmount       *int64          `json:"totalAmount,omitempty" bson:"totalAmount,omitempty"` // minor units, set once paid
	Status            OrderStatus     `json:"status" bson:"status" gorm:"not null;default:'placed'"`
	CheckoutSessionID string          `json:"checkoutSessionId,omitempty" bson:"checkoutSessionId,omitempty"`
	CreatedAt         time.Time       `json:"createdAt" bson:"createdAt"`
}

// DeliveryDetails is captured at checkout and never synced back to the User.
type DeliveryDetails struct {
	Email        string `json:"email" bson:"email" binding:"required,email"`
	Name         string `json:"name" bson:"name" binding:"required"`
	AddressLine1 string `json:"addressLine1" bson:"addressLine1" binding:"required"`
	City         string `json:"city" bson:"city" binding:"required"`
	Country      string `json:"country" bson:"country" binding:"required"`
}

// CartItem name is a snapshot taken at checkout.
type CartItem struct {
	MenuItemID string `json:"menuItemId" bson:"menuItemId"`
	Quantity   int    `json:"quantity" bson:"quantity"`
	Name       string `json:"name" bson:"name"`
}
