package models

import "github.com/google/uuid"

// NewID returns a fresh document id. Ids are generated by the application so
// an order id can be handed to the payment provider before the order is saved.
func NewID() string {
	return uuid.NewString()
}
