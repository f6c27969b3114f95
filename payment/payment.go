// Package payment talks to the hosted checkout provider.
package payment

import (
	"context"

	"github.com/shopspring/decimal"
)

// EventCheckoutSessionCompleted is the only event that changes local state.
const EventCheckoutSessionCompleted = "checkout.session.completed"

// LineItem amounts are in minor currency units.
type LineItem struct {
	Name       string
	UnitAmount int64
	Quantity   int64
}

type SessionRequest struct {
	LineItems      []LineItem
	DeliveryAmount int64
	// OrderID and RestaurantID travel as session metadata and come back on
	// the webhook.
	OrderID      string
	RestaurantID string
	SuccessURL   string
	CancelURL    string
}

type Session struct {
	ID  string
	URL string
}

// Event is a verified webhook event. Order fields are only set for
// EventCheckoutSessionCompleted.
type Event struct {
	ID           string
	Type         string
	SessionID    string
	OrderID      string
	RestaurantID string
	AmountTotal  int64
}

type Gateway interface {
	CreateCheckoutSession(ctx context.Context, req SessionRequest) (*Session, error)
	// ParseWebhook verifies the signature header against the raw body.
	ParseWebhook(payload []byte, signature string) (*Event, error)
}

// ProviderError carries the provider's own message for the client.
type ProviderError struct {
	Message string
	Err     error
}

func (e *ProviderError) Error() string { return "payment provider: " + e.Message }

func (e *ProviderError) Unwrap() error { return e.Err }

var hundred = decimal.NewFromInt(100)

// ToMinorUnits converts a major-unit price to minor units (×100), rounding
// half away from zero.
func ToMinorUnits(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(hundred).Round(0).IntPart()
}
