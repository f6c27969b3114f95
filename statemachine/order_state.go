package statemachine

import (
	"food-ordering-api/models"
)

const (
	ActorCustomer        = "customer"
	ActorPaymentProvider = "payment_provider"
	ActorRestaurant      = "restaurant"
)

// Transition describes one step of the order lifecycle and who drives it
type Transition struct {
	From  models.OrderStatus `json:"from"`
	To    models.OrderStatus `json:"to"`
	Actor string             `json:"actor"`
}

// lifecycle is the forward path every order is expected to follow.
// Restaurant updates are not checked against it; see IsForward.
var lifecycle = []Transition{
	{From: models.StatusPlaced, To: models.StatusPaid, Actor: ActorPaymentProvider},
	{From: models.StatusPaid, To: models.StatusInProgress, Actor: ActorRestaurant},
	{From: models.StatusInProgress, To: models.StatusOutForDelivery, Actor: ActorRestaurant},
	{From: models.StatusOutForDelivery, To: models.StatusDelivered, Actor: ActorRestaurant},
}

var statuses = []models.OrderStatus{
	models.StatusPlaced,
	models.StatusPaid,
	models.StatusInProgress,
	models.StatusOutForDelivery,
	models.StatusDelivered,
}

var rank = func() map[models.OrderStatus]int {
	m := make(map[models.OrderStatus]int, len(statuses))
	for i, s := range statuses {
		m[s] = i
	}
	return m
}()

// Statuses returns the fixed status enumeration in lifecycle order
func Statuses() []models.OrderStatus {
	out := make([]models.OrderStatus, len(statuses))
	copy(out, statuses)
	return out
}

// IsKnown reports whether status belongs to the enumeration
func IsKnown(status models.OrderStatus) bool {
	_, ok := rank[status]
	return ok
}

// IsForward reports whether moving from one status to another keeps the
// order on or ahead of its current lifecycle position.
func IsForward(from, to models.OrderStatus) bool {
	f, okFrom := rank[from]
	t, okTo := rank[to]
	return okFrom && okTo && t >= f
}

// ValidTransitionsFrom returns the next lifecycle states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	for _, t := range lifecycle {
		if t.From == status {
			nexts = append(nexts, t.To)
		}
	}
	return nexts
}

// IsTerminal reports whether no lifecycle step leaves status
func IsTerminal(status models.OrderStatus) bool {
	return IsKnown(status) && len(ValidTransitionsFrom(status)) == 0
}

// GetAllTransitions returns the full lifecycle for documentation
func GetAllTransitions() []Transition {
	out := make([]Transition, len(lifecycle))
	copy(out, lifecycle)
	return out
}
