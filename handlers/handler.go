// Package handlers holds the final pipeline stage of every route: read the
// bound input, call a service, write the response.
package handlers

import (
	"food-ordering-api/services"
)

type Handler struct {
	users       *services.UserService
	restaurants *services.RestaurantService
	search      *services.SearchService
	orders      *services.OrderService
}

func New(
	users *services.UserService,
	restaurants *services.RestaurantService,
	search *services.SearchService,
	orders *services.OrderService,
) *Handler {
	return &Handler{
		users:       users,
		restaurants: restaurants,
		search:      search,
		orders:      orders,
	}
}
