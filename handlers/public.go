package handlers

import (
	"net/http"

	"food-ordering-api/models"
	"food-ordering-api/search"
	"food-ordering-api/statemachine"

	"github.com/gin-gonic/gin"
)

// Health reports liveness
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "Food Ordering API",
	})
}

// SearchRestaurants returns one page of restaurants in a city (public)
func (h *Handler) SearchRestaurants(c *gin.Context) error {
	result, err := h.search.Search(c.Request.Context(), c.Param("city"), search.Params{
		SearchQuery:      c.Query("searchQuery"),
		SelectedCuisines: c.Query("selectedCuisines"),
		SortOption:       c.Query("sortOption"),
		Page:             c.Query("page"),
	})
	if err != nil {
		return err
	}
	c.JSON(http.StatusOK, result)
	return nil
}

// GetRestaurant returns a single restaurant with its menu (public)
func (h *Handler) GetRestaurant(c *gin.Context) error {
	restaurant, err := h.restaurants.GetRestaurant(c.Request.Context(), c.Param("restaurantId"))
	if err != nil {
		return err
	}
	c.JSON(http.StatusOK, restaurant)
	return nil
}

// GetOrderLifecycle describes the order statuses and who moves an order
// between them
func GetOrderLifecycle(c *gin.Context) {
	var terminal []models.OrderStatus
	for _, s := range statemachine.Statuses() {
		if statemachine.IsTerminal(s) {
			terminal = append(terminal, s)
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"statuses":        statemachine.Statuses(),
		"transitions":     statemachine.GetAllTransitions(),
		"terminal_states": terminal,
		"description":     "Order lifecycle. Restaurant updates may set any known status.",
	})
}
