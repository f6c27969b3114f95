package handlers

import (
	"net/http"

	"food-ordering-api/middleware"
	"food-ordering-api/services"

	"github.com/gin-gonic/gin"
)

// ── Restaurant Management ────────────────────────────────────────────────────

// GetMyRestaurant fetches the restaurant owned by the caller
func (h *Handler) GetMyRestaurant(c *gin.Context) error {
	restaurant, err := h.restaurants.GetMyRestaurant(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	c.JSON(http.StatusOK, restaurant)
	return nil
}

// CreateMyRestaurant creates the caller's one restaurant
func (h *Handler) CreateMyRestaurant(c *gin.Context) error {
	form := middleware.Body[RestaurantForm](c)
	restaurant, err := h.restaurants.CreateMyRestaurant(c.Request.Context(), middleware.UserID(c), form.input(), form.Image)
	if err != nil {
		return err
	}
	c.JSON(http.StatusCreated, restaurant)
	return nil
}

// UpdateMyRestaurant replaces the caller's restaurant details
func (h *Handler) UpdateMyRestaurant(c *gin.Context) error {
	form := middleware.Body[RestaurantForm](c)
	restaurant, err := h.restaurants.UpdateMyRestaurant(c.Request.Context(), middleware.UserID(c), form.input(), form.Image)
	if err != nil {
		return err
	}
	c.JSON(http.StatusOK, restaurant)
	return nil
}

func (f *RestaurantForm) input() services.RestaurantInput {
	items := make([]services.MenuItemInput, 0, len(f.MenuItems))
	for _, item := range f.MenuItems {
		items = append(items, services.MenuItemInput{ID: item.ID, Name: item.Name, Price: item.Price})
	}
	return services.RestaurantInput{
		RestaurantName:        f.RestaurantName,
		City:                  f.City,
		Country:               f.Country,
		DeliveryPrice:         f.DeliveryPrice,
		EstimatedDeliveryTime: f.EstimatedDeliveryTime,
		Cuisines:              f.Cuisines,
		MenuItems:             items,
	}
}
