package handlers

import (
	"net/http"

	"food-ordering-api/middleware"
	"food-ordering-api/services"

	"github.com/gin-gonic/gin"
)

type CreateUserRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Name         string `json:"name"`
	AddressLine1 string `json:"addressLine1"`
	City         string `json:"city"`
	Country      string `json:"country"`
}

type UpdateUserRequest struct {
	Name         string `json:"name" binding:"required"`
	AddressLine1 string `json:"addressLine1" binding:"required"`
	City         string `json:"city" binding:"required"`
	Country      string `json:"country" binding:"required"`
}

// GetCurrentUser returns the caller's profile
func (h *Handler) GetCurrentUser(c *gin.Context) error {
	user, err := h.users.GetCurrentUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	c.JSON(http.StatusOK, user)
	return nil
}

// CreateCurrentUser provisions a profile for the token subject. An existing
// profile is left alone and answered with an empty 200.
func (h *Handler) CreateCurrentUser(c *gin.Context) error {
	req := middleware.Body[CreateUserRequest](c)
	user, created, err := h.users.CreateCurrentUser(c.Request.Context(), middleware.Auth0ID(c), services.CreateUserInput{
		Email:        req.Email,
		Name:         req.Name,
		AddressLine1: req.AddressLine1,
		City:         req.City,
		Country:      req.Country,
	})
	if err != nil {
		return err
	}
	if !created {
		c.Status(http.StatusOK)
		return nil
	}
	c.JSON(http.StatusCreated, user)
	return nil
}

// UpdateCurrentUser overwrites the caller's address details
func (h *Handler) UpdateCurrentUser(c *gin.Context) error {
	req := middleware.Body[UpdateUserRequest](c)
	user, err := h.users.UpdateCurrentUser(c.Request.Context(), middleware.UserID(c), services.UpdateUserInput{
		Name:         req.Name,
		AddressLine1: req.AddressLine1,
		City:         req.City,
		Country:      req.Country,
	})
	if err != nil {
		return err
	}
	c.JSON(http.StatusOK, user)
	return nil
}
