// Package store declares the persistence contracts shared by the gorm and
// MongoDB backends.
package store

import (
	"context"
	"errors"

	"food-ordering-api/models"
	"food-ordering-api/search"
)

// ErrNotFound is returned by every lookup that matches no document.
var ErrNotFound = errors.New("store: not found")

type UserStore interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	FindUserByAuth0ID(ctx context.Context, auth0ID string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, user *models.User) error
}

type RestaurantStore interface {
	GetRestaurant(ctx context.Context, id string) (*models.Restaurant, error)
	FindRestaurantByUser(ctx context.Context, userID string) (*models.Restaurant, error)
	CreateRestaurant(ctx context.Context, restaurant *models.Restaurant) error
	UpdateRestaurant(ctx context.Context, restaurant *models.Restaurant) error
	CountRestaurants(ctx context.Context, filter search.Filter) (int64, error)
	FindRestaurants(ctx context.Context, query search.Query) ([]models.Restaurant, error)
}

type OrderStore interface {
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	CreateOrder(ctx context.Context, order *models.Order) error
	UpdateOrder(ctx context.Context, order *models.Order) error
	// Listings are newest first.
	ListOrdersByUser(ctx context.Context, userID string) ([]models.Order, error)
	ListOrdersByRestaurant(ctx context.Context, restaurantID string) ([]models.Order, error)
}

// Store is a complete backend.
type Store interface {
	UserStore
	RestaurantStore
	OrderStore
	Migrate(ctx context.Context) error
	Close() error
}
