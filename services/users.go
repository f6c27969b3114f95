package services

import (
	"context"
	"errors"

	"food-ordering-api/apperr"
	"food-ordering-api/models"
	"food-ordering-api/store"
)

type UserService struct {
	users store.UserStore
}

func NewUserService(users store.UserStore) *UserService {
	return &UserService{users: users}
}

type CreateUserInput struct {
	Email        string
	Name         string
	AddressLine1 string
	City         string
	Country      string
}

type UpdateUserInput struct {
	Name         string
	AddressLine1 string
	City         string
	Country      string
}

func (s *UserService) GetCurrentUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, lookupError(err, "User not found")
	}
	return user, nil
}

// CreateCurrentUser provisions the profile for auth0ID. When one already
// exists it is returned untouched with created=false.
func (s *UserService) CreateCurrentUser(ctx context.Context, auth0ID string, in CreateUserInput) (*models.User, bool, error) {
	existing, err := s.users.FindUserByAuth0ID(ctx, auth0ID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, false, apperr.Internal("Error creating user", err)
	}

	user := &models.User{
		ID:           models.NewID(),
		Auth0ID:      auth0ID,
		Email:        in.Email,
		Name:         in.Name,
		AddressLine1: in.AddressLine1,
		City:         in.City,
		Country:      in.Country,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, false, apperr.Internal("Error creating user", err)
	}
	return user, true, nil
}

// UpdateCurrentUser overwrites all four mutable fields.
func (s *UserService) UpdateCurrentUser(ctx context.Context, userID string, in UpdateUserInput) (*models.User, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, lookupError(err, "User not found")
	}

	user.Name = in.Name
	user.AddressLine1 = in.AddressLine1
	user.City = in.City
	user.Country = in.Country

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, apperr.Internal("Error updating user", err)
	}
	return user, nil
}
