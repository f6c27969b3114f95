package gormstore

import (
	"context"

	"food-ordering-api/models"
)

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	return first[models.User](ctx, s.db, "id = ?", id)
}

func (s *Store) FindUserByAuth0ID(ctx context.Context, auth0ID string) (*models.User, error) {
	return first[models.User](ctx, s.db, "auth0_id = ?", auth0ID)
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	return save(ctx, s.db, user, user.ID)
}
