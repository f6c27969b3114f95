package mongostore

import (
	"context"

	"food-ordering-api/models"

	"go.mongodb.org/mongo-driver/bson"
)

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	return findOne[models.User](ctx, s.users, bson.M{"_id": id})
}

func (s *Store) FindUserByAuth0ID(ctx context.Context, auth0ID string) (*models.User, error) {
	return findOne[models.User](ctx, s.users, bson.M{"auth0Id": auth0ID})
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	_, err := s.users.InsertOne(ctx, user)
	return err
}

func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	return replace(ctx, s.users, user.ID, user)
}
