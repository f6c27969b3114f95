package mongostore

import (
	"context"

	"food-ordering-api/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *Store) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	return findOne[models.Order](ctx, s.orders, bson.M{"_id": id})
}

func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	_, err := s.orders.InsertOne(ctx, order)
	return err
}

func (s *Store) UpdateOrder(ctx context.Context, order *models.Order) error {
	return replace(ctx, s.orders, order.ID, order)
}

func (s *Store) ListOrdersByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return findAll[models.Order](ctx, s.orders, bson.M{"userId": userID}, newestFirst())
}

func (s *Store) ListOrdersByRestaurant(ctx context.Context, restaurantID string) ([]models.Order, error) {
	return findAll[models.Order](ctx, s.orders, bson.M{"restaurantId": restaurantID}, newestFirst())
}

func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
}
