package gormstore

import (
	"context"

	"food-ordering-api/models"
)

func (s *Store) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	return first[models.Order](ctx, s.db, "id = ?", id)
}

func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	return s.db.WithContext(ctx).Create(order).Error
}

func (s *Store) UpdateOrder(ctx context.Context, order *models.Order) error {
	return save(ctx, s.db, order, order.ID)
}

func (s *Store) ListOrdersByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return s.listOrders(ctx, "user_id = ?", userID)
}

func (s *Store) ListOrdersByRestaurant(ctx context.Context, restaurantID string) ([]models.Order, error) {
	return s.listOrders(ctx, "restaurant_id = ?", restaurantID)
}

func (s *Store) listOrders(ctx context.Context, query string, arg string) ([]models.Order, error) {
	orders := []models.Order{}
	err := s.db.WithContext(ctx).
		Where(query, arg).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
