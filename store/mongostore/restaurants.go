package mongostore

import (
	"context"
	"fmt"
	"regexp"

	"food-ordering-api/models"
	"food-ordering-api/search"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *Store) GetRestaurant(ctx context.Context, id string) (*models.Restaurant, error) {
	return findOne[models.Restaurant](ctx, s.restaurants, bson.M{"_id": id})
}

func (s *Store) FindRestaurantByUser(ctx context.Context, userID string) (*models.Restaurant, error) {
	return findOne[models.Restaurant](ctx, s.restaurants, bson.M{"user": userID})
}

func (s *Store) CreateRestaurant(ctx context.Context, restaurant *models.Restaurant) error {
	_, err := s.restaurants.InsertOne(ctx, restaurant)
	return err
}

func (s *Store) UpdateRestaurant(ctx context.Context, restaurant *models.Restaurant) error {
	return replace(ctx, s.restaurants, restaurant.ID, restaurant)
}

func (s *Store) CountRestaurants(ctx context.Context, filter search.Filter) (int64, error) {
	q, err := toBSON(filter)
	if err != nil {
		return 0, err
	}
	return s.restaurants.CountDocuments(ctx, q)
}

func (s *Store) FindRestaurants(ctx context.Context, query search.Query) ([]models.Restaurant, error) {
	q, err := toBSON(query.Filter)
	if err != nil {
		return nil, err
	}
	opts := options.Find().
		SetSort(sortDocument(query.Sort)).
		SetSkip(int64(query.Skip)).
		SetLimit(int64(query.Limit))
	return findAll[models.Restaurant](ctx, s.restaurants, q, opts)
}

func sortDocument(field search.SortField) bson.D {
	switch field {
	case search.SortDeliveryPrice, search.SortEstimatedDeliveryTime, search.SortLastUpdated:
	default:
		field = search.SortLastUpdated
	}
	return bson.D{{Key: string(field), Value: 1}, {Key: "_id", Value: 1}}
}

// toBSON renders a filter as $and of clauses, each clause an $or of regex
// tests. A regex against an array field matches when any element matches.
func toBSON(filter search.Filter) (bson.M, error) {
	and := bson.A{}
	for _, clause := range filter.Clauses {
		or := bson.A{}
		for _, p := range clause.AnyOf {
			switch p.Field {
			case search.FieldCity, search.FieldRestaurantName, search.FieldCuisines:
			default:
				return nil, fmt.Errorf("mongostore: unsupported filter field %q", p.Field)
			}
			switch p.Operator {
			case search.Contains, search.ElementContains:
				or = append(or, bson.M{string(p.Field): caseInsensitive(p.Value)})
			default:
				return nil, fmt.Errorf("mongostore: unsupported operator %d", p.Operator)
			}
		}
		switch len(or) {
		case 0:
		case 1:
			and = append(and, or[0])
		default:
			and = append(and, bson.M{"$or": or})
		}
	}
	if len(and) == 0 {
		return bson.M{}, nil
	}
	return bson.M{"$and": and}, nil
}

func caseInsensitive(value string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(value), Options: "i"}
}
