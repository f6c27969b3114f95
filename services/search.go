package services

import (
	"context"

	"food-ordering-api/apperr"
	"food-ordering-api/models"
	"food-ordering-api/search"
	"food-ordering-api/store"
)

type SearchService struct {
	restaurants store.RestaurantStore
}

func NewSearchService(restaurants store.RestaurantStore) *SearchService {
	return &SearchService{restaurants: restaurants}
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int64 `json:"pages"`
}

type SearchResult struct {
	Data       []models.Restaurant `json:"data"`
	Pagination Pagination          `json:"pagination"`
}

// Search returns one page of restaurants in city. A city with no
// restaurants at all yields an empty first page rather than an error.
func (s *SearchService) Search(ctx context.Context, city string, p search.Params) (*SearchResult, error) {
	inCity, err := s.restaurants.CountRestaurants(ctx, search.CityFilter(city))
	if err != nil {
		return nil, apperr.Internal("", err)
	}
	if inCity == 0 {
		return &SearchResult{
			Data:       []models.Restaurant{},
			Pagination: Pagination{Total: 0, Page: 1, Pages: 1},
		}, nil
	}

	filter := search.BuildFilter(city, p)
	page := search.ParsePage(p.Page)

	restaurants, err := s.restaurants.FindRestaurants(ctx, search.NewQuery(filter, search.ParseSort(p.SortOption), page))
	if err != nil {
		return nil, apperr.Internal("", err)
	}
	total, err := s.restaurants.CountRestaurants(ctx, filter)
	if err != nil {
		return nil, apperr.Internal("", err)
	}

	return &SearchResult{
		Data: restaurants,
		Pagination: Pagination{
			Total: total,
			Page:  page,
			Pages: search.PageCount(total),
		},
	}, nil
}
