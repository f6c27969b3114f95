package services

import (
	"context"
	"errors"
	"time"

	"food-ordering-api/apperr"
	"food-ordering-api/imagestore"
	"food-ordering-api/models"
	"food-ordering-api/store"

	"github.com/sirupsen/logrus"
)

type RestaurantService struct {
	restaurants store.RestaurantStore
	images      imagestore.Uploader
	log         logrus.FieldLogger
	now         func() time.Time
}

func NewRestaurantService(restaurants store.RestaurantStore, images imagestore.Uploader, log logrus.FieldLogger) *RestaurantService {
	return &RestaurantService{
		restaurants: restaurants,
		images:      images,
		log:         log,
		now:         time.Now,
	}
}

type MenuItemInput struct {
	ID    string
	Name  string
	Price float64
}

type RestaurantInput struct {
	RestaurantName        string
	City                  string
	Country               string
	DeliveryPrice         float64
	EstimatedDeliveryTime int
	Cuisines              []string
	MenuItems             []MenuItemInput
}

func (s *RestaurantService) GetMyRestaurant(ctx context.Context, userID string) (*models.Restaurant, error) {
	restaurant, err := s.restaurants.FindRestaurantByUser(ctx, userID)
	if err != nil {
		return nil, lookupError(err, "Restaurant not found")
	}
	return restaurant, nil
}

func (s *RestaurantService) GetRestaurant(ctx context.Context, restaurantID string) (*models.Restaurant, error) {
	restaurant, err := s.restaurants.GetRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, lookupError(err, "Restaurant not found")
	}
	return restaurant, nil
}

// CreateMyRestaurant creates the user's only restaurant. The image is
// uploaded before the record is written.
func (s *RestaurantService) CreateMyRestaurant(ctx context.Context, userID string, in RestaurantInput, img *imagestore.Image) (*models.Restaurant, error) {
	_, err := s.restaurants.FindRestaurantByUser(ctx, userID)
	if err == nil {
		return nil, apperr.Conflict("User restaurant already exists")
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, apperr.Internal("", err)
	}
	if img == nil {
		return nil, apperr.Validation("Restaurant image is required")
	}

	imageURL, err := s.images.Upload(ctx, img)
	if err != nil {
		return nil, apperr.Upstream("Failed to upload image", err)
	}

	restaurant := &models.Restaurant{
		ID:       models.NewID(),
		UserID:   userID,
		ImageURL: imageURL,
	}
	applyInput(restaurant, in, nil)
	restaurant.LastUpdated = s.now()

	if err := s.restaurants.CreateRestaurant(ctx, restaurant); err != nil {
		s.log.WithError(err).WithField("image_url", imageURL).Warn("restaurant not saved, uploaded image is orphaned")
		return nil, apperr.Internal("", err)
	}
	return restaurant, nil
}

// UpdateMyRestaurant overwrites every mutable field. The image is replaced
// only when img is non-nil.
func (s *RestaurantService) UpdateMyRestaurant(ctx context.Context, userID string, in RestaurantInput, img *imagestore.Image) (*models.Restaurant, error) {
	restaurant, err := s.restaurants.FindRestaurantByUser(ctx, userID)
	if err != nil {
		return nil, lookupError(err, "Restaurant not found")
	}

	if img != nil {
		imageURL, err := s.images.Upload(ctx, img)
		if err != nil {
			return nil, apperr.Upstream("Failed to upload image", err)
		}
		restaurant.ImageURL = imageURL
	}

	applyInput(restaurant, in, restaurant.MenuItems)
	restaurant.LastUpdated = s.now()

	if err := s.restaurants.UpdateRestaurant(ctx, restaurant); err != nil {
		return nil, apperr.Internal("", err)
	}
	return restaurant, nil
}

// applyInput copies the mutable fields. A menu item keeps its id only if
// that id is on the current menu.
func applyInput(r *models.Restaurant, in RestaurantInput, current []models.MenuItem) {
	known := make(map[string]bool, len(current))
	for _, item := range current {
		known[item.ID] = true
	}

	r.RestaurantName = in.RestaurantName
	r.City = in.City
	r.Country = in.Country
	r.DeliveryPrice = in.DeliveryPrice
	r.EstimatedDeliveryTime = in.EstimatedDeliveryTime
	r.Cuisines = append([]string{}, in.Cuisines...)

	r.MenuItems = make([]models.MenuItem, 0, len(in.MenuItems))
	for _, item := range in.MenuItems {
		id := item.ID
		if id == "" || !known[id] {
			id = models.NewID()
		}
		r.MenuItems = append(r.MenuItems, models.MenuItem{ID: id, Name: item.Name, Price: item.Price})
	}
}
