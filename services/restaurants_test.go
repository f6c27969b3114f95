package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"food-ordering-api/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInput() RestaurantInput {
	return RestaurantInput{
		RestaurantName:        "Luigi's",
		City:                  "London",
		Country:               "UK",
		DeliveryPrice:         2.5,
		EstimatedDeliveryTime: 30,
		Cuisines:              []string{"Italian", "Pizza"},
		MenuItems: []MenuItemInput{
			{Name: "Margherita", Price: 9.5},
			{Name: "Tiramisu", Price: 4},
		},
	}
}

func TestRestaurantService_CreateOncePerUser(t *testing.T) {
	images := &fakeUploader{url: "https://img/1.png"}
	log, _ := newTestLogger()
	svc := NewRestaurantService(newTestStore(t), images, log)
	ctx := context.Background()

	r, err := svc.CreateMyRestaurant(ctx, "user-1", sampleInput(), testImage())
	require.NoError(t, err)
	assert.Equal(t, "user-1", r.UserID)
	assert.Equal(t, "https://img/1.png", r.ImageURL)
	assert.False(t, r.LastUpdated.IsZero())
	require.Len(t, r.MenuItems, 2)
	assert.NotEmpty(t, r.MenuItems[0].ID)
	assert.NotEqual(t, r.MenuItems[0].ID, r.MenuItems[1].ID)

	other := sampleInput()
	other.RestaurantName = "Different"
	_, err = svc.CreateMyRestaurant(ctx, "user-1", other, testImage())
	assert.True(t, apperr.Is(err, apperr.KindConflict))
	assert.Equal(t, 1, images.uploads, "conflict is detected before uploading")
}

func TestRestaurantService_CreateRequiresImage(t *testing.T) {
	log, _ := newTestLogger()
	svc := NewRestaurantService(newTestStore(t), &fakeUploader{url: "x"}, log)
	_, err := svc.CreateMyRestaurant(context.Background(), "user-1", sampleInput(), nil)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestRestaurantService_UploadFailure(t *testing.T) {
	log, _ := newTestLogger()
	s := newTestStore(t)
	svc := NewRestaurantService(s, &fakeUploader{err: errors.New("cloud down")}, log)
	ctx := context.Background()

	_, err := svc.CreateMyRestaurant(ctx, "user-1", sampleInput(), testImage())
	assert.True(t, apperr.Is(err, apperr.KindUpstream))

	_, err = svc.GetMyRestaurant(ctx, "user-1")
	assert.True(t, apperr.Is(err, apperr.KindNotFound), "nothing persisted")
}

func TestRestaurantService_UpdateKeepsMenuIDsAndImage(t *testing.T) {
	images := &fakeUploader{url: "https://img/1.png"}
	log, _ := newTestLogger()
	svc := NewRestaurantService(newTestStore(t), images, log)
	ctx := context.Background()

	created, err := svc.CreateMyRestaurant(ctx, "user-1", sampleInput(), testImage())
	require.NoError(t, err)
	keptID := created.MenuItems[0].ID

	later := created.LastUpdated.Add(time.Minute)
	svc.now = func() time.Time { return later }

	in := sampleInput()
	in.City = "Manchester"
	in.MenuItems = []MenuItemInput{
		{ID: keptID, Name: "Margherita", Price: 10},
		{ID: "forged-id", Name: "Calzone", Price: 11},
	}
	updated, err := svc.UpdateMyRestaurant(ctx, "user-1", in, nil)
	require.NoError(t, err)

	assert.Equal(t, "Manchester", updated.City)
	assert.Equal(t, "https://img/1.png", updated.ImageURL)
	assert.Equal(t, 1, images.uploads)
	require.Len(t, updated.MenuItems, 2)
	assert.Equal(t, keptID, updated.MenuItems[0].ID)
	assert.NotEqual(t, "forged-id", updated.MenuItems[1].ID)
	assert.True(t, updated.LastUpdated.Equal(later))

	images.url = "https://img/2.png"
	replaced, err := svc.UpdateMyRestaurant(ctx, "user-1", in, testImage())
	require.NoError(t, err)
	assert.Equal(t, "https://img/2.png", replaced.ImageURL)
}

func TestRestaurantService_UpdateMissing(t *testing.T) {
	log, _ := newTestLogger()
	svc := NewRestaurantService(newTestStore(t), &fakeUploader{url: "x"}, log)
	_, err := svc.UpdateMyRestaurant(context.Background(), "nobody", sampleInput(), nil)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}
