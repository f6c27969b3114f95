package models

import "time"

// Restaurant is owned by exactly one user and embeds its menu.
type Restaurant struct {
	ID                    string     `json:"_id" bson:"_id" gorm:"primaryKey"`
	UserID                string     `json:"user" bson:"user" gorm:"index;not null"`
	RestaurantName        string     `json:"restaurantName" bson:"restaurantName" gorm:"not null"`
	City                  string     `json:"city" bson:"city" gorm:"index;not null"`
	Country               string     `json:"country" bson:"country" gorm:"not null"`
	DeliveryPrice         float64    `json:"deliveryPrice" bson:"deliveryPrice"`
	EstimatedDeliveryTime int        `json:"estimatedDeliveryTime" bson:"estimatedDeliveryTime"`
	Cuisines              []string   `json:"cuisines" bson:"cuisines" gorm:"serializer:json;type:text"`
	MenuItems             []MenuItem `json:"menuItems" bson:"menuItems" gorm:"serializer:json;type:text"`
	ImageURL              string     `json:"imageUrl" bson:"imageUrl"`
	LastUpdated           time.Time  `json:"lastUpdated" bson:"lastUpdated" gorm:"index"`
}

// MenuItem ids are stable for the life of the item; payment sessions and
// orders reference them.
type MenuItem struct {
	ID    string  `json:"_id" bson:"_id"`
	Name  string  `json:"name" bson:"name"`
	Price float64 `json:"price" bson:"price"`
}

// FindMenuItem returns the menu item with the given id, if present.
func (r *Restaurant) FindMenuItem(id string) (MenuItem, bool) {
	for _, item := range r.MenuItems {
		if item.ID == id {
			return item, true
		}
	}
	return MenuItem{}, false
}
