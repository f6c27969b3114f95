package models

// User is the local profile bound to an identity provider subject.
type User struct {
	ID           string `json:"_id" bson:"_id" gorm:"primaryKey"`
	Auth0ID      string `json:"auth0Id" bson:"auth0Id" gorm:"index;not null"`
	Email        string `json:"email" bson:"email" gorm:"not null"`
	Name         string `json:"name" bson:"name"`
	AddressLine1 string `json:"addressLine1" bson:"addressLine1"`
	City         string `json:"city" bson:"city"`
	Country      string `json:"country" bson:"country"`
}
