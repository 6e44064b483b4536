package models

import "time"

// Group is a household: the root scope for users, images and tasks.
type Group struct {
	ID              string    `json:"id"`
	BuildingName    string    `json:"building_name"`
	ApartmentNumber string    `json:"apartment_number"`
	CreatedAt       time.Time `json:"created_at"`
}
