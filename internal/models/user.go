package models

import "time"

// User is a roommate. Users are created by registration and only read here.
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	DateOfBirth  *time.Time `json:"date_of_birth"`
	Bio          string     `json:"bio"`
	Allergies    string     `json:"allergies"`
	SpecialNeeds string     `json:"special_needs"`
	Pets         string     `json:"pets"`
	// GroupID is nil for users that have not joined a household.
	GroupID *string `json:"group_id"`
}
