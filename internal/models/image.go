package models

import "time"

// Image is a gallery photo. URL is the object key inside the gallery bucket.
type Image struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	GroupID   string    `json:"group_id"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// ImageWithCreator is an Image joined with its creator. Creator is nil when
// the creator is not among the fetched group users (e.g. moved out).
type ImageWithCreator struct {
	Image
	Creator *User `json:"creator"`
}
