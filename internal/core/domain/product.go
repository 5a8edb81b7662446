package domain

import "time"

// Product is a catalog entry owned by a single farmer. ImageURL, when set,
// points at an object in the external image store.
type Product struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:128;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Price       float64   `json:"price" gorm:"not null"`
	Farmer      string    `json:"farmer" gorm:"index;size:64;not null"`
	ImageURL    string    `json:"image_url,omitempty" gorm:"size:512"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
