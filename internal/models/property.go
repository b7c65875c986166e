package models

import "time"

// AmenityGroup - named group of amenity items ("Kitchen: oven, fridge")
type AmenityGroup struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

type RoomType struct {
	Title string  `json:"title"`
	Price float64 `json:"price"`
}

type Property struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Slug        string  `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Title       string  `gorm:"size:255;not null" json:"title"`
	Price       float64 `gorm:"not null" json:"price"`
	City        string  `gorm:"size:100;index;not null" json:"city"`
	Country     string  `gorm:"size:100;not null" json:"country"`
	Description string  `gorm:"type:text;not null" json:"description"`
	University  string  `gorm:"size:255;not null" json:"university"`
	Area        string  `gorm:"size:100;not null" json:"area"`

	// Document-shaped sub-lists, stored as JSON columns
	Images    []string       `gorm:"serializer:json" json:"images"`
	Services  []string       `gorm:"serializer:json" json:"services"`
	Amenities []AmenityGroup `gorm:"serializer:json" json:"amenities"`
	RoomTypes []RoomType     `gorm:"serializer:json" json:"roomTypes"`

	Rating float64 `json:"rating"` // 0 = unrated, otherwise 1..5

	// Rolling monthly view counter; reset handled in property.IncrementViews
	Views           int64     `gorm:"not null;default:0" json:"views"`
	LastViewedReset time.Time `json:"lastViewedReset"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
