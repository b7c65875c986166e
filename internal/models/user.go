package models

import "time"

type Guarantor struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20;not null" json:"phone"`
	University   string `gorm:"size:255;not null" json:"university"`
	Nationality  string `gorm:"size:100;not null" json:"nationality"`
	Gender       string `gorm:"size:20;not null" json:"gender"`

	MoveInDate   *time.Time `json:"moveInDate"`
	MoveOutDate  *time.Time `json:"moveOutDate"`
	StayDuration int        `json:"stayDuration"` // days
	DateOfBirth  *time.Time `json:"dateOfBirth"`

	Guarantors []Guarantor `gorm:"serializer:json" json:"guarantors"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
