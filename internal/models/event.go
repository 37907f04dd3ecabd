package models

import "time"

type Event struct {
	BaseModelWithDeleted
	OwnerID     string `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Description string
	StartsAt    *time.Time
	EndsAt      *time.Time

	// Relations
	Zones []Zone `gorm:"foreignKey:EventID"`
}
