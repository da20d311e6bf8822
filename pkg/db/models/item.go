package models

import (
	"time"
)

// Item is a weighted entity addressed by its slug
type Item struct {
	ID     uint   `gorm:"primaryKey"`
	Slug   string `gorm:"type:text;not null;uniqueIndex"`
	Name   string `gorm:"type:text"`
	Weight int    `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships
	Variants []Variant `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
}

// Variant has its own slug but its weight is stored on the parent item
type Variant struct {
	ID     uint   `gorm:"primaryKey"`
	ItemID uint   `gorm:"not null;index"`
	Slug   string `gorm:"type:text;not null;uniqueIndex"`
	Name   string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Item Item `gorm:"foreignKey:ItemID;references:ID"`
}
