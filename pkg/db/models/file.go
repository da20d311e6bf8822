package models

import (
	"time"
)

// FileMetadata tracks the content hash of an imported file
type FileMetadata struct {
	ID           uint      `gorm:"primaryKey"`
	Filename     string    `gorm:"type:text;not null;uniqueIndex"`
	Hash         string    `gorm:"type:text;not null"`
	LastModified time.Time `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships
	ImportedFile *ImportedFile `gorm:"foreignKey:FileMetadataID;constraint:OnDelete:CASCADE"`
}

func (FileMetadata) TableName() string {
	return "file_metadata"
}

// ImportedFile records which kind of content a tracked file provides
type ImportedFile struct {
	ID             uint   `gorm:"primaryKey"`
	FileMetadataID uint   `gorm:"not null;uniqueIndex"`
	ContentType    string `gorm:"type:text;not null"`

	CreatedAt time.Time
}
