package models

import (
	"time"

	"gorm.io/gorm"
)

type Department struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name" gorm:"uniqueIndex;not null"`
	Code         string         `json:"code" gorm:"uniqueIndex;not null"`
	Description  string         `json:"description"`
	ContactEmail string         `json:"contactEmail" gorm:"not null"`
	ContactPhone string         `json:"contactPhone"`
	IsActive     bool           `json:"isActive" gorm:"default:true"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Department) TableName() string {
	return "departments"
}
