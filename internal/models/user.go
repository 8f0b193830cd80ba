package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser       UserRole = "user"
	RoleDepartment UserRole = "department"
	RoleAuthority  UserRole = "authority"
	RoleDeveloper  UserRole = "developer"
)

type User struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	Name       string         `json:"name" gorm:"not null"`
	Email      string         `json:"email" gorm:"uniqueIndex;not null"`
	Password   string         `json:"-" gorm:"not null"`
	Role       UserRole       `json:"role" gorm:"not null;default:'user'"`
	Department string         `json:"department"` // required when Role is department
	Phone      string         `json:"phone"`
	Address    string         `json:"address"`
	IsVerified bool           `json:"isVerified" gorm:"default:false"`
	IsActive   bool           `json:"isActive" gorm:"default:true"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

func ValidRole(r UserRole) bool {
	switch r {
	case RoleUser, RoleDepartment, RoleAuthority, RoleDeveloper:
		return true
	}
	return false
}
