package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role constants
const (
	RoleAdmin  = "admin"
	RoleUser   = "user"
	RoleMember = "member"
)

// User represents an account owning documents and files
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string         `gorm:"type:varchar(255)" json:"name"`
	Email     string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string         `gorm:"type:varchar(255);not null" json:"-"`
	Role      string         `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// File category enum constants
const (
	FileCategoryLogo      = "logo"
	FileCategorySignature = "signature"
	FileCategorySeal      = "seal"
)

// IsValidFileCategory reports whether c is logo, signature or seal.
func IsValidFileCategory(c string) bool {
	return c == FileCategoryLogo || c == FileCategorySignature || c == FileCategorySeal
}

// UserFile references an uploaded blob in object storage
type UserFile struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index;index:,composite:user_category,priority:1" json:"userId"`
	StorageID    string    `gorm:"type:varchar(100);not null" json:"storageId"`
	FileName     string    `gorm:"type:varchar(255);not null" json:"fileName"`
	FileType     string    `gorm:"type:varchar(100);not null" json:"fileType"`
	FileCategory string    `gorm:"type:varchar(20);not null;index:,composite:user_category,priority:2" json:"fileCategory"`
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`
}
