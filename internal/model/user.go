package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User owns journal entries and generated articles. Deleting a user cascades to both.
type User struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Email          string    `json:"email" gorm:"uniqueIndex;not null"`
	FirstName      *string   `json:"first_name,omitempty"`
	LastName       *string   `json:"last_name,omitempty"`
	HashedPassword string    `json:"-" gorm:"not null"`
	IsActive       bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt      time.Time `json:"created_at"`
}

// BeforeCreate assigns a random UUID when none was set.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// UserCreate is the registration payload.
type UserCreate struct {
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=8,max=72"`
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,max=100"`
}

// Token is the OAuth2-style access token response.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserDeleteResponse confirms an account deletion.
type UserDeleteResponse struct {
	Message           string    `json:"message"`
	DeletedUserID     uuid.UUID `json:"deleted_user_id"`
	DeletedEntryCount int64     `json:"deleted_entry_count"`
}
