package types

import (
	"time"

	"github.com/google/uuid"
)

// User is any marketplace identity; the same account can sell and buy.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password    string    `gorm:"not null;column:password" json:"-"`
	DisplayName string    `gorm:"not null;column:display_name" json:"display_name"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string {
	return "user"
}
