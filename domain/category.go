package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CREATE TABLE public.categories (
//     id          VARCHAR(36) PRIMARY KEY,
//     name        VARCHAR(100) NOT NULL,
//     user_id     VARCHAR(36) REFERENCES users(id) ON DELETE CASCADE, -- NULL for pre-built
//     created_at  TIMESTAMPTZ DEFAULT NOW(),
//     UNIQUE (name, user_id)
// );

type Category struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(100);not null;uniqueIndex:unique_category" json:"name"`
	UserID    *string   `gorm:"column:user_id;type:varchar(36);uniqueIndex:unique_category" json:"userId"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
}

func (Category) TableName() string {
	return "categories"
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// IsPrebuilt reports whether the category ships with the platform rather than
// belonging to a single user.
func (c Category) IsPrebuilt() bool {
	return c.UserID == nil
}
