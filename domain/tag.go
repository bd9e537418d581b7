package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Tag struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(50);unique;not null" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
}

func (Tag) TableName() string {
	return "tags"
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

type RecommendationTag struct {
	RecommendationID string `gorm:"primaryKey;column:recommendation_id;type:varchar(36)" json:"recommendationId"`
	TagID            string `gorm:"primaryKey;column:tag_id;type:varchar(36)" json:"tagId"`
}

func (RecommendationTag) TableName() string {
	return "recommendation_tags"
}
