package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Follow is a directed edge: FollowerID follows FollowingID. Unique per pair.
type Follow struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	FollowerID  string    `gorm:"column:follower_id;type:varchar(36);not null;uniqueIndex:unique_follow" json:"followerId"`
	FollowingID string    `gorm:"column:following_id;type:varchar(36);not null;uniqueIndex:unique_follow" json:"followingId"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"createdAt"`
}

func (Follow) TableName() string {
	return "follows"
}

func (f *Follow) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

type Like struct {
	ID               string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID           string    `gorm:"column:user_id;type:varchar(36);not null;uniqueIndex:unique_like" json:"userId"`
	RecommendationID string    `gorm:"column:recommendation_id;type:varchar(36);not null;uniqueIndex:unique_like;index" json:"recommendationId"`
	CreatedAt        time.Time `gorm:"column:created_at" json:"createdAt"`
}

func (Like) TableName() string {
	return "likes"
}

func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

type Comment struct {
	ID               string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID           string    `gorm:"column:user_id;type:varchar(36);not null" json:"userId"`
	RecommendationID string    `gorm:"column:recommendation_id;type:varchar(36);not null;index" json:"recommendationId"`
	ParentID         *string   `gorm:"column:parent_id;type:varchar(36)" json:"parentId"`
	Content          string    `gorm:"column:content;type:text;not null" json:"content"`
	CreatedAt        time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt        time.Time `gorm:"column:updated_at" json:"updatedAt"`

	User    *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Replies []Comment `gorm:"-" json:"replies"`
}

func (Comment) TableName() string {
	return "comments"
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// CuratorRec marks a recommendation as an admin pick.
type CuratorRec struct {
	ID               string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	RecommendationID string    `gorm:"column:recommendation_id;type:varchar(36);not null;unique" json:"recommendationId"`
	CuratorID        string    `gorm:"column:curator_id;type:varchar(36);not null" json:"curatorId"`
	CreatedAt        time.Time `gorm:"column:created_at" json:"createdAt"`

	Recommendation *Recommendation `gorm:"foreignKey:RecommendationID" json:"recommendation,omitempty"`
}

func (CuratorRec) TableName() string {
	return "curator_recs"
}

func (c *CuratorRec) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
