package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID              string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Email           string    `gorm:"column:email;unique;not null" json:"email"`
	Password        string    `gorm:"column:password;not null" json:"-"`
	Username        string    `gorm:"column:username;unique;not null" json:"username"`
	FirstName       string    `gorm:"column:first_name" json:"firstName,omitempty"`
	LastName        string    `gorm:"column:last_name" json:"lastName,omitempty"`
	ProfileImageURL string    `gorm:"column:profile_image_url" json:"profileImageUrl,omitempty"`
	Bio             string    `gorm:"column:bio;type:text" json:"bio,omitempty"`
	InstagramURL    string    `gorm:"column:instagram_url" json:"instagramUrl,omitempty"`
	TiktokURL       string    `gorm:"column:tiktok_url" json:"tiktokUrl,omitempty"`
	YoutubeURL      string    `gorm:"column:youtube_url" json:"youtubeUrl,omitempty"`
	IsAdmin         bool      `gorm:"column:is_admin;default:false;not null" json:"isAdmin"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Role is the JWT role claim for the user.
func (u User) Role() string {
	if u.IsAdmin {
		return RoleAdmin
	}
	return RoleUser
}

type UserStats struct {
	RecommendationsCount int64 `json:"recommendationsCount"`
	FollowersCount       int64 `json:"followersCount"`
	FollowingCount       int64 `json:"followingCount"`
	LikesCount           int64 `json:"likesCount"`
}

// FeaturedUser is a user card on the landing page.
type FeaturedUser struct {
	User
	RecommendationsCount int64 `json:"recommendationsCount"`
	FollowersCount       int64 `json:"followersCount"`
}

type PlatformStats struct {
	RecommendationsCount int64 `json:"recommendationsCount"`
	CuratorsCount        int64 `json:"curatorsCount"`
	CategoriesCount      int64 `json:"categoriesCount"`
}
