package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CREATE TABLE public.recommendations (
//     id           VARCHAR(36) PRIMARY KEY,
//     user_id      VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
//     category_id  VARCHAR(36) REFERENCES categories(id) ON DELETE SET NULL,
//     title        VARCHAR(200) NOT NULL,
//     description  TEXT,
//     rating       INT NOT NULL,
//     pro_tip      TEXT,
//     image_url    TEXT NOT NULL,
//     location     TEXT,
//     latitude     DOUBLE PRECISION,
//     longitude    DOUBLE PRECISION,
//     external_url TEXT,
//     is_private   BOOLEAN NOT NULL DEFAULT FALSE,
//     created_at   TIMESTAMPTZ DEFAULT NOW(),
//     updated_at   TIMESTAMPTZ DEFAULT NOW()
// );

type Recommendation struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID      string    `gorm:"column:user_id;type:varchar(36);not null;index" json:"userId"`
	CategoryID  *string   `gorm:"column:category_id;type:varchar(36);index" json:"categoryId"`
	Title       string    `gorm:"column:title;type:varchar(200);not null" json:"title"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Rating      int       `gorm:"column:rating;not null" json:"rating"`
	ProTip      *string   `gorm:"column:pro_tip;type:text" json:"proTip"`
	ImageURL    string    `gorm:"column:image_url;type:text;not null" json:"imageUrl"`
	Location    *string   `gorm:"column:location;type:text" json:"location"`
	Latitude    *float64  `gorm:"column:latitude;type:double precision" json:"latitude"`
	Longitude   *float64  `gorm:"column:longitude;type:double precision" json:"longitude"`
	ExternalURL *string   `gorm:"column:external_url;type:text" json:"externalUrl"`
	IsPrivate   bool      `gorm:"column:is_private;not null;default:false" json:"isPrivate"`
	CreatedAt   time.Time `gorm:"column:created_at;index" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updatedAt"`

	Tags []Tag `gorm:"many2many:recommendation_tags;joinForeignKey:RecommendationID;joinReferences:TagID" json:"tags,omitempty"`
}

func (Recommendation) TableName() string {
	return "recommendations"
}

func (r *Recommendation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// HasLocation reports whether both coordinates are present. A record carrying
// only one of them is treated as having no location.
func (r Recommendation) HasLocation() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// VisibleTo reports whether viewerID may observe the recommendation.
// An empty viewerID is an anonymous caller.
func (r Recommendation) VisibleTo(viewerID string) bool {
	if !r.IsPrivate {
		return true
	}
	return viewerID != "" && viewerID == r.UserID
}

// RecommendationWithLikes is the wire shape served by the feed, listing and
// map endpoints.
type RecommendationWithLikes struct {
	Recommendation
	LikeCount int64 `json:"likeCount"`
}

// WithLikeCounts decorates recs with their counts, defaulting to zero.
func WithLikeCounts(recs []Recommendation, counts map[string]int64) []RecommendationWithLikes {
	out := make([]RecommendationWithLikes, 0, len(recs))
	for _, r := range recs {
		out = append(out, RecommendationWithLikes{Recommendation: r, LikeCount: counts[r.ID]})
	}
	return out
}

// RecommendationDetail is the single recommendation view: the record, its
// author, its resolved category and its like count.
type RecommendationDetail struct {
	RecommendationWithLikes
	User     *User     `json:"user"`
	Category *Category `json:"category"`
}
