package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CREATE TABLE public.admin_recommends (
//     id           VARCHAR(36) PRIMARY KEY,
//     title        VARCHAR(200) NOT NULL,
//     subtitle     VARCHAR(300),
//     image_url    TEXT NOT NULL,
//     external_url TEXT NOT NULL,
//     price        VARCHAR(50),
//     is_visible   BOOLEAN NOT NULL,
//     section_id   VARCHAR(36) REFERENCES sections(id) ON DELETE SET NULL,
//     created_by   VARCHAR(36) NOT NULL REFERENCES users(id),
//     created_at   TIMESTAMPTZ DEFAULT NOW(),
//     updated_at   TIMESTAMPTZ DEFAULT NOW()
// );

// AdminRecommend is a staff-authored card linking outside the platform.
type AdminRecommend struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title       string    `gorm:"column:title;type:varchar(200);not null" json:"title"`
	Subtitle    *string   `gorm:"column:subtitle;type:varchar(300)" json:"subtitle"`
	ImageURL    string    `gorm:"column:image_url;type:text;not null" json:"imageUrl"`
	ExternalURL string    `gorm:"column:external_url;type:text;not null" json:"externalUrl"`
	Price       *string   `gorm:"column:price;type:varchar(50)" json:"price"`
	IsVisible   bool      `gorm:"column:is_visible;not null;index" json:"isVisible"`
	SectionID   *string   `gorm:"column:section_id;type:varchar(36);index" json:"sectionId"`
	CreatedBy   string    `gorm:"column:created_by;type:varchar(36);not null" json:"createdBy"`
	CreatedAt   time.Time `gorm:"column:created_at;index" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (AdminRecommend) TableName() string {
	return "admin_recommends"
}

func (a *AdminRecommend) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// MaxSectionRecommendations caps how many recommendations one section holds.
const MaxSectionRecommendations = 8

// Section is an admin-arranged shelf on the home page.
type Section struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title        string    `gorm:"column:title;type:varchar(200);not null" json:"title"`
	Subtitle     *string   `gorm:"column:subtitle;type:varchar(300)" json:"subtitle"`
	DisplayOrder int       `gorm:"column:display_order;not null;index" json:"displayOrder"`
	CreatedBy    string    `gorm:"column:created_by;type:varchar(36);not null" json:"createdBy"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Section) TableName() string {
	return "sections"
}

func (s *Section) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

type SectionRecommendation struct {
	ID               string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	SectionID        string    `gorm:"column:section_id;type:varchar(36);not null;uniqueIndex:unique_section_rec;index:idx_section_recs_order,priority:1" json:"sectionId"`
	RecommendationID string    `gorm:"column:recommendation_id;type:varchar(36);not null;uniqueIndex:unique_section_rec" json:"recommendationId"`
	DisplayOrder     int       `gorm:"column:display_order;not null;index:idx_section_recs_order,priority:2" json:"displayOrder"`
	CreatedAt        time.Time `gorm:"column:created_at" json:"createdAt"`
}

func (SectionRecommendation) TableName() string {
	return "section_recommendations"
}

func (s *SectionRecommendation) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// SectionWithRecommendations is a section with its linked recommendations and
// its visible admin cards.
type SectionWithRecommendations struct {
	Section
	Recommendations []Recommendation `json:"recommendations"`
	AdminRecommends []AdminRecommend `json:"adminRecommends"`
}

type AppSetting struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Key       string    `gorm:"column:key;type:varchar(100);not null;unique" json:"key"`
	Value     *string   `gorm:"column:value;type:text" json:"value"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (AppSetting) TableName() string {
	return "app_settings"
}

func (a *AppSetting) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
