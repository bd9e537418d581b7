package postgres

import (
	"context"
	"fmt"
	"time"

	"cur8tr/business/user"
	"cur8tr/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

var _ user.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		DB: db,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	if err := r.DB.WithContext(ctx).Create(u).Error; err != nil {
		return translate(err, "create user")
	}

	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (domain.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.findOne(ctx, "LOWER(email) = LOWER(?)", email)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg interface{}) (domain.User, error) {
	var u domain.User

	if err := r.DB.WithContext(ctx).Where(query, arg).First(&u).Error; err != nil {
		return domain.User{}, translate(err, "find user")
	}

	return u, nil
}

// UpdateProfile writes the editable profile columns of u.
func (r *UserRepository) UpdateProfile(ctx context.Context, u *domain.User) error {
	u.UpdatedAt = time.Now()

	result := r.DB.WithContext(ctx).Model(u).
		Select("username", "bio", "profile_image_url", "instagram_url", "tiktok_url", "youtube_url", "updated_at").
		Updates(u)
	if result.Error != nil {
		return translate(result.Error, "update user")
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("update user: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *UserRepository) Stats(ctx context.Context, id string) (domain.UserStats, error) {
	var stats domain.UserStats

	err := r.DB.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM recommendations WHERE user_id = @id) AS recommendations_count,
			(SELECT COUNT(*) FROM follows WHERE following_id = @id) AS followers_count,
			(SELECT COUNT(*) FROM follows WHERE follower_id = @id) AS following_count,
			(SELECT COUNT(*) FROM likes l JOIN recommendations r ON r.id = l.recommendation_id WHERE r.user_id = @id) AS likes_count
	`, map[string]interface{}{"id": id}).Scan(&stats).Error
	if err != nil {
		return domain.UserStats{}, fmt.Errorf("failed to load user stats: %w", err)
	}

	return stats, nil
}

func (r *UserRepository) Featured(ctx context.Context, limit int) ([]domain.FeaturedUser, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var users []domain.FeaturedUser
	err := r.DB.WithContext(ctx).Raw(`
		SELECT u.*,
			COUNT(DISTINCT r.id) AS recommendations_count,
			COUNT(DISTINCT f.follower_id) AS followers_count
		FROM users u
		LEFT JOIN recommendations r ON r.user_id = u.id
		LEFT JOIN follows f ON f.following_id = u.id
		GROUP BY u.id
		ORDER BY u.created_at DESC
		LIMIT ?
	`, limit).Scan(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list featured users: %w", err)
	}

	return users, nil
}

func (r *UserRepository) PlatformStats(ctx context.Context) (domain.PlatformStats, error) {
	var stats domain.PlatformStats

	err := r.DB.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM recommendations) AS recommendations_count,
			(SELECT COUNT(*) FROM users) AS curators_count,
			(SELECT COUNT(*) FROM categories) AS categories_count
	`).Scan(&stats).Error
	if err != nil {
		return domain.PlatformStats{}, fmt.Errorf("failed to load platform stats: %w", err)
	}

	return stats, nil
}
