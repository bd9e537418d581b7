package user

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"cur8tr/domain"
	"cur8tr/pkg/logger"
	"cur8tr/pkg/utils"

	"github.com/go-playground/validator/v10"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User) error
	Stats(ctx context.Context, id string) (domain.UserStats, error)
	Featured(ctx context.Context, limit int) ([]domain.FeaturedUser, error)
	PlatformStats(ctx context.Context) (domain.PlatformStats, error)
}

// TokenRepository contract interface
type TokenRepository interface {
	StoreToken(ctx context.Context, userID, token string, data domain.TokenData, ttl time.Duration) error
	ValidateToken(ctx context.Context, token string) (string, error)
	DeleteToken(ctx context.Context, userID, token string) error
}

const defaultFeaturedLimit = 3

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

type RegisterInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	Username string `validate:"required,min=3,max=50"`
}

// ProfileInput is a partial profile update; nil fields are left unchanged.
type ProfileInput struct {
	Username        *string `validate:"omitempty,min=3,max=50"`
	Bio             *string `validate:"omitempty,max=500"`
	ProfileImageURL *string `validate:"omitempty,max=2048"`
	InstagramURL    *string `validate:"omitempty,max=2048"`
	TiktokURL       *string `validate:"omitempty,max=2048"`
	YoutubeURL      *string `validate:"omitempty,max=2048"`
}

type userService struct {
	userRepo  UserRepository
	tokenRepo TokenRepository
	validate  *validator.Validate
	tokenTTL  time.Duration
}

func NewUserService(userRepo UserRepository, tokenRepo TokenRepository, validate *validator.Validate, tokenTTL time.Duration) *userService {
	return &userService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		validate:  validate,
		tokenTTL:  tokenTTL,
	}
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.Username = strings.TrimSpace(in.Username)

	if err := s.validate.Struct(in); err != nil {
		logger.Error("Invalid register data", err)
		return domain.User{}, fmt.Errorf("%s: %w", err.Error(), domain.ErrInvalidArgument)
	}

	if !usernamePattern.MatchString(in.Username) {
		return domain.User{}, fmt.Errorf("username can only contain letters, numbers, and underscores: %w", domain.ErrInvalidArgument)
	}

	if _, err := s.userRepo.FindByEmail(ctx, in.Email); err == nil {
		logger.Error("Email already exists")
		return domain.User{}, fmt.Errorf("email already registered: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, err
	}

	if _, err := s.userRepo.FindByUsername(ctx, in.Username); err == nil {
		logger.Error("Username already exists")
		return domain.User{}, fmt.Errorf("username already taken: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, err
	}

	passwordHash, err := utils.HashPassword(in.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return domain.User{}, errors.New("failed to hash password")
	}

	newUser := domain.User{
		Email:    in.Email,
		Password: string(passwordHash),
		Username: in.Username,
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		logger.Error("Failed to create new user", err)
		return domain.User{}, err
	}

	logger.Info("user registered successfully", "user_id", newUser.ID)

	return newUser, nil
}

// Login issues a JWT and records it in the token store.
func (s *userService) Login(ctx context.Context, email, password, ipAddress, userAgent string) (string, domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		logger.Error("Invalid user credentials", err)
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.User{}, fmt.Errorf("invalid email or password: %w", domain.ErrUnauthorized)
		}
		return "", domain.User{}, err
	}

	if !utils.CheckPassword(password, user.Password) {
		logger.Error("User password incorrect")
		return "", domain.User{}, fmt.Errorf("invalid email or password: %w", domain.ErrUnauthorized)
	}

	token, err := utils.GenerateJWT(user.ID, user.Role(), s.tokenTTL)
	if err != nil {
		logger.Error("Failed to generated token", err)
		return "", domain.User{}, errors.New("failed to generate token")
	}

	now := time.Now()
	data := domain.TokenData{
		UserID:    user.ID,
		Role:      user.Role(),
		Token:     token,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.tokenTTL),
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
	if err := s.tokenRepo.StoreToken(ctx, user.ID, token, data, s.tokenTTL); err != nil {
		logger.Error("Failed to store token", err)
		return "", domain.User{}, fmt.Errorf("failed to store token: %w", err)
	}

	logger.Info("user logged in", "user_id", user.ID)

	return token, user, nil
}

func (s *userService) Logout(ctx context.Context, userID, token string) error {
	if err := s.tokenRepo.DeleteToken(ctx, userID, token); err != nil {
		logger.Error("Failed to delete token", err)
		return fmt.Errorf("failed to logout: %w", err)
	}

	return nil
}

// ValidateTokenFromRedis returns the user id a live token belongs to.
func (s *userService) ValidateTokenFromRedis(ctx context.Context, token string) (string, error) {
	return s.tokenRepo.ValidateToken(ctx, token)
}

func (s *userService) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to get user by ID", err)
		return domain.User{}, err
	}

	return user, nil
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		logger.Error("Failed to get user by username", err)
		return domain.User{}, err
	}

	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id string, in ProfileInput) (domain.User, error) {
	if err := s.validate.Struct(in); err != nil {
		logger.Error("Invalid profile data", err)
		return domain.User{}, fmt.Errorf("%s: %w", err.Error(), domain.ErrInvalidArgument)
	}

	existingUser, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("User not found for update", err)
		return domain.User{}, err
	}

	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if !usernamePattern.MatchString(username) {
			return domain.User{}, fmt.Errorf("username can only contain letters, numbers, and underscores: %w", domain.ErrInvalidArgument)
		}
		if username != existingUser.Username {
			if other, err := s.userRepo.FindByUsername(ctx, username); err == nil && other.ID != id {
				return domain.User{}, fmt.Errorf("username already taken: %w", domain.ErrConflict)
			}
		}
		existingUser.Username = username
	}

	if in.Bio != nil {
		existingUser.Bio = *in.Bio
	}
	if in.ProfileImageURL != nil {
		existingUser.ProfileImageURL = *in.ProfileImageURL
	}
	if in.InstagramURL != nil {
		existingUser.InstagramURL = *in.InstagramURL
	}
	if in.TiktokURL != nil {
		existingUser.TiktokURL = *in.TiktokURL
	}
	if in.YoutubeURL != nil {
		existingUser.YoutubeURL = *in.YoutubeURL
	}

	if err := s.userRepo.UpdateProfile(ctx, &existingUser); err != nil {
		logger.Error("Failed to update user", err)
		return domain.User{}, err
	}

	return existingUser, nil
}

func (s *userService) GetStats(ctx context.Context, id string) (domain.UserStats, error) {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		return domain.UserStats{}, err
	}

	stats, err := s.userRepo.Stats(ctx, id)
	if err != nil {
		logger.Error("Failed to load user stats", err)
		return domain.UserStats{}, fmt.Errorf("failed to load stats: %w: %w", domain.ErrRepositoryUnavailable, err)
	}

	return stats, nil
}

// FeaturedUsers returns the newest users with their recommendation and
// follower counts.
func (s *userService) FeaturedUsers(ctx context.Context, limit int) ([]domain.FeaturedUser, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when listing featured users")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if limit <= 0 {
		limit = defaultFeaturedLimit
	}

	users, err := s.userRepo.Featured(ctx, limit)
	if err != nil {
		logger.Error("Failed to list featured users", err)
		return nil, fmt.Errorf("failed to list featured users: %w: %w", domain.ErrRepositoryUnavailable, err)
	}
	if users == nil {
		users = []domain.FeaturedUser{}
	}

	return users, nil
}

func (s *userService) PlatformStats(ctx context.Context) (domain.PlatformStats, error) {
	stats, err := s.userRepo.PlatformStats(ctx)
	if err != nil {
		logger.Error("Failed to load platform stats", err)
		return domain.PlatformStats{}, fmt.Errorf("failed to load platform stats: %w: %w", domain.ErrRepositoryUnavailable, err)
	}

	return stats, nil
}
