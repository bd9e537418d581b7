package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"cur8tr/domain"
	"cur8tr/pkg/utils"

	"github.com/go-playground/validator/v10"
)

type fakeUserRepo struct {
	users        map[string]domain.User
	featured     []domain.FeaturedUser
	featuredSize int
	statsErr     error
}

func (f *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	u.ID = "id-" + u.Username
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (domain.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return domain.User{}, domain.ErrNotFound
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (domain.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, u *domain.User) error {
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserRepo) Stats(_ context.Context, id string) (domain.UserStats, error) {
	return domain.UserStats{RecommendationsCount: 2, FollowersCount: 1}, nil
}

func (f *fakeUserRepo) Featured(_ context.Context, limit int) ([]domain.FeaturedUser, error) {
	f.featuredSize = limit
	return f.featured, nil
}

func (f *fakeUserRepo) PlatformStats(context.Context) (domain.PlatformStats, error) {
	if f.statsErr != nil {
		return domain.PlatformStats{}, f.statsErr
	}
	return domain.PlatformStats{RecommendationsCount: 7, CuratorsCount: 3, CategoriesCount: 12}, nil
}

type fakeTokenRepo struct {
	tokens map[string]string
}

func (f *fakeTokenRepo) StoreToken(_ context.Context, userID, token string, _ domain.TokenData, _ time.Duration) error {
	f.tokens[token] = userID
	return nil
}

func (f *fakeTokenRepo) ValidateToken(_ context.Context, token string) (string, error) {
	if id, ok := f.tokens[token]; ok {
		return id, nil
	}
	return "", errors.New("token not found or expired")
}

func (f *fakeTokenRepo) DeleteToken(_ context.Context, _ string, token string) error {
	delete(f.tokens, token)
	return nil
}

func newTestService() (*userService, *fakeUserRepo, *fakeTokenRepo) {
	users := &fakeUserRepo{users: map[string]domain.User{}}
	tokens := &fakeTokenRepo{tokens: map[string]string{}}
	return NewUserService(users, tokens, validator.New(), time.Hour), users, tokens
}

func TestRegisterAndLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	svc, _, tokens := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{Email: "Alice@Example.com", Password: "password1", Username: "alice_1"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if u.Email != "alice@example.com" {
		t.Errorf("email = %q, want lowercased", u.Email)
	}
	if u.Password == "password1" {
		t.Error("password stored in plain text")
	}

	token, loggedIn, err := svc.Login(ctx, "alice@example.com", "password1", "127.0.0.1", "go-test")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if loggedIn.ID != u.ID {
		t.Errorf("Login() user = %q, want %q", loggedIn.ID, u.ID)
	}
	claims, err := utils.ParseJWT(token)
	if err != nil || claims.UserID != u.ID || claims.Role != domain.RoleUser {
		t.Errorf("token claims = %+v, %v", claims, err)
	}

	id, err := svc.ValidateTokenFromRedis(ctx, token)
	if err != nil || id != u.ID {
		t.Errorf("ValidateTokenFromRedis() = %q, %v", id, err)
	}

	if err := svc.Logout(ctx, u.ID, token); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if len(tokens.tokens) != 0 {
		t.Error("token still stored after Logout")
	}

	if _, _, err := svc.Login(ctx, "alice@example.com", "wrong-pass", "", ""); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("Login(wrong password) error = %v, want ErrUnauthorized", err)
	}
	if _, _, err := svc.Login(ctx, "nobody@example.com", "password1", "", ""); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("Login(unknown) error = %v, want ErrUnauthorized", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()

	svc, users, _ := newTestService()
	users.users["taken"] = domain.User{ID: "taken", Email: "taken@example.com", Username: "taken"}

	tests := []struct {
		name string
		in   RegisterInput
		want error
	}{
		{"bad email", RegisterInput{Email: "nope", Password: "password1", Username: "bob"}, domain.ErrInvalidArgument},
		{"short password", RegisterInput{Email: "b@example.com", Password: "short", Username: "bob"}, domain.ErrInvalidArgument},
		{"short username", RegisterInput{Email: "b@example.com", Password: "password1", Username: "bo"}, domain.ErrInvalidArgument},
		{"username symbols", RegisterInput{Email: "b@example.com", Password: "password1", Username: "bob!"}, domain.ErrInvalidArgument},
		{"email taken", RegisterInput{Email: "taken@example.com", Password: "password1", Username: "bob"}, domain.ErrConflict},
		{"username taken", RegisterInput{Email: "b@example.com", Password: "password1", Username: "taken"}, domain.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Register(context.Background(), tt.in); !errors.Is(err, tt.want) {
				t.Errorf("Register() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestUpdateProfile(t *testing.T) {
	t.Parallel()

	svc, users, _ := newTestService()
	users.users["u1"] = domain.User{ID: "u1", Username: "alice"}
	users.users["u2"] = domain.User{ID: "u2", Username: "bob"}

	bio := "coffee nerd"
	got, err := svc.UpdateProfile(context.Background(), "u1", ProfileInput{Bio: &bio})
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if got.Bio != bio || got.Username != "alice" {
		t.Errorf("UpdateProfile() = %+v", got)
	}

	taken := "bob"
	if _, err := svc.UpdateProfile(context.Background(), "u1", ProfileInput{Username: &taken}); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("UpdateProfile(taken) error = %v, want ErrConflict", err)
	}

	if _, err := svc.UpdateProfile(context.Background(), "ghost", ProfileInput{Bio: &bio}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("UpdateProfile(ghost) error = %v, want ErrNotFound", err)
	}
}

func TestGetStats(t *testing.T) {
	t.Parallel()

	svc, users, _ := newTestService()
	users.users["u1"] = domain.User{ID: "u1"}

	stats, err := svc.GetStats(context.Background(), "u1")
	if err != nil || stats.RecommendationsCount != 2 {
		t.Errorf("GetStats() = %+v, %v", stats, err)
	}
	if _, err := svc.GetStats(context.Background(), "ghost"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetStats(ghost) error = %v, want ErrNotFound", err)
	}
}

func TestFeaturedUsers(t *testing.T) {
	t.Parallel()

	svc, users, _ := newTestService()
	ctx := context.Background()

	got, err := svc.FeaturedUsers(ctx, 0)
	if err != nil || got == nil || len(got) != 0 {
		t.Fatalf("FeaturedUsers() on empty repo = %#v, %v", got, err)
	}
	if users.featuredSize != 3 {
		t.Errorf("default limit = %d, want 3", users.featuredSize)
	}

	users.featured = []domain.FeaturedUser{{User: domain.User{ID: "u1"}, RecommendationsCount: 4, FollowersCount: 2}}
	got, err = svc.FeaturedUsers(ctx, 5)
	if err != nil || len(got) != 1 || got[0].RecommendationsCount != 4 {
		t.Errorf("FeaturedUsers() = %+v, %v", got, err)
	}
	if users.featuredSize != 5 {
		t.Errorf("limit = %d, want 5", users.featuredSize)
	}
}

func TestPlatformStats(t *testing.T) {
	t.Parallel()

	svc, users, _ := newTestService()

	stats, err := svc.PlatformStats(context.Background())
	want := domain.PlatformStats{RecommendationsCount: 7, CuratorsCount: 3, CategoriesCount: 12}
	if err != nil || stats != want {
		t.Errorf("PlatformStats() = %+v, %v, want %+v", stats, err, want)
	}

	users.statsErr = errors.New("db down")
	if _, err := svc.PlatformStats(context.Background()); !errors.Is(err, domain.ErrRepositoryUnavailable) {
		t.Errorf("PlatformStats() error = %v, want ErrRepositoryUnavailable", err)
	}
}
