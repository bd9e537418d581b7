//go:build integration

package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"cur8tr/business/feed"
	"cur8tr/domain"
	"cur8tr/internal/testinfra"
	"cur8tr/pkg/database"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(testinfra.StartPostgres(t), gormlogger.Silent)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	return db
}

func mustUser(t *testing.T, repo *UserRepository, name string) domain.User {
	t.Helper()

	u := domain.User{Email: name + "@example.com", Username: name, Password: "x"}
	if err := repo.Create(context.Background(), &u); err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return u
}

func ptr[T any](v T) *T { return &v }

func TestRepositoriesIntegration(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	users := NewUserRepository(db)
	recs := NewRecommendationRepository(db)
	follows := NewFollowRepository(db)
	likes := NewLikeRepository(db)
	categories := NewCategoryRepository(db)

	alice := mustUser(t, users, "alice")
	bob := mustUser(t, users, "bob")
	carol := mustUser(t, users, "carol")

	if err := users.Create(ctx, &domain.User{Email: "alice@example.com", Username: "alice2", Password: "x"}); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("duplicate email error = %v, want ErrConflict", err)
	}

	food := domain.Category{Name: "Food"}
	if err := categories.Create(ctx, &food); err != nil {
		t.Fatalf("create category: %v", err)
	}

	base := time.Now().Add(-time.Hour).UTC()
	mk := func(owner domain.User, title string, offset time.Duration, private bool, lat, lng *float64) domain.Recommendation {
		rec := domain.Recommendation{
			UserID:     owner.ID,
			Title:      title,
			Rating:     5,
			ImageURL:   "/objects/" + title,
			IsPrivate:  private,
			Latitude:   lat,
			Longitude:  lng,
			CategoryID: &food.ID,
			CreatedAt:  base.Add(offset),
		}
		if err := recs.Create(ctx, &rec, []string{"coffee", "nyc"}); err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
		return rec
	}

	bobPost := mk(bob, "bob-post", 3*time.Minute, false, ptr(40.7128), ptr(-74.0060))
	bobSecret := mk(bob, "bob-secret", 4*time.Minute, true, nil, nil)
	carolPost := mk(carol, "carol-post", 2*time.Minute, false, ptr(34.0522), ptr(-118.2437))
	alicePost := mk(alice, "alice-post", time.Minute, false, nil, nil)

	t.Run("visibility", func(t *testing.T) {
		got, err := recs.Find(ctx, domain.NewRecommendationQuery(0, domain.VisibleTo("")))
		if err != nil {
			t.Fatalf("Find() error = %v", err)
		}
		want := []string{bobPost.ID, carolPost.ID, alicePost.ID}
		if len(got) != len(want) {
			t.Fatalf("Find() returned %d rows, want %d", len(got), len(want))
		}
		for i, id := range want {
			if got[i].ID != id {
				t.Errorf("row %d = %s, want %s", i, got[i].Title, id)
			}
		}
		if len(got[0].Tags) != 2 {
			t.Errorf("tags = %v, want 2", got[0].Tags)
		}

		own, err := recs.Find(ctx, domain.NewRecommendationQuery(0, domain.VisibleTo(bob.ID), domain.OwnerIn(bob.ID)))
		if err != nil || len(own) != 2 || own[0].ID != bobSecret.ID {
			t.Errorf("owner view = %v, %v", own, err)
		}
	})

	t.Run("predicates", func(t *testing.T) {
		located, err := recs.Find(ctx, domain.NewRecommendationQuery(0, domain.HasLocation(), domain.VisibleTo("")))
		if err != nil || len(located) != 2 {
			t.Fatalf("HasLocation = %d rows, %v", len(located), err)
		}

		none, err := recs.Find(ctx, domain.NewRecommendationQuery(0, domain.OwnerIn()))
		if err != nil || len(none) != 0 {
			t.Errorf("empty OwnerIn = %d rows, %v", len(none), err)
		}

		limited, err := recs.Find(ctx, domain.NewRecommendationQuery(1, domain.OwnerNotIn(alice.ID), domain.VisibleTo(alice.ID)))
		if err != nil || len(limited) != 1 || limited[0].ID != bobPost.ID {
			t.Errorf("OwnerNotIn limit 1 = %v, %v", limited, err)
		}
	})

	t.Run("feed", func(t *testing.T) {
		if err := follows.Create(ctx, &domain.Follow{FollowerID: alice.ID, FollowingID: bob.ID}); err != nil {
			t.Fatalf("follow: %v", err)
		}
		if err := follows.Create(ctx, &domain.Follow{FollowerID: alice.ID, FollowingID: bob.ID}); err != nil {
			t.Fatalf("repeated follow: %v", err)
		}

		svc := feed.NewFeedService(recs, follows, feed.DefaultConfig())
		got, err := svc.Compose(ctx, alice.ID, "", 20)
		if err != nil {
			t.Fatalf("Compose() error = %v", err)
		}
		if len(got) != 2 || got[0].ID != bobPost.ID || got[1].ID != carolPost.ID {
			t.Errorf("Compose() = %v", got)
		}
	})

	t.Run("likes", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			if err := likes.Create(ctx, &domain.Like{UserID: alice.ID, RecommendationID: bobPost.ID}); err != nil {
				t.Fatalf("like: %v", err)
			}
		}
		if err := likes.Create(ctx, &domain.Like{UserID: carol.ID, RecommendationID: bobPost.ID}); err != nil {
			t.Fatalf("like: %v", err)
		}

		counts, err := likes.CountByRecommendations(ctx, []string{bobPost.ID, carolPost.ID})
		if err != nil || counts[bobPost.ID] != 2 || counts[carolPost.ID] != 0 {
			t.Errorf("counts = %v, %v", counts, err)
		}

		stats, err := users.Stats(ctx, bob.ID)
		if err != nil {
			t.Fatalf("Stats() error = %v", err)
		}
		want := domain.UserStats{RecommendationsCount: 2, FollowersCount: 1, FollowingCount: 0, LikesCount: 2}
		if stats != want {
			t.Errorf("Stats() = %+v, want %+v", stats, want)
		}
	})

	t.Run("coordinates round trip", func(t *testing.T) {
		rec, err := recs.FindByID(ctx, bobPost.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if *rec.Latitude != 40.7128 || *rec.Longitude != -74.0060 {
			t.Errorf("coordinates = %v, %v, want 40.7128, -74.006", *rec.Latitude, *rec.Longitude)
		}
	})

	t.Run("like rows", func(t *testing.T) {
		rows, err := likes.FindByUser(ctx, alice.ID)
		if err != nil || len(rows) != 1 {
			t.Fatalf("FindByUser() = %v, %v", rows, err)
		}
		if rows[0].UserID != alice.ID || rows[0].RecommendationID != bobPost.ID || rows[0].CreatedAt.IsZero() {
			t.Errorf("like row = %+v", rows[0])
		}
	})

	t.Run("curator picks fill limit", func(t *testing.T) {
		curator := NewCuratorRepository(db)
		for i, rec := range []domain.Recommendation{carolPost, bobPost, bobSecret} {
			pick := domain.CuratorRec{RecommendationID: rec.ID, CuratorID: alice.ID, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
			if err := curator.Create(ctx, &pick); err != nil {
				t.Fatalf("create pick: %v", err)
			}
		}

		got, err := curator.FindRecent(ctx, 2)
		if err != nil {
			t.Fatalf("FindRecent() error = %v", err)
		}
		if len(got) != 2 || got[0].RecommendationID != bobPost.ID || got[1].RecommendationID != carolPost.ID {
			t.Errorf("FindRecent(2) = %+v", got)
		}
	})

	t.Run("platform and featured", func(t *testing.T) {
		stats, err := users.PlatformStats(ctx)
		want := domain.PlatformStats{RecommendationsCount: 4, CuratorsCount: 3, CategoriesCount: 1}
		if err != nil || stats != want {
			t.Errorf("PlatformStats() = %+v, %v, want %+v", stats, err, want)
		}

		featured, err := users.Featured(ctx, 3)
		if err != nil || len(featured) != 3 {
			t.Fatalf("Featured() = %d users, %v", len(featured), err)
		}
		for _, u := range featured {
			if u.ID == bob.ID && (u.RecommendationsCount != 2 || u.FollowersCount != 1 || u.Username != "bob") {
				t.Errorf("bob = %+v", u)
			}
		}
	})

	t.Run("sections", func(t *testing.T) {
		sections := NewSectionRepository(db)
		cards := NewAdminRecommendRepository(db)

		shelf := domain.Section{Title: "Weekend", CreatedBy: alice.ID}
		if err := sections.Create(ctx, &shelf); err != nil {
			t.Fatalf("create section: %v", err)
		}
		for _, rec := range []domain.Recommendation{bobPost, bobSecret, carolPost} {
			if _, err := sections.AddRecommendation(ctx, shelf.ID, rec.ID, 3); err != nil {
				t.Fatalf("link %s: %v", rec.Title, err)
			}
		}
		if _, err := sections.AddRecommendation(ctx, shelf.ID, alicePost.ID, 3); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("link past capacity error = %v, want ErrInvalidArgument", err)
		}
		if _, err := sections.AddRecommendation(ctx, shelf.ID, bobPost.ID, 8); !errors.Is(err, domain.ErrConflict) {
			t.Errorf("duplicate link error = %v, want ErrConflict", err)
		}

		linked, err := sections.Recommendations(ctx, shelf.ID)
		if err != nil || len(linked) != 2 || linked[0].ID != bobPost.ID || linked[1].ID != carolPost.ID {
			t.Errorf("Recommendations() = %v, %v", linked, err)
		}

		card := domain.AdminRecommend{
			Title:       "Kettle",
			ImageURL:    "/objects/kettle.png",
			ExternalURL: "https://shop.example.com",
			IsVisible:   true,
			SectionID:   &shelf.ID,
			CreatedBy:   alice.ID,
		}
		if err := cards.Create(ctx, &card); err != nil {
			t.Fatalf("create card: %v", err)
		}
		if shown, err := cards.FindVisibleBySection(ctx, shelf.ID); err != nil || len(shown) != 1 {
			t.Errorf("FindVisibleBySection() = %v, %v", shown, err)
		}

		toggled, err := cards.ToggleVisibility(ctx, card.ID)
		if err != nil || toggled.IsVisible {
			t.Errorf("ToggleVisibility() = %+v, %v", toggled, err)
		}
		if visible, _ := cards.Find(ctx, true); len(visible) != 0 {
			t.Errorf("visible cards = %d, want 0", len(visible))
		}

		if err := sections.Delete(ctx, shelf.ID); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		kept, err := cards.FindByID(ctx, card.ID)
		if err != nil || kept.SectionID != nil {
			t.Errorf("card after section delete = %+v, %v", kept, err)
		}
	})

	t.Run("settings", func(t *testing.T) {
		settings := NewSettingRepository(db)

		if _, err := settings.FindByKey(ctx, "hero_title"); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("FindByKey(missing) error = %v, want ErrNotFound", err)
		}
		first, err := settings.Upsert(ctx, "hero_title", "one")
		if err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
		second, err := settings.Upsert(ctx, "hero_title", "two")
		if err != nil || second.ID != first.ID || *second.Value != "two" {
			t.Errorf("second Upsert() = %+v, %v (first id %s)", second, err, first.ID)
		}
	})

	t.Run("category delete detaches", func(t *testing.T) {
		if err := categories.Delete(ctx, food.ID); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		rec, err := recs.FindByID(ctx, bobPost.ID)
		if err != nil || rec.CategoryID != nil {
			t.Errorf("category_id after delete = %v, %v", rec.CategoryID, err)
		}
		if err := categories.Delete(ctx, food.ID); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("second Delete() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("delete cascades", func(t *testing.T) {
		if err := recs.Delete(ctx, bobPost.ID); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if _, err := recs.FindByID(ctx, bobPost.ID); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("FindByID() after delete error = %v", err)
		}
		counts, _ := likes.CountByRecommendations(ctx, []string{bobPost.ID})
		if counts[bobPost.ID] != 0 {
			t.Errorf("likes survived delete: %v", counts)
		}
	})
}
