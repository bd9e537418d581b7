package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_PASSWORD", "pw")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Feed.SocialLimit != 15 || cfg.Feed.CommunityLimit != 10 || cfg.Feed.DefaultLimit != 20 {
		t.Errorf("feed = %+v, want 15/10/20", cfg.Feed)
	}
	if cfg.Map.DefaultRadiusMiles != 50 {
		t.Errorf("DefaultRadiusMiles = %v, want 50", cfg.Map.DefaultRadiusMiles)
	}
	if cfg.JWT.TTL != 7*24*time.Hour {
		t.Errorf("JWT.TTL = %v", cfg.JWT.TTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("FEED_SOCIAL_LIMIT", "30")
	t.Setenv("MAP_DEFAULT_RADIUS_MILES", "12.5")
	t.Setenv("GEOCODE_CACHE_TTL", "1h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Feed.SocialLimit != 30 {
		t.Errorf("SocialLimit = %d, want 30", cfg.Feed.SocialLimit)
	}
	if cfg.Map.DefaultRadiusMiles != 12.5 {
		t.Errorf("DefaultRadiusMiles = %v, want 12.5", cfg.Map.DefaultRadiusMiles)
	}
	if cfg.Map.GeocodeCacheTTL != time.Hour {
		t.Errorf("GeocodeCacheTTL = %v, want 1h", cfg.Map.GeocodeCacheTTL)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing jwt secret", map[string]string{"JWT_SECRET": "", "DB_PASSWORD": "pw"}},
		{"missing db password", map[string]string{"JWT_SECRET": "s", "DB_PASSWORD": ""}},
		{"bad int", map[string]string{"JWT_SECRET": "s", "DB_PASSWORD": "pw", "FEED_COMMUNITY_LIMIT": "ten"}},
		{"non positive limit", map[string]string{"JWT_SECRET": "s", "DB_PASSWORD": "pw", "FEED_DEFAULT_LIMIT": "0"}},
		{"zero search rate", map[string]string{"JWT_SECRET": "s", "DB_PASSWORD": "pw", "MAP_SEARCH_RATE": "0"}},
		{"negative search rate", map[string]string{"JWT_SECRET": "s", "DB_PASSWORD": "pw", "MAP_SEARCH_RATE": "-1"}},
		{"bad duration", map[string]string{"JWT_SECRET": "s", "DB_PASSWORD": "pw", "JWT_TTL": "forever"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Error("Load() error = nil, want error")
			}
		})
	}
}
