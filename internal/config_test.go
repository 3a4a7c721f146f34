package internal

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestHTTPConfig_PortBounds(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		cfg := HTTPConfig{Port: port}
		if err := cfg.Validate(); err == nil {
			t.Errorf("port %d should fail validation", port)
		}
	}
}

func TestSiteConfig_RequiresTitleAndBaseURL(t *testing.T) {
	cfg := SiteConfig{RecentCount: 5}
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty site config should fail validation")
	}
	cfg = SiteConfig{Title: "t", BaseURL: "http://x", RecentCount: 0}
	if err := cfg.Validate(); err == nil {
		t.Fatal("zero recent_count should fail validation")
	}
}

func TestPostsConfig_RequiresPath(t *testing.T) {
	cfg := PostsConfig{}
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty posts path should fail validation")
	}
}

func TestCacheConfig_ResolvePath(t *testing.T) {
	c := CacheConfig{}
	if got := c.ResolvePath("./posts"); got != filepath.Join("./posts", "metadata") {
		t.Errorf("default path = %q", got)
	}
	c = CacheConfig{Path: "/var/cache/orglog"}
	if got := c.ResolvePath("./posts"); got != "/var/cache/orglog" {
		t.Errorf("explicit path = %q", got)
	}
}
