package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "secret",
	}))
	if err != nil {
		t.Fatalf("LoadWith: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Port)
	}
	if cfg.StoreDriver != StorePostgres {
		t.Errorf("expected postgres driver, got %s", cfg.StoreDriver)
	}
	if cfg.Session.TTL != 24*time.Hour {
		t.Errorf("expected 24h session ttl, got %s", cfg.Session.TTL)
	}
	if cfg.Session.CookieName != "BookStoreAuth" {
		t.Errorf("unexpected cookie name %s", cfg.Session.CookieName)
	}
	if cfg.Redis.Addr != "" {
		t.Errorf("expected role cache disabled by default, got %s", cfg.Redis.Addr)
	}
	if !cfg.IsDevelopment() {
		t.Error("expected development env by default")
	}
}

func TestLoadWith_MissingSecret(t *testing.T) {
	if _, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatal("expected error without JWT_SECRET")
	}
}

func TestLoadWith_UnknownDriver(t *testing.T) {
	_, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":   "secret",
		"STORE_DRIVER": "oracle",
	}))
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestLoadWith_PartialBootstrap(t *testing.T) {
	_, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":         "secret",
		"BOOTSTRAP_USERNAME": "admin",
	}))
	if err == nil {
		t.Fatal("expected error when only the bootstrap username is set")
	}
}
