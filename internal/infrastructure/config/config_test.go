package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-at-least-32-bytes-long!!")

	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("unexpected default port: %s", cfg.Port)
	}
	if cfg.JWT.Issuer != "auth-service" {
		t.Fatalf("unexpected default issuer: %s", cfg.JWT.Issuer)
	}
	if cfg.JWT.Expiration != 24*time.Hour {
		t.Fatalf("unexpected default expiration: %s", cfg.JWT.Expiration)
	}
	if cfg.Login.AttemptLimit != 10 || cfg.Login.AttemptWindow != time.Minute {
		t.Fatalf("unexpected login limits: %d %s", cfg.Login.AttemptLimit, cfg.Login.AttemptWindow)
	}
	if cfg.Mongo.Database != "auth_service" {
		t.Fatalf("unexpected default database: %s", cfg.Mongo.Database)
	}
	if cfg.Redis.Password != "" {
		t.Fatalf("redis password should default to empty, got %q", cfg.Redis.Password)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-at-least-32-bytes-long!!")
	t.Setenv("JWT_ISSUER", "DataProgramming")
	t.Setenv("JWT_EXPIRATION", "15m")
	t.Setenv("LOGIN_ATTEMPT_LIMIT", "3")

	cfg := Load()

	if cfg.JWT.Secret != "test-secret-at-least-32-bytes-long!!" {
		t.Fatalf("secret not loaded")
	}
	if cfg.JWT.Issuer != "DataProgramming" {
		t.Fatalf("issuer override not applied: %s", cfg.JWT.Issuer)
	}
	if cfg.JWT.Expiration != 15*time.Minute {
		t.Fatalf("expiration override not applied: %s", cfg.JWT.Expiration)
	}
	if cfg.Login.AttemptLimit != 3 {
		t.Fatalf("attempt limit override not applied: %d", cfg.Login.AttemptLimit)
	}
}
